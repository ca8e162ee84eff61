package lms

import (
	"context"
	"fmt"

	"github.com/s/lms/internal/models"
)

// ProgressUpdate is what a player reports for one lesson.
type ProgressUpdate struct {
	WatchedSeconds int  `json:"watched_seconds"`
	LastPosition   int  `json:"last_position"`
	Completed      bool `json:"completed"`
}

// RecordProgress merges u into the user's progress on the lesson.
// Watched time never decreases and completion, once set, stays set.
func (s *Service) RecordProgress(ctx context.Context, userID, lessonID string, u ProgressUpdate) (*models.Progress, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: sign in to record progress", ErrInvalidInput)
	}
	if u.WatchedSeconds < 0 || u.LastPosition < 0 {
		return nil, fmt.Errorf("%w: negative playback time", ErrInvalidInput)
	}

	lesson, err := s.LessonByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, ErrLessonNotFound
	}
	ok, err := s.CanAccessLesson(ctx, userID, *lesson)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAccessDenied
	}

	cur, err := s.LessonProgress(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	p := &models.Progress{UserID: userID, LessonID: lessonID}
	if cur != nil {
		p = cur
	} else {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	p.WatchedSeconds = max(p.WatchedSeconds, u.WatchedSeconds)
	p.LastPosition = u.LastPosition
	if u.Completed && !p.Completed {
		p.Completed = true
		p.CompletedAt = &now
	}

	if err := s.writer.SaveProgress(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
