package lms

import (
	"context"

	"github.com/s/lms/internal/models"
)

// CourseCard is a catalog entry.
type CourseCard struct {
	models.Course
	LevelLabel   string      `json:"level_label"`
	ThumbnailURL string      `json:"thumbnail_url"`
	Stats        CourseStats `json:"stats"`
}

// CourseWithProgress is the course page. Progress fields are empty for
// anonymous callers.
type CourseWithProgress struct {
	CourseCard
	Lessons     []models.Lesson            `json:"lessons"`
	Enrolled    bool                       `json:"enrolled"`
	Progress    *CourseProgress            `json:"progress,omitempty"`
	ProgressMap map[string]models.Progress `json:"progress_map,omitempty"`
}

// LessonWithContext is the lesson page.
type LessonWithContext struct {
	LessonContext
	CourseLevelLabel string `json:"course_level_label"`
	AudioURL         string `json:"audio_url,omitempty"`
}

func (s *Service) card(c models.Course, lessons []models.Lesson) CourseCard {
	return CourseCard{
		Course:       c,
		LevelLabel:   c.Level.Label(),
		ThumbnailURL: s.files.URL(s.files.CollectionID(c.TableName()), c.ID, c.Thumbnail),
		Stats:        statsOf(lessons),
	}
}

// CourseCards decorates courses with labels, thumbnails and stats.
func (s *Service) CourseCards(ctx context.Context, courses []models.Course) ([]CourseCard, error) {
	cards := make([]CourseCard, 0, len(courses))
	for _, c := range courses {
		lessons, err := s.CourseLessons(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		cards = append(cards, s.card(c, lessons))
	}
	return cards, nil
}

// CourseWithProgress fails with ErrCourseNotFound.
func (s *Service) CourseWithProgress(ctx context.Context, slug, userID string) (*CourseWithProgress, error) {
	course, err := s.CourseBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	lessons, err := s.CourseLessons(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	view := &CourseWithProgress{CourseCard: s.card(*course, lessons), Lessons: lessons}
	if userID == "" {
		return view, nil
	}

	if view.Enrolled, err = s.IsEnrolled(ctx, userID, course.ID); err != nil {
		return nil, err
	}
	pm, err := s.progressMap(ctx, userID, lessons)
	if err != nil {
		return nil, err
	}
	cp := progressOf(lessons, pm)
	view.Progress, view.ProgressMap = &cp, pm
	return view, nil
}

// LessonWithContext wraps LessonNavigationContext with display fields.
func (s *Service) LessonWithContext(ctx context.Context, courseSlug, lessonSlug, userID string) (*LessonWithContext, error) {
	lc, err := s.LessonNavigationContext(ctx, courseSlug, lessonSlug, userID)
	if err != nil {
		return nil, err
	}
	return &LessonWithContext{
		LessonContext:    *lc,
		CourseLevelLabel: lc.Course.Level.Label(),
		AudioURL:         s.files.URL(s.files.CollectionID(lc.Lesson.TableName()), lc.Lesson.ID, lc.Lesson.AudioFile),
	}, nil
}
