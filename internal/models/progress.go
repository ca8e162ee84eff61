package models

import "time"

// Progress is the watch/completion state of one user on one lesson.
// The (user, lesson) pair is unique.
type Progress struct {
	Base
	UserID         string     `gorm:"column:user_id;uniqueIndex:idx_progress_user_lesson;size:64;not null" json:"user"`
	LessonID       string     `gorm:"column:lesson_id;uniqueIndex:idx_progress_user_lesson;size:64;not null" json:"lesson"`
	Completed      bool       `json:"completed"`
	WatchedSeconds int        `json:"watched_seconds"`
	LastPosition   int        `json:"last_position"`
	CompletedAt    *time.Time `json:"completed_at"`
}

func (Progress) TableName() string { return "progress" }
