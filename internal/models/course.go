package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Base holds the fields every record carries.
// Relations between records are plain string IDs, never embedded structs.
type Base struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created"`
	UpdatedAt time.Time `json:"updated"`
}

// BeforeCreate fills in an ID for records created by the write paths.
func (b *Base) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = NewID()
	}
	return nil
}

// RecordID and Created expose the tie-break key used by the stores.
func (b Base) RecordID() string { return b.ID }

func (b Base) Created() time.Time { return b.CreatedAt }

// NewID returns a fresh record ID.
func NewID() string { return uuid.NewString() }

// Course (Курс)
type Course struct {
	Base
	Slug        string `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"` // filename only
	Level       Level  `gorm:"size:2" json:"level"`
	Published   bool   `gorm:"index" json:"published"`
	Order       int    `gorm:"column:sort_order" json:"order"`
}

func (Course) TableName() string { return "courses" }

// Lesson (Урок)
type Lesson struct {
	Base
	CourseID        string     `gorm:"column:course_id;index;uniqueIndex:idx_lesson_course_slug;size:64;not null" json:"course"`
	Title           string     `json:"title"`
	Slug            string     `gorm:"uniqueIndex:idx_lesson_course_slug;size:255;not null" json:"slug"` // unique within a course only
	Description     string     `json:"description"`
	Type            LessonType `gorm:"size:16" json:"type"`
	Order           int        `gorm:"column:sort_order" json:"order"`
	DurationMinutes int        `json:"duration_minutes"`
	Published       bool       `json:"published"`
	IsFree          bool       `json:"is_free"`

	// video
	VideoURL      string        `json:"video_url,omitempty"`
	VideoProvider VideoProvider `gorm:"size:16" json:"video_provider,omitempty"`
	VideoID       string        `json:"video_id,omitempty"`

	// text
	TextContent string `gorm:"type:text" json:"text_content,omitempty"`

	// shadowing
	AudioFile  string                                 `json:"audio_file,omitempty"`
	Transcript datatypes.JSONSlice[TranscriptSegment] `json:"transcript,omitempty"`
}

func (Lesson) TableName() string { return "lessons" }

// TranscriptSegment is one timed phrase of a shadowing lesson.
// Segments keep their playback order.
type TranscriptSegment struct {
	ID       string  `json:"id"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Text     string  `json:"text"`
	Phonetic string  `json:"phonetic,omitempty"`
}
