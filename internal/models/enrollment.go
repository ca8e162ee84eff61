package models

import "time"

type EnrollmentStatus string

const (
	EnrollmentActive  EnrollmentStatus = "active"
	EnrollmentPending EnrollmentStatus = "pending"
	EnrollmentExpired EnrollmentStatus = "expired"
)

// Enrollment (Подписка на курс)
// Only an active enrollment grants access; expired rows stay in the table.
// A pending row awaits approval. At most one non-expired row exists per
// user and course.
type Enrollment struct {
	Base
	UserID     string           `gorm:"column:user_id;index:idx_enrollment_user_course;uniqueIndex:idx_enrollment_open,where:status <> 'expired';size:64;not null" json:"user"`
	CourseID   string           `gorm:"column:course_id;index:idx_enrollment_user_course;uniqueIndex:idx_enrollment_open,where:status <> 'expired';size:64;not null" json:"course"`
	Status     EnrollmentStatus `gorm:"size:16;not null" json:"status"`
	EnrolledAt time.Time        `json:"enrolled_at"`
	ExpiresAt  *time.Time       `json:"expires_at"` // nil = never expires
}

func (Enrollment) TableName() string { return "enrollments" }

func (e Enrollment) Active() bool { return e.Status == EnrollmentActive }

// Open reports whether the row blocks another redemption for its course.
func (e Enrollment) Open() bool { return e.Status != EnrollmentExpired }
