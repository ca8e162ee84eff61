package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/s/lms/internal/models"
)

// ErrStoreUnavailable wraps every failure of a backing store.
// A missing record is never reported with it.
var ErrStoreUnavailable = errors.New("record store unavailable")

// Unavailable wraps err so that errors.Is(err, ErrStoreUnavailable) holds.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}

// Store exposes the five record collections. Stores only filter; joins
// belong to the callers.
type Store interface {
	Courses() Collection[models.Course]
	Lessons() Collection[models.Lesson]
	Enrollments() Collection[models.Enrollment]
	Progress() Collection[models.Progress]
	InviteCodes() Collection[models.InviteCode]
}

// Collection is a read view over one record type.
//
// Records are returned in ascending (created, id) order, so the first match
// of FindOne is always the oldest matching record.
type Collection[T any] interface {
	FindAll(ctx context.Context, conds ...Cond) ([]T, error)
	// FindOne returns nil, nil when nothing matches.
	FindOne(ctx context.Context, conds ...Cond) (*T, error)
}

// Writer is the write side used by redemption and progress tracking.
type Writer interface {
	// SaveProgress inserts or updates the record for (p.UserID, p.LessonID).
	// At most one record per pair ever exists.
	SaveProgress(ctx context.Context, p *models.Progress) error
	// RedeemInvite stores e for the invite's course as one atomic step.
	// When the user already holds an open (active or pending) enrollment for
	// e.CourseID, e is filled from it and no use is consumed. Otherwise one
	// use is consumed, only while the code is active and below its cap.
	RedeemInvite(ctx context.Context, inviteID string, e *models.Enrollment) (RedeemOutcome, error)
}

// RedeemOutcome reports what RedeemInvite did.
type RedeemOutcome int

const (
	RedeemCreated   RedeemOutcome = iota // use consumed, e inserted
	RedeemExisting                       // e filled from the open enrollment
	RedeemExhausted                      // code inactive, missing or at its cap
)

func (o RedeemOutcome) String() string {
	switch o {
	case RedeemCreated:
		return "created"
	case RedeemExisting:
		return "existing"
	case RedeemExhausted:
		return "exhausted"
	}
	return fmt.Sprintf("RedeemOutcome(%d)", int(o))
}

// Cond is one column equality test. Conditions passed together are ANDed.
type Cond struct {
	Column string
	Value  any
	Fold   bool // case-insensitive string comparison
}

// Eq matches records whose column equals v.
func Eq(column string, v any) Cond { return Cond{Column: column, Value: v} }

// EqFold matches records whose string column equals v ignoring case.
func EqFold(column, v string) Cond { return Cond{Column: column, Value: v, Fold: true} }

func (c Cond) String() string {
	if c.Fold {
		return fmt.Sprintf("%s~=%v", c.Column, c.Value)
	}
	return fmt.Sprintf("%s=%v", c.Column, c.Value)
}

// Key renders conds in a stable form, used as a cache key.
func Key(conds []Cond) string {
	parts := make([]string, len(conds))
	for i, c := range conds {
		parts[i] = c.String()
	}
	return strings.Join(parts, "&")
}

// Column names shared by the backends.
const (
	ColID          = "id"
	ColSlug        = "slug"
	ColPublished   = "published"
	ColCourse      = "course_id"
	ColUser        = "user_id"
	ColLesson      = "lesson_id"
	ColStatus      = "status"
	ColCode        = "code"
	ColIsActive    = "is_active"
	ColIsFree      = "is_free"
	ColCompleted   = "completed"
	ColCurrentUses = "current_uses"
)
