package lms

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrCourseNotFound = fmt.Errorf("course %w", ErrNotFound)
	ErrLessonNotFound = fmt.Errorf("lesson %w", ErrNotFound)

	ErrInvalidInput = errors.New("invalid input")
	// ErrAccessDenied is returned by write paths only. Read paths report
	// access as a boolean.
	ErrAccessDenied = errors.New("access denied")
)

// InviteError carries the user-facing reason an invite code was refused.
type InviteError struct {
	Message string
}

func (e *InviteError) Error() string { return e.Message }

func (e *InviteError) Unwrap() error { return ErrInvalidInput }
