package lms

import (
	"context"
	"fmt"
	"strings"

	"github.com/s/lms/internal/models"
	"github.com/s/lms/internal/storage"
)

const (
	MsgInvalidCode = "Invalid invite code."
	MsgMaxUses     = "This invite code has reached its maximum uses."
	MsgExpired     = "This invite code has expired."
)

// InviteValidation is the outcome of ValidateInviteCode. Course may be nil
// for a valid code bound to a missing course.
type InviteValidation struct {
	Valid      bool               `json:"valid"`
	InviteCode *models.InviteCode `json:"invite_code,omitempty"`
	Course     *models.Course     `json:"course,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// Redemption is the outcome of a successful RedeemInviteCode.
type Redemption struct {
	Course          *models.Course     `json:"course"`
	Enrollment      *models.Enrollment `json:"enrollment,omitempty"`
	PendingApproval bool               `json:"pending_approval"`
}

// ValidateInviteCode checks, in order: an active code matches ignoring
// case, the usage cap is not reached, the code has not expired.
// It never mutates the code.
func (s *Service) ValidateInviteCode(ctx context.Context, code string) (*InviteValidation, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return &InviteValidation{Error: MsgInvalidCode}, nil
	}

	ic, err := s.store.InviteCodes().FindOne(ctx,
		storage.EqFold(storage.ColCode, code),
		storage.Eq(storage.ColIsActive, true),
	)
	if err != nil {
		return nil, err
	}
	if ic == nil {
		return &InviteValidation{Error: MsgInvalidCode}, nil
	}
	if ic.CurrentUses >= ic.MaxUses {
		return &InviteValidation{Error: MsgMaxUses}, nil
	}
	if ic.ExpiresAt != nil && ic.ExpiresAt.Before(s.clock.Now()) {
		return &InviteValidation{Error: MsgExpired}, nil
	}

	course, err := s.CourseByID(ctx, ic.CourseID)
	if err != nil {
		return nil, err
	}
	return &InviteValidation{Valid: true, InviteCode: ic, Course: course}, nil
}

// RedeemInviteCode validates the code, then records the redemption through
// the writer in one step: one use is consumed and an enrollment is stored,
// active when the code auto-approves and pending otherwise. A user who
// already holds an active or pending enrollment for the course gets it back
// and no use is consumed, so repeating a redemption is free.
func (s *Service) RedeemInviteCode(ctx context.Context, userID, code string) (*Redemption, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: sign in to redeem an invite code", ErrInvalidInput)
	}

	v, err := s.ValidateInviteCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !v.Valid {
		return nil, &InviteError{Message: v.Error}
	}
	if v.Course == nil {
		s.log.Warn("invite code references missing course", "invite", v.InviteCode.ID, "course", v.InviteCode.CourseID)
		return nil, ErrCourseNotFound
	}

	now := s.clock.Now()
	e := &models.Enrollment{
		Base:       models.Base{CreatedAt: now, UpdatedAt: now},
		UserID:     userID,
		CourseID:   v.Course.ID,
		Status:     models.EnrollmentPending,
		EnrolledAt: now,
	}
	if v.InviteCode.AutoApprove {
		e.Status = models.EnrollmentActive
	}

	outcome, err := s.writer.RedeemInvite(ctx, v.InviteCode.ID, e)
	if err != nil {
		return nil, err
	}
	if outcome == storage.RedeemExhausted {
		// lost the race for the last use
		return nil, &InviteError{Message: MsgMaxUses}
	}

	red := &Redemption{
		Course:          v.Course,
		Enrollment:      e,
		PendingApproval: e.Status == models.EnrollmentPending,
	}
	if outcome == storage.RedeemCreated {
		s.log.Info("invite redeemed",
			"user", userID, "course", v.Course.ID, "invite", v.InviteCode.ID,
			"enrollment", e.ID, "status", e.Status)
	}
	return red, nil
}
