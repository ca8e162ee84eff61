package personal

import (
	"net/http"

	"github.com/s/lms/internal/handlers"
)

type Service struct {
	handlers.Handler
}

type inviteRequest struct {
	Code string `json:"code"`
}

// ==========================================
// GET /api/me/courses (Мои курсы)
// ==========================================
func (s *Service) HandleMyCourses(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.CurrentUser(r)

	summaries, err := s.Svc.UserCourseSummaries(r.Context(), userID)
	if err != nil {
		s.WriteError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]any{"courses": summaries})
}

// ==========================================
// POST /api/invites/validate
// ==========================================
// A refused code is still a 200: the body carries valid=false and the reason.
func (s *Service) HandleValidateInvite(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	v, err := s.Svc.ValidateInviteCode(r.Context(), req.Code)
	if err != nil {
		s.WriteError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, v)
}

// ==========================================
// POST /api/invites/redeem (Активация кода)
// ==========================================
func (s *Service) HandleRedeemInvite(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.CurrentUser(r)

	var req inviteRequest
	if !handlers.DecodeJSON(w, r, &req) {
		return
	}

	red, err := s.Svc.RedeemInviteCode(r.Context(), userID, req.Code)
	if err != nil {
		s.WriteError(w, r, err)
		return
	}

	code := http.StatusOK
	if red.PendingApproval {
		code = http.StatusAccepted
	}
	handlers.WriteJSON(w, code, red)
}
