package admin

import (
	"net/http"

	"github.com/s/lms/internal/handlers"
)

// Service serves the read-only admin views. Routes are mounted behind
// middleware.RequiredRole(models.RoleAdmin).
type Service struct {
	handlers.Handler
}

// ==========================================
// GET /api/admin/courses (все курсы, включая черновики)
// ==========================================
func (s *Service) HandleCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.Svc.AllCourses(r.Context())
	if err != nil {
		s.WriteError(w, r, err)
		return
	}
	cards, err := s.Svc.CourseCards(r.Context(), courses)
	if err != nil {
		s.WriteError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]any{"courses": cards})
}
