package admin

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/s/lms/internal/handlers"
	"github.com/s/lms/internal/lms"
	"github.com/s/lms/internal/models"
)

type courseStatsResponse struct {
	Course models.Course   `json:"course"`
	Stats  lms.CourseStats `json:"stats"`
}

// ==========================================
// GET /api/admin/courses/{id}/stats
// ==========================================
func (s *Service) HandleCourseStats(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	course, err := s.Svc.CourseByID(r.Context(), id)
	if err != nil {
		s.WriteError(w, r, err)
		return
	}
	if course == nil {
		s.WriteError(w, r, lms.ErrCourseNotFound)
		return
	}

	stats, err := s.Svc.CourseStats(r.Context(), id)
	if err != nil {
		s.WriteError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, courseStatsResponse{Course: *course, Stats: stats})
}

// ==========================================
// GET /api/admin/lessons/{id} (любой статус публикации)
// ==========================================
func (s *Service) HandleLesson(w http.ResponseWriter, r *http.Request) {
	lesson, err := s.Svc.LessonByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.WriteError(w, r, err)
		return
	}
	if lesson == nil {
		s.WriteError(w, r, lms.ErrLessonNotFound)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, lesson)
}
