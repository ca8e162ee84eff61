package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/s/lms/internal/lms"
)

// ==========================================
// GET /api/courses (Каталог)
// ==========================================
func (h *Handler) HandleCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.Svc.PublishedCourses(r.Context())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	cards, err := h.Svc.CourseCards(r.Context(), courses)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"courses": cards})
}

// ==========================================
// GET /api/courses/{slug} (Страница курса)
// ==========================================
func (h *Handler) HandleCourse(w http.ResponseWriter, r *http.Request) {
	userID, _ := h.CurrentUser(r)

	view, err := h.Svc.CourseWithProgress(r.Context(), mux.Vars(r)["slug"], userID)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	if !view.Published {
		// черновики видны только через админку
		JSONError(w, "Course not found.", http.StatusNotFound)
		return
	}
	WriteJSON(w, http.StatusOK, view)
}

// ==========================================
// GET /api/courses/{slug}/lessons/{lesson} (Урок)
// ==========================================
func (h *Handler) HandleLesson(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, _ := h.CurrentUser(r)

	view, err := h.Svc.LessonWithContext(r.Context(), vars["slug"], vars["lesson"], userID)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	if !view.Course.Published {
		JSONError(w, "Course not found.", http.StatusNotFound)
		return
	}
	if !view.HasAccess {
		withholdContent(view)
	}
	WriteJSON(w, http.StatusOK, view)
}

// withholdContent clears the payload of a lesson the caller may not view.
// Title, description and navigation stay visible.
func withholdContent(v *lms.LessonWithContext) {
	v.Lesson.VideoURL = ""
	v.Lesson.VideoID = ""
	v.Lesson.TextContent = ""
	v.Lesson.AudioFile = ""
	v.Lesson.Transcript = nil
	v.AudioURL = ""
}

// ==========================================
// POST /api/lessons/{id}/progress (Прогресс)
// ==========================================
func (h *Handler) HandleRecordProgress(w http.ResponseWriter, r *http.Request) {
	userID, _ := h.CurrentUser(r)

	var body lms.ProgressUpdate
	if !DecodeJSON(w, r, &body) {
		return
	}

	p, err := h.Svc.RecordProgress(r.Context(), userID, mux.Vars(r)["id"], body)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}
