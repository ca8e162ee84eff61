package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/s/lms/internal/lms"
	"github.com/s/lms/internal/logger"
	"github.com/s/lms/internal/models"
	"github.com/s/lms/internal/storage"
)

const sessionName = "session"

// Session keys written by the login flow.
const (
	SessionUserID = "user_id"
	SessionRole   = "role"
)

type Handler struct {
	Svc   *lms.Service
	Store sessions.Store
	Log   *logger.Logger
}

func NewHandler(svc *lms.Service, store sessions.Store, log *logger.Logger) *Handler {
	return &Handler{
		Svc:   svc,
		Store: store,
		Log:   log.With("component", "http"),
	}
}

// CurrentUser reads the caller from the session cookie. An anonymous caller
// gets an empty id and RoleGuest.
func (h *Handler) CurrentUser(r *http.Request) (string, models.Role) {
	session, err := h.Store.Get(r, sessionName)
	if err != nil {
		// битая или чужая кука: считаем гостем
		return "", models.RoleGuest
	}
	userID := toString(session.Values[SessionUserID])
	if userID == "" {
		return "", models.RoleGuest
	}
	return userID, models.Role(toString(session.Values[SessionRole]))
}

// SignIn stores the caller in the session. The external login flow calls it
// once the identity is verified.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request, userID string, role models.Role) error {
	session, _ := h.Store.Get(r, sessionName)
	session.Values[SessionUserID] = userID
	session.Values[SessionRole] = string(role)
	return session.Save(r, w)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, sessionName)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		h.Log.Warn("logout: save session", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// WriteJSON writes v with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes {"error": message}.
func JSONError(w http.ResponseWriter, message string, code int) {
	WriteJSON(w, code, map[string]string{"error": message})
}

// WriteError maps service errors onto HTTP responses.
func (h *Handler) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var inviteErr *lms.InviteError
	switch {
	case errors.As(err, &inviteErr):
		JSONError(w, inviteErr.Message, http.StatusBadRequest)
	case errors.Is(err, lms.ErrCourseNotFound):
		JSONError(w, "Course not found.", http.StatusNotFound)
	case errors.Is(err, lms.ErrLessonNotFound):
		JSONError(w, "Lesson not found.", http.StatusNotFound)
	case errors.Is(err, lms.ErrNotFound):
		JSONError(w, "Not found.", http.StatusNotFound)
	case errors.Is(err, lms.ErrAccessDenied):
		JSONError(w, "You do not have access to this lesson.", http.StatusForbidden)
	case errors.Is(err, lms.ErrInvalidInput):
		JSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, storage.ErrStoreUnavailable):
		h.Log.Error("store unavailable", "method", r.Method, "path", r.URL.Path, "error", err)
		JSONError(w, "Service temporarily unavailable.", http.StatusServiceUnavailable)
	default:
		h.Log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		JSONError(w, "Internal server error.", http.StatusInternalServerError)
	}
}

// DecodeJSON reads a JSON body into v, answering 400 on failure.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		JSONError(w, "Invalid JSON body.", http.StatusBadRequest)
		return false
	}
	return true
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}
