package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/s/lms/internal/handlers"
	"github.com/s/lms/internal/handlers/admin"
	"github.com/s/lms/internal/handlers/personal"
	"github.com/s/lms/internal/middleware"
	"github.com/s/lms/internal/models"
)

// NewRouter mounts the JSON API. corsOrigins is a comma separated list or "*".
func NewRouter(h *handlers.Handler, corsOrigins string) http.Handler {
	adminService := admin.Service{Handler: *h}
	personalService := personal.Service{Handler: *h}

	userOnly := middleware.RequireUser(h)
	adminOnly := middleware.RequiredRole(h, models.RoleAdmin)

	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Logger(h.Log), middleware.Recovery(h.Log))

	r.HandleFunc("/healthz", h.HandleHealth).Methods(http.MethodGet)
	r.HandleFunc("/logout", h.HandleLogout).Methods(http.MethodPost)

	// --- Каталог (публично) ---
	r.HandleFunc("/api/courses", h.HandleCourses).Methods(http.MethodGet)
	r.HandleFunc("/api/courses/{slug}", h.HandleCourse).Methods(http.MethodGet)
	r.HandleFunc("/api/courses/{slug}/lessons/{lesson}", h.HandleLesson).Methods(http.MethodGet)
	r.HandleFunc("/api/invites/validate", personalService.HandleValidateInvite).Methods(http.MethodPost)

	// --- Ученик ---
	r.HandleFunc("/api/me/courses", userOnly(personalService.HandleMyCourses)).Methods(http.MethodGet)
	r.HandleFunc("/api/invites/redeem", userOnly(personalService.HandleRedeemInvite)).Methods(http.MethodPost)
	r.HandleFunc("/api/lessons/{id}/progress", userOnly(h.HandleRecordProgress)).Methods(http.MethodPost)

	// --- Админ API ---
	r.HandleFunc("/api/admin/courses", adminOnly(adminService.HandleCourses)).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/courses/{id}/stats", adminOnly(adminService.HandleCourseStats)).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/lessons/{id}", adminOnly(adminService.HandleLesson)).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.JSONError(w, "Not found.", http.StatusNotFound)
	})

	// CORS sits outside the router: preflight requests match no route.
	return middleware.CORS(corsOrigins)(r)
}
