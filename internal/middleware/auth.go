package middleware

import (
	"net/http"

	"github.com/s/lms/internal/handlers"
	"github.com/s/lms/internal/models"
)

// RequireUser rejects anonymous callers with 401.
func RequireUser(h *handlers.Handler) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if userID, _ := h.CurrentUser(r); userID == "" {
				handlers.JSONError(w, "Sign in required.", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		}
	}
}

// RequiredRole создает Middleware, требующее определенную роль.
func RequiredRole(h *handlers.Handler, required models.Role) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			// 1. Проверка аутентификации
			userID, role := h.CurrentUser(r)
			if userID == "" {
				handlers.JSONError(w, "Sign in required.", http.StatusUnauthorized)
				return
			}

			// 2. Проверка роли
			if role != required {
				h.Log.Warn("role check failed", "user", userID, "role", role, "required", required, "path", r.URL.Path)
				handlers.JSONError(w, "Access denied: insufficient permissions.", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		}
	}
}
