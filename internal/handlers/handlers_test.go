package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s/lms/internal/lms"
	"github.com/s/lms/internal/logger"
	"github.com/s/lms/internal/models"
	"github.com/s/lms/internal/storage"
)

func TestWriteError(t *testing.T) {
	h := NewHandler(nil, sessions.NewCookieStore([]byte("k")), logger.Nop())

	tests := []struct {
		err  error
		code int
		msg  string
	}{
		{lms.ErrCourseNotFound, http.StatusNotFound, "Course not found."},
		{lms.ErrLessonNotFound, http.StatusNotFound, "Lesson not found."},
		{lms.ErrNotFound, http.StatusNotFound, "Not found."},
		{lms.ErrAccessDenied, http.StatusForbidden, "You do not have access to this lesson."},
		{&lms.InviteError{Message: lms.MsgExpired}, http.StatusBadRequest, lms.MsgExpired},
		{fmt.Errorf("%w: bad", lms.ErrInvalidInput), http.StatusBadRequest, "invalid input: bad"},
		{storage.Unavailable("find", context.DeadlineExceeded), http.StatusServiceUnavailable, "Service temporarily unavailable."},
		{errors.New("boom"), http.StatusInternalServerError, "Internal server error."},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tt.msg), rec.Body.String())
		})
	}
}

func TestCurrentUser(t *testing.T) {
	h := NewHandler(nil, sessions.NewCookieStore([]byte("k")), logger.Nop())

	userID, role := h.CurrentUser(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, userID)
	assert.Equal(t, models.RoleGuest, role)

	rec := httptest.NewRecorder()
	require.NoError(t, h.SignIn(rec, httptest.NewRequest(http.MethodGet, "/", nil), "usr_1", models.RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	userID, role = h.CurrentUser(req)
	assert.Equal(t, "usr_1", userID)
	assert.Equal(t, models.RoleAdmin, role)

	// a cookie signed with another key is ignored
	other := NewHandler(nil, sessions.NewCookieStore([]byte("other")), logger.Nop())
	userID, _ = other.CurrentUser(req)
	assert.Empty(t, userID)
}
