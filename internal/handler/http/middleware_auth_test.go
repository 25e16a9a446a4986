package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmarakulin/learn-logbook/internal/service"
	"github.com/dmarakulin/learn-logbook/internal/utils"
	"github.com/dmarakulin/learn-logbook/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuthMiddleware_NoHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _ := newTestHandler(ctrl)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run without credentials")
	})

	r := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	w := httptest.NewRecorder()
	h.auth(next).ServeHTTP(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "no scheme", header: "sometoken"},
		{name: "wrong scheme", header: "Basic sometoken"},
		{name: "empty token", header: "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			h, _, _ := newTestHandler(ctrl)

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("next handler must not run with a malformed header")
			})

			r := httptest.NewRequest(http.MethodGet, "/api/events", nil)
			r.Header.Set("Authorization", tt.header)
			w := httptest.NewRecorder()
			h.auth(next).ServeHTTP(w, r)

			require.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _ := newTestHandler(ctrl)

	mockAuth.EXPECT().
		ParseToken(gomock.Any(), "stale").
		Return(models.Token{}, service.ErrTokenIsExpired)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run with an expired token")
	})

	r := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	r.Header.Set("Authorization", "Bearer stale")
	w := httptest.NewRecorder()
	h.auth(next).ServeHTTP(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidTokenInjectsUserID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _ := newTestHandler(ctrl)

	mockAuth.EXPECT().
		ParseToken(gomock.Any(), "sometoken").
		Return(models.Token{UserID: 42}, nil)

	var seenUserID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := utils.GetUserIDFromContext(r.Context())
		require.True(t, ok)
		seenUserID = userID
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	r.Header.Set("Authorization", "Bearer sometoken")
	w := httptest.NewRecorder()
	h.auth(next).ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(42), seenUserID)
}

func TestTraceIDMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _ := newTestHandler(ctrl)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("generates trace id when absent", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		h.withTraceID(next).ServeHTTP(w, r)

		assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
	})

	t.Run("reuses caller's trace id", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Trace-ID", "caller-trace")
		w := httptest.NewRecorder()
		h.withTraceID(next).ServeHTTP(w, r)

		assert.Equal(t, "caller-trace", w.Header().Get("X-Trace-ID"))
	})
}

func TestResponseWriter_RecordsStatusAndSize(t *testing.T) {
	w := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: w}

	rw.WriteHeader(http.StatusTeapot)
	rw.WriteHeader(http.StatusOK) // second call must be ignored
	n, err := rw.Write([]byte("short and stout"))

	require.NoError(t, err)
	assert.Equal(t, 15, n)
	assert.Equal(t, http.StatusTeapot, rw.status)
	assert.Equal(t, 15, rw.size)
}

func TestResponseWriter_ImplicitOKOnWrite(t *testing.T) {
	w := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: w}

	_, err := rw.Write([]byte("body"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rw.status)
}
