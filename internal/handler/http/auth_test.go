package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmarakulin/learn-logbook/internal/service"
	"github.com/dmarakulin/learn-logbook/internal/store"
	"github.com/dmarakulin/learn-logbook/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRegister_IssuesBearerToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _ := newTestHandler(ctrl)

	registered := models.User{UserID: 42, Login: "student"}
	mockAuth.EXPECT().
		RegisterUser(gomock.Any(), gomock.Any()).
		Return(registered, nil)
	mockAuth.EXPECT().
		CreateToken(gomock.Any(), registered).
		Return(models.Token{SignedString: "signed-jwt", UserID: 42}, nil)

	body, _ := json.Marshal(models.User{Login: "student", Password: "secret"})
	r := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.register(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bearer signed-jwt", w.Header().Get("Authorization"))
}

func TestRegister_DuplicateLoginIsConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _ := newTestHandler(ctrl)

	mockAuth.EXPECT().
		RegisterUser(gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrLoginAlreadyExists)

	body, _ := json.Marshal(models.User{Login: "taken", Password: "secret"})
	r := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.register(w, r)

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, w.Header().Get("Authorization"))
}

func TestRegister_EmptyCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _ := newTestHandler(ctrl)

	mockAuth.EXPECT().
		RegisterUser(gomock.Any(), gomock.Any()).
		Return(models.User{}, service.ErrInvalidDataProvided)

	body, _ := json.Marshal(models.User{})
	r := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.register(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_IssuesBearerToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _ := newTestHandler(ctrl)

	authenticated := models.User{UserID: 42, Login: "student"}
	mockAuth.EXPECT().
		Login(gomock.Any(), gomock.Any()).
		Return(authenticated, nil)
	mockAuth.EXPECT().
		CreateToken(gomock.Any(), authenticated).
		Return(models.Token{SignedString: "signed-jwt", UserID: 42}, nil)

	body, _ := json.Marshal(models.User{Login: "student", Password: "secret"})
	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.login(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bearer signed-jwt", w.Header().Get("Authorization"))
}

func TestLogin_UnknownLoginAndWrongPasswordLookAlike(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "unknown login", err: store.ErrNoUserWasFound},
		{name: "wrong password", err: service.ErrWrongPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			h, mockAuth, _ := newTestHandler(ctrl)

			mockAuth.EXPECT().
				Login(gomock.Any(), gomock.Any()).
				Return(models.User{}, tt.err)

			body, _ := json.Marshal(models.User{Login: "student", Password: "nope"})
			r := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
			w := httptest.NewRecorder()
			h.login(w, r)

			require.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
