package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmarakulin/learn-logbook/internal/config"
	"github.com/dmarakulin/learn-logbook/internal/logger"
	"github.com/dmarakulin/learn-logbook/internal/utils"
	"github.com/dmarakulin/learn-logbook/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, handler http.Handler) (ServerAdapter, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a := NewHTTPServerAdapter(config.ClientAdapter{
		HTTPAddress:    srv.URL,
		RequestTimeout: 2 * time.Second,
	}, logger.Nop())

	return a, srv
}

func signedTestToken(t *testing.T, userID int64) string {
	t.Helper()
	token, err := utils.GenerateJWTToken("test-issuer", userID, time.Hour, "test-key")
	require.NoError(t, err)
	return token.SignedString
}

func TestRegister_StoresBearerToken(t *testing.T) {
	signed := signedTestToken(t, 7)

	a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/register", r.URL.Path)

		var user models.User
		require.NoError(t, json.NewDecoder(r.Body).Decode(&user))
		assert.Equal(t, "john", user.Login)
		assert.Equal(t, "secret", user.Password)

		w.Header().Set("Authorization", "Bearer "+signed)
		w.WriteHeader(http.StatusOK)
	}))

	user, err := a.Register(context.Background(), models.User{Login: "john", Password: "secret", Name: "John"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.UserID)
	assert.Equal(t, signed, a.Token())
}

func TestLogin_ReturnsParsedToken(t *testing.T) {
	signed := signedTestToken(t, 42)

	a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		w.Header().Set("Authorization", "Bearer "+signed)
		w.WriteHeader(http.StatusOK)
	}))

	token, err := a.Login(context.Background(), models.User{Login: "john", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), token.UserID)
	assert.Equal(t, signed, a.Token())
}

func TestLogin_WrongCredentials(t *testing.T) {
	a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := a.Login(context.Background(), models.User{Login: "john", Password: "bad"})
	require.ErrorIs(t, err, ErrUnauthorized)
	require.ErrorIs(t, err, ErrRemote)
	assert.Empty(t, a.Token())
}

func TestEventsUpdatedSince_SendsWatermarkAndToken(t *testing.T) {
	since := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	remote := []models.Event{{ID: "e1", OwnerID: 7, Title: "calculus"}}

	a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/events", r.URL.Path)
		assert.Equal(t, "2026-03-01T12:30:00Z", r.URL.Query().Get("updated_after"))
		assert.Equal(t, "Bearer sometoken", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(models.EventsResponse{Events: remote, Length: len(remote)}))
	}))
	a.SetToken("sometoken")

	events, err := a.EventsUpdatedSince(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "e1", events[0].ID)
}

func TestEventsUpdatedSince_ServerErrorIsRemote(t *testing.T) {
	a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	a.SetToken("sometoken")

	_, err := a.EventsUpdatedSince(context.Background(), time.Time{})
	require.ErrorIs(t, err, ErrRemote)
}

func TestCreateEvent_ReturnsCanonicalRecord(t *testing.T) {
	a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var draft models.Event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		draft.ID = "assigned-id"
		draft.CreatedAt = time.Now()
		draft.UpdatedAt = draft.CreatedAt

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		require.NoError(t, json.NewEncoder(w).Encode(draft))
	}))
	a.SetToken("sometoken")

	created, err := a.CreateEvent(context.Background(), models.Event{Title: "physics"})
	require.NoError(t, err)
	assert.Equal(t, "assigned-id", created.ID)
	assert.False(t, created.UpdatedAt.IsZero())
}

func TestUpdateEvent_MapsNotFound(t *testing.T) {
	a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/events/ghost", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))
	a.SetToken("sometoken")

	title := "renamed"
	err := a.UpdateEvent(context.Background(), "ghost", models.EventUpdate{Title: &title})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteEvent_NoContentSucceeds(t *testing.T) {
	a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	a.SetToken("sometoken")

	require.NoError(t, a.DeleteEvent(context.Background(), "any-id"))
}

func TestMapHTTPError_ValidationStatuses(t *testing.T) {
	a, _ := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	a.SetToken("sometoken")

	_, err := a.CreateEvent(context.Background(), models.Event{})
	require.ErrorIs(t, err, ErrValidation)
}
