package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmarakulin/learn-logbook/internal/logger"
	"github.com/dmarakulin/learn-logbook/internal/mock"
	"github.com/dmarakulin/learn-logbook/internal/service"
	"github.com/dmarakulin/learn-logbook/internal/store"
	"github.com/dmarakulin/learn-logbook/internal/utils"
	"github.com/dmarakulin/learn-logbook/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestHandler(ctrl *gomock.Controller) (*Handler, *mock.MockAuthService, *mock.MockEventService) {
	mockAuth := mock.NewMockAuthService(ctrl)
	mockEvents := mock.NewMockEventService(ctrl)

	h := NewHandler(&service.Services{
		AuthService:    mockAuth,
		EventService:   mockEvents,
		JournalService: mock.NewMockJournalService(ctrl),
		GoalService:    mock.NewMockGoalService(ctrl),
		SessionService: mock.NewMockSessionService(ctrl),
	}, logger.Nop())

	return h, mockAuth, mockEvents
}

// authedRequest builds a request whose context already carries the user id,
// bypassing the auth middleware.
func authedRequest(method, target string, body []byte, userID int64) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, userID)
	return r.WithContext(ctx)
}

func TestListEvents_ReturnsDeltaEnvelope(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockEvents := newTestHandler(ctrl)
	since := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mockEvents.EXPECT().
		EventsUpdatedSince(gomock.Any(), int64(7), since).
		Return([]models.Event{{ID: "e1", OwnerID: 7, Title: "calculus"}}, nil)

	r := authedRequest(http.MethodGet, "/api/events?updated_after=2026-03-01T12:00:00Z", nil, 7)
	w := httptest.NewRecorder()
	h.listEvents(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var envelope models.EventsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 1, envelope.Length)
	require.Len(t, envelope.Events, 1)
	assert.Equal(t, "e1", envelope.Events[0].ID)
}

func TestListEvents_MissingWatermarkMeansEverything(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockEvents := newTestHandler(ctrl)

	mockEvents.EXPECT().
		EventsUpdatedSince(gomock.Any(), int64(7), time.Time{}).
		Return(nil, nil)

	r := authedRequest(http.MethodGet, "/api/events", nil, 7)
	w := httptest.NewRecorder()
	h.listEvents(w, r)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestListEvents_BadWatermarkRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _ := newTestHandler(ctrl)

	r := authedRequest(http.MethodGet, "/api/events?updated_after=yesterday", nil, 7)
	w := httptest.NewRecorder()
	h.listEvents(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateEvent_OwnerComesFromToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockEvents := newTestHandler(ctrl)

	mockEvents.EXPECT().
		CreateEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev models.Event) (models.Event, error) {
			assert.Equal(t, int64(7), ev.OwnerID, "payload owner must be overridden by token owner")
			ev.ID = "assigned"
			return ev, nil
		})

	body, _ := json.Marshal(models.Event{OwnerID: 999, Title: "sneaky"})
	r := authedRequest(http.MethodPost, "/api/events", body, 7)
	w := httptest.NewRecorder()
	h.createEvent(w, r)

	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "assigned", created.ID)
}

func TestCreateEvent_ValidationErrorIs400(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockEvents := newTestHandler(ctrl)

	mockEvents.EXPECT().
		CreateEvent(gomock.Any(), gomock.Any()).
		Return(models.Event{}, service.ErrValidationEmptyTitle)

	body, _ := json.Marshal(models.Event{})
	r := authedRequest(http.MethodPost, "/api/events", body, 7)
	w := httptest.NewRecorder()
	h.createEvent(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateEvent_InvalidJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _ := newTestHandler(ctrl)

	r := authedRequest(http.MethodPost, "/api/events", []byte("{{{"), 7)
	w := httptest.NewRecorder()
	h.createEvent(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteEvent_AnswersNoContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, mockEvents := newTestHandler(ctrl)

	mockAuth.EXPECT().ParseToken(gomock.Any(), "sometoken").Return(models.Token{UserID: 7}, nil)
	mockEvents.EXPECT().
		DeleteEvent(gomock.Any(), int64(7), "some-id").
		Return(nil)

	// route through the mux so chi extracts the id
	r := httptest.NewRequest(http.MethodDelete, "/api/events/some-id", nil)
	r.Header.Set("Authorization", "Bearer sometoken")

	w := httptest.NewRecorder()
	h.Init().ServeHTTP(w, r)

	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestUpdateEvent_NotFoundMapsTo404(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, mockEvents := newTestHandler(ctrl)

	mockAuth.EXPECT().ParseToken(gomock.Any(), "sometoken").Return(models.Token{UserID: 7}, nil)
	mockEvents.EXPECT().
		UpdateEvent(gomock.Any(), int64(7), "ghost", gomock.Any()).
		Return(models.Event{}, store.ErrRecordNotFound)

	body, _ := json.Marshal(models.EventUpdate{})
	r := httptest.NewRequest(http.MethodPatch, "/api/events/ghost", bytes.NewReader(body))
	r.Header.Set("Authorization", "Bearer sometoken")

	w := httptest.NewRecorder()
	h.Init().ServeHTTP(w, r)

	require.Equal(t, http.StatusNotFound, w.Code)
}
