package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmarakulin/learn-logbook/internal/app"
	"github.com/dmarakulin/learn-logbook/internal/logger"
	"github.com/dmarakulin/learn-logbook/internal/utils"
	"github.com/dmarakulin/learn-logbook/models"
)

// listEvents serves the sync delta query: all events of the authenticated
// user touched strictly after the optional updated_after RFC 3339 timestamp.
// Without the parameter the full collection is returned.
func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var since time.Time
	if raw := r.URL.Query().Get("updated_after"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			log.Err(err).Str("updated_after", raw).Msg("unparsable updated_after parameter")
			http.Error(w, app.MsgBadUpdatedAfter, http.StatusBadRequest)
			return
		}
		since = parsed
	}

	events, err := h.services.EventService.EventsUpdatedSince(r.Context(), userID, since)
	if err != nil {
		log.Err(err).Msg("events delta query failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, models.EventsResponse{Events: events, Length: len(events)}, http.StatusOK); err != nil {
		log.Err(err).Msg("writing events response failed")
	}
}

func (h *Handler) createEvent(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	// The owner always comes from the token, never from the payload.
	event.OwnerID = userID

	created, err := h.services.EventService.CreateEvent(r.Context(), event)
	if err != nil {
		log.Err(err).Msg("event creation failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, created, http.StatusCreated); err != nil {
		log.Err(err).Msg("writing created event failed")
	}
}

func (h *Handler) updateEvent(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var update models.EventUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	eventID := chi.URLParam(r, "id")
	updated, err := h.services.EventService.UpdateEvent(r.Context(), userID, eventID, update)
	if err != nil {
		log.Err(err).Str("event", eventID).Msg("event update failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, updated, http.StatusOK); err != nil {
		log.Err(err).Msg("writing updated event failed")
	}
}

// deleteEvent answers 204 regardless of whether the event existed, making
// client-side deletes safely retryable.
func (h *Handler) deleteEvent(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	eventID := chi.URLParam(r, "id")
	if err := h.services.EventService.DeleteEvent(r.Context(), userID, eventID); err != nil {
		log.Err(err).Str("event", eventID).Msg("event deletion failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
