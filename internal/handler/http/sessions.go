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

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
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

	sessions, err := h.services.SessionService.SessionsUpdatedSince(r.Context(), userID, since)
	if err != nil {
		log.Err(err).Msg("session delta query failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, models.TimerSessionsResponse{Sessions: sessions, Length: len(sessions)}, http.StatusOK); err != nil {
		log.Err(err).Msg("writing sessions response failed")
	}
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var session models.TimerSession
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	session.OwnerID = userID

	created, err := h.services.SessionService.CreateSession(r.Context(), session)
	if err != nil {
		log.Err(err).Msg("session creation failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, created, http.StatusCreated); err != nil {
		log.Err(err).Msg("writing created session failed")
	}
}

func (h *Handler) updateSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var update models.TimerSessionUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	sessionID := chi.URLParam(r, "id")
	updated, err := h.services.SessionService.UpdateSession(r.Context(), userID, sessionID, update)
	if err != nil {
		log.Err(err).Str("session", sessionID).Msg("session update failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, updated, http.StatusOK); err != nil {
		log.Err(err).Msg("writing updated session failed")
	}
}

func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	sessionID := chi.URLParam(r, "id")
	if err := h.services.SessionService.DeleteSession(r.Context(), userID, sessionID); err != nil {
		log.Err(err).Str("session", sessionID).Msg("session deletion failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
