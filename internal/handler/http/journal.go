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

func (h *Handler) listJournalEntries(w http.ResponseWriter, r *http.Request) {
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

	entries, err := h.services.JournalService.EntriesUpdatedSince(r.Context(), userID, since)
	if err != nil {
		log.Err(err).Msg("journal delta query failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, models.JournalEntriesResponse{Entries: entries, Length: len(entries)}, http.StatusOK); err != nil {
		log.Err(err).Msg("writing journal response failed")
	}
}

func (h *Handler) createJournalEntry(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var entry models.JournalEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	entry.OwnerID = userID

	created, err := h.services.JournalService.CreateEntry(r.Context(), entry)
	if err != nil {
		log.Err(err).Msg("journal entry creation failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, created, http.StatusCreated); err != nil {
		log.Err(err).Msg("writing created journal entry failed")
	}
}

func (h *Handler) updateJournalEntry(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var update models.JournalEntryUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	entryID := chi.URLParam(r, "id")
	updated, err := h.services.JournalService.UpdateEntry(r.Context(), userID, entryID, update)
	if err != nil {
		log.Err(err).Str("entry", entryID).Msg("journal entry update failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, updated, http.StatusOK); err != nil {
		log.Err(err).Msg("writing updated journal entry failed")
	}
}

func (h *Handler) deleteJournalEntry(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	entryID := chi.URLParam(r, "id")
	if err := h.services.JournalService.DeleteEntry(r.Context(), userID, entryID); err != nil {
		log.Err(err).Str("entry", entryID).Msg("journal entry deletion failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
