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

func (h *Handler) listGoals(w http.ResponseWriter, r *http.Request) {
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

	goals, err := h.services.GoalService.GoalsUpdatedSince(r.Context(), userID, since)
	if err != nil {
		log.Err(err).Msg("goal delta query failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, models.StudyGoalsResponse{Goals: goals, Length: len(goals)}, http.StatusOK); err != nil {
		log.Err(err).Msg("writing goals response failed")
	}
}

func (h *Handler) createGoal(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var goal models.StudyGoal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	goal.OwnerID = userID

	created, err := h.services.GoalService.CreateGoal(r.Context(), goal)
	if err != nil {
		log.Err(err).Msg("goal creation failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, created, http.StatusCreated); err != nil {
		log.Err(err).Msg("writing created goal failed")
	}
}

func (h *Handler) updateGoal(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var update models.StudyGoalUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	goalID := chi.URLParam(r, "id")
	updated, err := h.services.GoalService.UpdateGoal(r.Context(), userID, goalID, update)
	if err != nil {
		log.Err(err).Str("goal", goalID).Msg("goal update failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, updated, http.StatusOK); err != nil {
		log.Err(err).Msg("writing updated goal failed")
	}
}

func (h *Handler) deleteGoal(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	goalID := chi.URLParam(r, "id")
	if err := h.services.GoalService.DeleteGoal(r.Context(), userID, goalID); err != nil {
		log.Err(err).Str("goal", goalID).Msg("goal deletion failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
