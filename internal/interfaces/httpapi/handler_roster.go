package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/liga-fantasy/internal/usecase"
)

func (h *Handler) AddRosterPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddRosterPlayers")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req rosterMutationRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.rosterService.AddPlayers(ctx, usecase.RosterMutationInput{
		UserID:     principal.UserID,
		GameWeekID: req.GameWeekID,
		PlayerIDs:  req.PlayerIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add roster players failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterMutationToDTO(result))
}

func (h *Handler) RemoveRosterPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveRosterPlayers")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req rosterMutationRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.rosterService.RemovePlayers(ctx, usecase.RosterMutationInput{
		UserID:     principal.UserID,
		GameWeekID: req.GameWeekID,
		PlayerIDs:  req.PlayerIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "remove roster players failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterMutationToDTO(result))
}

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoster")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	rawWeekID := strings.TrimSpace(r.URL.Query().Get("game_week_id"))
	if rawWeekID == "" {
		writeError(ctx, w, fmt.Errorf("%w: game_week_id query parameter is required", usecase.ErrInvalidInput))
		return
	}
	gameWeekID, err := strconv.Atoi(rawWeekID)
	if err != nil || gameWeekID <= 0 {
		writeError(ctx, w, fmt.Errorf("%w: game_week_id must be a positive integer", usecase.ErrInvalidInput))
		return
	}

	targetUserID := strings.TrimSpace(r.URL.Query().Get("user_id"))

	item, members, err := h.rosterService.ViewRoster(ctx, principal, targetUserID, gameWeekID)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster failed",
			"user_id", principal.UserID,
			"target_user_id", targetUserID,
			"game_week_id", gameWeekID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterViewDTO{
		Roster:  rosterToDTO(item),
		Players: playersToDTO(members),
	})
}
