package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/riskibarqy/liga-fantasy/internal/usecase"
)

func (h *Handler) ListGameWeeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameWeeks")
	defer span.End()

	weeks, err := h.gameWeekService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list game weeks failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameWeeksToDTO(weeks))
}

func (h *Handler) GetCurrentGameWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentGameWeek")
	defer span.End()

	week, err := h.gameWeekService.Current(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameWeekToDTO(week))
}

func (h *Handler) GetGameWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameWeek")
	defer span.End()

	gameWeekID, err := strconv.Atoi(r.PathValue("gameWeekID"))
	if err != nil || gameWeekID <= 0 {
		writeError(ctx, w, fmt.Errorf("%w: game week id must be a positive integer", usecase.ErrInvalidInput))
		return
	}

	week, err := h.gameWeekService.ByID(ctx, gameWeekID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameWeekToDTO(week))
}
