package httpapi

import (
	"net/http"
)

// RunSettlementJob triggers one settlement cycle for the active game week.
// Reached only through the internal job token middleware.
func (h *Handler) RunSettlementJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSettlementJob")
	defer span.End()

	result, err := h.settlementService.Run(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "settlement job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
