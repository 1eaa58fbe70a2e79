package httpapi

import (
	"net/http"

	"github.com/riskibarqy/tournament-ledger/internal/usecase"
)

// RunReconcileJob recomputes team totals from finished matches. With
// "apply": false it only reports drift.
func (h *Handler) RunReconcileJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunReconcileJob")
	defer span.End()

	var req reconcileJobRequest
	if err := h.decodeRequest(w, r.WithContext(ctx), &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	runID := requestIDFromContext(ctx)
	result, err := h.reconcileService.ReconcileTournament(ctx, usecase.ReconcileInput{
		TournamentID: req.TournamentID,
		Apply:        req.Apply,
		MaxWorkers:   req.MaxWorkers,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "reconcile job failed", "run_id", runID, "tournament_id", req.TournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "reconcile job finished",
		"run_id", runID,
		"tournament_id", result.TournamentID,
		"drift_count", result.DriftCount,
		"applied", result.Applied,
	)
	writeSuccess(ctx, w, http.StatusOK, reconcileResultToDTO(runID, result))
}
