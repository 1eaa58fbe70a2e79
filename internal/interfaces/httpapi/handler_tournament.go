package httpapi

import (
	"context"
	"net/http"

	"github.com/riskibarqy/tournament-ledger/internal/domain/tournament"
	"github.com/riskibarqy/tournament-ledger/internal/usecase"
)

func (h *Handler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTournament")
	defer span.End()

	var req tournamentRequest
	if err := h.decodeRequest(w, r.WithContext(ctx), &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tournamentService.Create(ctx, usecase.CreateTournamentInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create tournament failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, tournamentToDTO(item))
}

func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournaments")
	defer span.End()

	items, err := h.tournamentService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list tournaments failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]tournamentDTO, 0, len(items))
	for _, item := range items {
		out = append(out, tournamentToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournament")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tournamentService.Get(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "get tournament failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(item))
}

func (h *Handler) UpdateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTournament")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req tournamentRequest
	if err := h.decodeRequest(w, r.WithContext(ctx), &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tournamentService.Update(ctx, usecase.UpdateTournamentInput{
		TournamentID: tournamentID,
		Name:         req.Name,
		Description:  req.Description,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update tournament failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(item))
}

func (h *Handler) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTournament")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.tournamentService.Delete(ctx, tournamentID); err != nil {
		h.logger.WarnContext(ctx, "delete tournament failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeNoContent(w)
}

func (h *Handler) StartTournament(w http.ResponseWriter, r *http.Request) {
	h.transitionTournament(w, r, "httpapi.Handler.StartTournament", h.tournamentService.Start)
}

func (h *Handler) EndTournament(w http.ResponseWriter, r *http.Request) {
	h.transitionTournament(w, r, "httpapi.Handler.EndTournament", h.tournamentService.End)
}

func (h *Handler) CancelTournament(w http.ResponseWriter, r *http.Request) {
	h.transitionTournament(w, r, "httpapi.Handler.CancelTournament", h.tournamentService.Cancel)
}

func (h *Handler) transitionTournament(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	transition func(ctx context.Context, tournamentID int64) (tournament.Tournament, error),
) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := transition(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "tournament transition failed", "operation", spanName, "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(item))
}

func (h *Handler) GetTournamentOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournamentOverview")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	overview, err := h.tournamentService.Overview(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "tournament overview failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentOverviewDTO{
		Tournament: tournamentToDTO(overview.Tournament),
		Teams:      teamsToDTO(overview.Teams),
		Matches:    matchesToDTO(overview.Matches),
	})
}
