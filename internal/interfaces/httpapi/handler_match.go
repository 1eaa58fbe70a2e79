package httpapi

import (
	"net/http"

	"github.com/riskibarqy/tournament-ledger/internal/usecase"
)

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createMatchRequest
	if err := h.decodeRequest(w, r.WithContext(ctx), &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Create(ctx, usecase.CreateMatchInput{
		TournamentID: tournamentID,
		HomeTeamID:   req.HomeTeamID,
		AwayTeamID:   req.AwayTeamID,
		MatchDate:    req.MatchDate,
		Field:        req.Field,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed",
			"tournament_id", tournamentID,
			"home_team_id", req.HomeTeamID,
			"away_team_id", req.AwayTeamID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(item))
}

func (h *Handler) ListMatchesByTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchesByTournament")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.matchService.ListByTournament(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(items))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Get(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateMatchRequest
	if err := h.decodeRequest(w, r.WithContext(ctx), &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.UpdateDetails(ctx, usecase.UpdateMatchInput{
		MatchID:   matchID,
		MatchDate: req.MatchDate,
		Field:     req.Field,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatch")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.matchService.Delete(ctx, matchID); err != nil {
		h.logger.WarnContext(ctx, "delete match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeNoContent(w)
}

func (h *Handler) PostponeMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PostponeMatch")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Postpone(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "postpone match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) RescheduleMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RescheduleMatch")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req rescheduleMatchRequest
	if err := h.decodeRequest(w, r.WithContext(ctx), &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Reschedule(ctx, matchID, req.MatchDate)
	if err != nil {
		h.logger.WarnContext(ctx, "reschedule match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

// RegisterMatchResult sets or corrects the result. The response carries both
// teams so clients see the new totals without another round trip.
func (h *Handler) RegisterMatchResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterMatchResult")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req matchResultRequest
	if err := h.decodeRequest(w, r.WithContext(ctx), &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.matchService.RegisterResult(ctx, usecase.RegisterResultInput{
		MatchID:   matchID,
		HomeScore: *req.HomeScore,
		AwayScore: *req.AwayScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "register match result failed",
			"match_id", matchID,
			"home_score", *req.HomeScore,
			"away_score", *req.AwayScore,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchResultToDTO(result))
}

func (h *Handler) RevertMatchResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RevertMatchResult")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.matchService.RevertResult(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "revert match result failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchResultToDTO(result))
}
