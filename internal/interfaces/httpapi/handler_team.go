package httpapi

import (
	"net/http"

	"github.com/riskibarqy/tournament-ledger/internal/usecase"
)

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req teamRequest
	if err := h.decodeRequest(w, r.WithContext(ctx), &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Create(ctx, usecase.CreateTeamInput{
		TournamentID: tournamentID,
		Name:         req.Name,
		CoachName:    req.CoachName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(item))
}

// ListTeamsByTournament returns teams with their running totals, ordered by
// id. It is not a standings table.
func (h *Handler) ListTeamsByTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamsByTournament")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.teamService.ListByTournament(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamsToDTO(items))
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Get(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeam")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req teamRequest
	if err := h.decodeRequest(w, r.WithContext(ctx), &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Update(ctx, usecase.UpdateTeamInput{
		TeamID:    teamID,
		Name:      req.Name,
		CoachName: req.CoachName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.teamService.Delete(ctx, teamID); err != nil {
		h.logger.WarnContext(ctx, "delete team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeNoContent(w)
}
