package httpapi

import (
	"net/http"

	"github.com/riskibarqy/tournament-ledger/internal/usecase"
)

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req playerRequest
	if err := h.decodeRequest(w, r.WithContext(ctx), &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.Create(ctx, usecase.CreatePlayerInput{
		TeamID:       teamID,
		Name:         req.Name,
		Position:     req.Position,
		JerseyNumber: req.JerseyNumber,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(item))
}

func (h *Handler) ListPlayersByTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayersByTeam")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.playerService.ListByTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.Get(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req playerRequest
	if err := h.decodeRequest(w, r.WithContext(ctx), &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.Update(ctx, usecase.UpdatePlayerInput{
		PlayerID:     playerID,
		Name:         req.Name,
		Position:     req.Position,
		JerseyNumber: req.JerseyNumber,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.playerService.Delete(ctx, playerID); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeNoContent(w)
}
