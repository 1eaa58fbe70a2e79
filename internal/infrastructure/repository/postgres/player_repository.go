package postgres

import (
	"context"
	"fmt"

	"github.com/riskibarqy/tournament-ledger/internal/domain/player"
	qb "github.com/riskibarqy/tournament-ledger/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db executor
}

func NewPlayerRepository(db executor) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID int64) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("id", playerID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player by id query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player by id: %w", err)
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID int64) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by team query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by team: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func (r *PlayerRepository) Insert(ctx context.Context, item *player.Player) error {
	query, args, err := qb.InsertModel("players", playerInsertModel{
		TeamID:       item.TeamID,
		Name:         item.Name,
		Position:     string(item.Position),
		JerseyNumber: item.JerseyNumber,
	}, returningInserted)
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}

	var row insertedRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	item.ID, item.CreatedAt, item.UpdatedAt = row.ID, row.CreatedAt, row.UpdatedAt
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player) error {
	query, args, err := qb.Update("players").
		Set("name", item.Name).
		Set("position", string(item.Position)).
		Set("jersey_number", item.JerseyNumber).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	return expectOneRow(result, "update player", item.ID)
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID int64) error {
	return r.delete(ctx, qb.Eq("id", playerID))
}

func (r *PlayerRepository) DeleteByTeam(ctx context.Context, teamID int64) error {
	return r.delete(ctx, qb.Eq("team_id", teamID))
}

func (r *PlayerRepository) delete(ctx context.Context, cond qb.Condition) error {
	query, args, err := qb.DeleteFrom("players").Where(cond).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete players query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete players: %w", err)
	}
	return nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:           row.ID,
		TeamID:       row.TeamID,
		Name:         row.Name,
		Position:     player.Position(row.Position),
		JerseyNumber: row.JerseyNumber,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
