package postgres

import (
	"context"
	"fmt"

	"github.com/riskibarqy/tournament-ledger/internal/domain/tournament"
	qb "github.com/riskibarqy/tournament-ledger/internal/platform/querybuilder"
)

type TournamentRepository struct {
	db executor
}

func NewTournamentRepository(db executor) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) List(ctx context.Context) ([]tournament.Tournament, error) {
	query, args, err := qb.Select("*").From("tournaments").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select tournaments query: %w", err)
	}

	var rows []tournamentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select tournaments: %w", err)
	}

	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		out = append(out, tournamentFromRow(row))
	}
	return out, nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID int64) (tournament.Tournament, bool, error) {
	return r.get(ctx, qb.Select("*").From("tournaments").Where(qb.Eq("id", tournamentID)).Limit(1))
}

func (r *TournamentRepository) GetForUpdate(ctx context.Context, tournamentID int64) (tournament.Tournament, bool, error) {
	return r.get(ctx, qb.Select("*").From("tournaments").Where(qb.Eq("id", tournamentID)).ForUpdate())
}

func (r *TournamentRepository) get(ctx context.Context, builder *qb.SelectBuilder) (tournament.Tournament, bool, error) {
	query, args, err := builder.ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build select tournament by id query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("select tournament by id: %w", err)
	}
	return tournamentFromRow(row), true, nil
}

func (r *TournamentRepository) Insert(ctx context.Context, item *tournament.Tournament) error {
	query, args, err := qb.InsertModel("tournaments", tournamentInsertModel{
		Name:        item.Name,
		Description: item.Description,
		Status:      string(item.Status),
	}, returningInserted)
	if err != nil {
		return fmt.Errorf("build insert tournament query: %w", err)
	}

	var row insertedRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return fmt.Errorf("insert tournament: %w", err)
	}
	item.ID, item.CreatedAt, item.UpdatedAt = row.ID, row.CreatedAt, row.UpdatedAt
	return nil
}

func (r *TournamentRepository) Update(ctx context.Context, item tournament.Tournament) error {
	query, args, err := qb.Update("tournaments").
		Set("name", item.Name).
		Set("description", item.Description).
		Set("status", string(item.Status)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update tournament query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update tournament: %w", err)
	}
	return expectOneRow(result, "update tournament", item.ID)
}

func (r *TournamentRepository) Delete(ctx context.Context, tournamentID int64) error {
	query, args, err := qb.DeleteFrom("tournaments").Where(qb.Eq("id", tournamentID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete tournament query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete tournament: %w", err)
	}
	return nil
}

func tournamentFromRow(row tournamentTableModel) tournament.Tournament {
	return tournament.Tournament{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Status:      tournament.Status(row.Status),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
