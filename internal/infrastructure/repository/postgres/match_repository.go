package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riskibarqy/tournament-ledger/internal/domain/domainerr"
	"github.com/riskibarqy/tournament-ledger/internal/domain/match"
	qb "github.com/riskibarqy/tournament-ledger/internal/platform/querybuilder"
)

type MatchRepository struct {
	db executor
}

func NewMatchRepository(db executor) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID int64) (match.Match, bool, error) {
	return r.get(ctx, qb.Select("*").From("matches").Where(qb.Eq("id", matchID)).Limit(1))
}

func (r *MatchRepository) GetForUpdate(ctx context.Context, matchID int64) (match.Match, bool, error) {
	return r.get(ctx, qb.Select("*").From("matches").Where(qb.Eq("id", matchID)).ForUpdate())
}

func (r *MatchRepository) get(ctx context.Context, builder *qb.SelectBuilder) (match.Match, bool, error) {
	query, args, err := builder.ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match: %w", err)
	}

	item, err := matchFromRow(row)
	if err != nil {
		return match.Match{}, false, err
	}
	return item, true, nil
}

func (r *MatchRepository) ListByTournament(ctx context.Context, tournamentID int64) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("tournament_id", tournamentID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by tournament query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by tournament: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		item, err := matchFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *MatchRepository) CountByTeam(ctx context.Context, teamID int64) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("matches").
		Where(qb.Expr("(home_team_id = ? OR away_team_id = ?)", teamID, teamID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count matches by team query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count matches by team: %w", err)
	}
	return count, nil
}

func (r *MatchRepository) Insert(ctx context.Context, item *match.Match) error {
	home, away := scoreColumns(item.Result)
	query, args, err := qb.InsertModel("matches", matchInsertModel{
		TournamentID: item.TournamentID,
		HomeTeamID:   item.HomeTeamID,
		AwayTeamID:   item.AwayTeamID,
		MatchDate:    item.MatchDate,
		Field:        item.Field,
		HomeScore:    home,
		AwayScore:    away,
		Status:       string(item.Status),
	}, returningInserted)
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}

	var row insertedRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	item.ID, item.CreatedAt, item.UpdatedAt = row.ID, row.CreatedAt, row.UpdatedAt
	return nil
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	home, away := scoreColumns(item.Result)
	query, args, err := qb.Update("matches").
		Set("match_date", item.MatchDate).
		Set("field", item.Field).
		Set("home_score", home).
		Set("away_score", away).
		Set("status", string(item.Status)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	return expectOneRow(result, "update match", item.ID)
}

func (r *MatchRepository) Delete(ctx context.Context, matchID int64) error {
	return r.delete(ctx, qb.Eq("id", matchID))
}

func (r *MatchRepository) DeleteByTournament(ctx context.Context, tournamentID int64) error {
	return r.delete(ctx, qb.Eq("tournament_id", tournamentID))
}

func (r *MatchRepository) delete(ctx context.Context, cond qb.Condition) error {
	query, args, err := qb.DeleteFrom("matches").Where(cond).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete matches query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete matches: %w", err)
	}
	return nil
}

func scoreColumns(score *match.Score) (home, away sql.NullInt64) {
	if score == nil {
		return intPtrToNullInt64(nil), intPtrToNullInt64(nil)
	}
	return intPtrToNullInt64(&score.Home), intPtrToNullInt64(&score.Away)
}

func matchFromRow(row matchTableModel) (match.Match, error) {
	item := match.Match{
		ID:           row.ID,
		TournamentID: row.TournamentID,
		HomeTeamID:   row.HomeTeamID,
		AwayTeamID:   row.AwayTeamID,
		MatchDate:    row.MatchDate,
		Field:        row.Field,
		Status:       match.Status(row.Status),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}

	home, away := nullInt64ToIntPtr(row.HomeScore), nullInt64ToIntPtr(row.AwayScore)
	switch {
	case home != nil && away != nil:
		item.Result = &match.Score{Home: *home, Away: *away}
	case home != nil || away != nil:
		return match.Match{}, domainerr.Consistency("match %d has only one score column set", row.ID)
	}
	return item, nil
}
