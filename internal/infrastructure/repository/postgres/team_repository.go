package postgres

import (
	"context"
	"fmt"

	"github.com/riskibarqy/tournament-ledger/internal/domain/team"
	qb "github.com/riskibarqy/tournament-ledger/internal/platform/querybuilder"
)

type TeamRepository struct {
	db executor
}

func NewTeamRepository(db executor) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	return r.get(ctx, qb.Select("*").From("teams").Where(qb.Eq("id", teamID)).Limit(1))
}

func (r *TeamRepository) GetForUpdate(ctx context.Context, teamID int64) (team.Team, bool, error) {
	return r.get(ctx, qb.Select("*").From("teams").Where(qb.Eq("id", teamID)).ForUpdate())
}

func (r *TeamRepository) get(ctx context.Context, builder *qb.SelectBuilder) (team.Team, bool, error) {
	query, args, err := builder.ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team: %w", err)
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) ListByTournament(ctx context.Context, tournamentID int64) ([]team.Team, error) {
	return r.list(ctx, teamsByTournamentQuery(tournamentID, false))
}

func (r *TeamRepository) ListByTournamentForUpdate(ctx context.Context, tournamentID int64) ([]team.Team, error) {
	return r.list(ctx, teamsByTournamentQuery(tournamentID, true))
}

func teamsByTournamentQuery(tournamentID int64, lock bool) *qb.SelectBuilder {
	b := qb.Select("*").From("teams").
		Where(qb.Eq("tournament_id", tournamentID)).
		OrderBy("id")
	if lock {
		b.ForUpdate()
	}
	return b
}

func (r *TeamRepository) list(ctx context.Context, builder *qb.SelectBuilder) ([]team.Team, error) {
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by tournament query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by tournament: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) Insert(ctx context.Context, item *team.Team) error {
	totals := item.Totals
	query, args, err := qb.InsertModel("teams", teamInsertModel{
		TournamentID:   item.TournamentID,
		Name:           item.Name,
		CoachName:      item.CoachName,
		Points:         totals.Points,
		MatchesPlayed:  totals.MatchesPlayed,
		Wins:           totals.Wins,
		Draws:          totals.Draws,
		Losses:         totals.Losses,
		GoalsFor:       totals.GoalsFor,
		GoalsAgainst:   totals.GoalsAgainst,
		GoalDifference: totals.GoalDifference,
	}, returningInserted)
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}

	var row insertedRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	item.ID, item.CreatedAt, item.UpdatedAt = row.ID, row.CreatedAt, row.UpdatedAt
	return nil
}

// Update writes every column but tournament_id; a team never changes
// tournament.
func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	query, args, err := teamUpdateQuery(item)
	if err != nil {
		return fmt.Errorf("build update team query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	return expectOneRow(result, "update team", item.ID)
}

func teamUpdateQuery(item team.Team) (string, []any, error) {
	totals := item.Totals
	b, err := qb.UpdateModel("teams", teamUpdateModel{
		Name:           item.Name,
		CoachName:      item.CoachName,
		Points:         totals.Points,
		MatchesPlayed:  totals.MatchesPlayed,
		Wins:           totals.Wins,
		Draws:          totals.Draws,
		Losses:         totals.Losses,
		GoalsFor:       totals.GoalsFor,
		GoalsAgainst:   totals.GoalsAgainst,
		GoalDifference: totals.GoalDifference,
	})
	if err != nil {
		return "", nil, err
	}
	return b.SetExpr("updated_at", "NOW()").Where(qb.Eq("id", item.ID)).ToSQL()
}

func (r *TeamRepository) Delete(ctx context.Context, teamID int64) error {
	return r.delete(ctx, qb.Eq("id", teamID))
}

func (r *TeamRepository) DeleteByTournament(ctx context.Context, tournamentID int64) error {
	return r.delete(ctx, qb.Eq("tournament_id", tournamentID))
}

func (r *TeamRepository) delete(ctx context.Context, cond qb.Condition) error {
	query, args, err := qb.DeleteFrom("teams").Where(cond).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete teams query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete teams: %w", err)
	}
	return nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:           row.ID,
		TournamentID: row.TournamentID,
		Name:         row.Name,
		CoachName:    row.CoachName,
		Totals: team.Totals{
			Points:         row.Points,
			MatchesPlayed:  row.MatchesPlayed,
			Wins:           row.Wins,
			Draws:          row.Draws,
			Losses:         row.Losses,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
