package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/tournament-ledger/internal/domain/team"
)

type TeamRepository struct {
	access access
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	var (
		item   team.Team
		exists bool
	)
	r.access.read(func(s *snapshot) {
		item, exists = s.teams[teamID]
	})
	return item, exists, nil
}

// GetForUpdate needs no row lock here: units of work already run one at a
// time.
func (r *TeamRepository) GetForUpdate(ctx context.Context, teamID int64) (team.Team, bool, error) {
	return r.GetByID(ctx, teamID)
}

func (r *TeamRepository) ListByTournament(_ context.Context, tournamentID int64) ([]team.Team, error) {
	out := make([]team.Team, 0)
	r.access.read(func(s *snapshot) {
		for _, item := range s.teams {
			if item.TournamentID == tournamentID {
				out = append(out, item)
			}
		}
	})
	slices.SortFunc(out, func(a, b team.Team) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

// ListByTournamentForUpdate is a plain read for the same reason as
// GetForUpdate.
func (r *TeamRepository) ListByTournamentForUpdate(ctx context.Context, tournamentID int64) ([]team.Team, error) {
	return r.ListByTournament(ctx, tournamentID)
}

func (r *TeamRepository) Insert(_ context.Context, item *team.Team) error {
	now := r.access.now()
	return r.access.write(func(s *snapshot) error {
		s.lastTeamID++
		row := *item
		row.ID = s.lastTeamID
		row.CreatedAt = now
		row.UpdatedAt = now
		s.teams[row.ID] = row
		*item = row
		return nil
	})
}

func (r *TeamRepository) Update(_ context.Context, item team.Team) error {
	now := r.access.now()
	return r.access.write(func(s *snapshot) error {
		current, ok := s.teams[item.ID]
		if !ok {
			return fmt.Errorf("update team %d: row not found", item.ID)
		}
		item.CreatedAt = current.CreatedAt
		item.UpdatedAt = now
		s.teams[item.ID] = item
		return nil
	})
}

func (r *TeamRepository) Delete(_ context.Context, teamID int64) error {
	return r.access.write(func(s *snapshot) error {
		delete(s.teams, teamID)
		return nil
	})
}

func (r *TeamRepository) DeleteByTournament(_ context.Context, tournamentID int64) error {
	return r.access.write(func(s *snapshot) error {
		for id, item := range s.teams {
			if item.TournamentID == tournamentID {
				delete(s.teams, id)
			}
		}
		return nil
	})
}
