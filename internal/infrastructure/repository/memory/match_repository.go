package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/tournament-ledger/internal/domain/match"
)

type MatchRepository struct {
	access access
}

func (r *MatchRepository) GetByID(_ context.Context, matchID int64) (match.Match, bool, error) {
	var (
		item   match.Match
		exists bool
	)
	r.access.read(func(s *snapshot) {
		item, exists = s.matches[matchID]
		item = cloneMatch(item)
	})
	return item, exists, nil
}

func (r *MatchRepository) GetForUpdate(ctx context.Context, matchID int64) (match.Match, bool, error) {
	return r.GetByID(ctx, matchID)
}

func (r *MatchRepository) ListByTournament(_ context.Context, tournamentID int64) ([]match.Match, error) {
	out := make([]match.Match, 0)
	r.access.read(func(s *snapshot) {
		for _, item := range s.matches {
			if item.TournamentID == tournamentID {
				out = append(out, cloneMatch(item))
			}
		}
	})
	slices.SortFunc(out, func(a, b match.Match) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *MatchRepository) CountByTeam(_ context.Context, teamID int64) (int, error) {
	count := 0
	r.access.read(func(s *snapshot) {
		for _, item := range s.matches {
			if item.InvolvesTeam(teamID) {
				count++
			}
		}
	})
	return count, nil
}

func (r *MatchRepository) Insert(_ context.Context, item *match.Match) error {
	now := r.access.now()
	return r.access.write(func(s *snapshot) error {
		s.lastMatchID++
		row := cloneMatch(*item)
		row.ID = s.lastMatchID
		row.CreatedAt = now
		row.UpdatedAt = now
		s.matches[row.ID] = row
		*item = cloneMatch(row)
		return nil
	})
}

func (r *MatchRepository) Update(_ context.Context, item match.Match) error {
	now := r.access.now()
	return r.access.write(func(s *snapshot) error {
		current, ok := s.matches[item.ID]
		if !ok {
			return fmt.Errorf("update match %d: row not found", item.ID)
		}
		row := cloneMatch(item)
		row.CreatedAt = current.CreatedAt
		row.UpdatedAt = now
		s.matches[item.ID] = row
		return nil
	})
}

func (r *MatchRepository) Delete(_ context.Context, matchID int64) error {
	return r.access.write(func(s *snapshot) error {
		delete(s.matches, matchID)
		return nil
	})
}

func (r *MatchRepository) DeleteByTournament(_ context.Context, tournamentID int64) error {
	return r.access.write(func(s *snapshot) error {
		for id, item := range s.matches {
			if item.TournamentID == tournamentID {
				delete(s.matches, id)
			}
		}
		return nil
	})
}
