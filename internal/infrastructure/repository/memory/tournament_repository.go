package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/tournament-ledger/internal/domain/tournament"
)

type TournamentRepository struct {
	access access
}

func (r *TournamentRepository) List(_ context.Context) ([]tournament.Tournament, error) {
	var out []tournament.Tournament
	r.access.read(func(s *snapshot) {
		out = make([]tournament.Tournament, 0, len(s.tournaments))
		for _, item := range s.tournaments {
			out = append(out, item)
		}
	})
	slices.SortFunc(out, func(a, b tournament.Tournament) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *TournamentRepository) GetByID(_ context.Context, tournamentID int64) (tournament.Tournament, bool, error) {
	var (
		item   tournament.Tournament
		exists bool
	)
	r.access.read(func(s *snapshot) {
		item, exists = s.tournaments[tournamentID]
	})
	return item, exists, nil
}

// GetForUpdate needs no row lock here: units of work already run one at a
// time.
func (r *TournamentRepository) GetForUpdate(ctx context.Context, tournamentID int64) (tournament.Tournament, bool, error) {
	return r.GetByID(ctx, tournamentID)
}

func (r *TournamentRepository) Insert(_ context.Context, item *tournament.Tournament) error {
	now := r.access.now()
	return r.access.write(func(s *snapshot) error {
		s.lastTournamentID++
		row := *item
		row.ID = s.lastTournamentID
		row.CreatedAt = now
		row.UpdatedAt = now
		s.tournaments[row.ID] = row
		*item = row
		return nil
	})
}

func (r *TournamentRepository) Update(_ context.Context, item tournament.Tournament) error {
	now := r.access.now()
	return r.access.write(func(s *snapshot) error {
		current, ok := s.tournaments[item.ID]
		if !ok {
			return fmt.Errorf("update tournament %d: row not found", item.ID)
		}
		item.CreatedAt = current.CreatedAt
		item.UpdatedAt = now
		s.tournaments[item.ID] = item
		return nil
	})
}

func (r *TournamentRepository) Delete(_ context.Context, tournamentID int64) error {
	return r.access.write(func(s *snapshot) error {
		delete(s.tournaments, tournamentID)
		return nil
	})
}
