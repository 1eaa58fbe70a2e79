package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/tournament-ledger/internal/domain/player"
)

type PlayerRepository struct {
	access access
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID int64) (player.Player, bool, error) {
	var (
		item   player.Player
		exists bool
	)
	r.access.read(func(s *snapshot) {
		item, exists = s.players[playerID]
	})
	return item, exists, nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID int64) ([]player.Player, error) {
	out := make([]player.Player, 0)
	r.access.read(func(s *snapshot) {
		for _, item := range s.players {
			if item.TeamID == teamID {
				out = append(out, item)
			}
		}
	})
	slices.SortFunc(out, func(a, b player.Player) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *PlayerRepository) Insert(_ context.Context, item *player.Player) error {
	now := r.access.now()
	return r.access.write(func(s *snapshot) error {
		s.lastPlayerID++
		row := *item
		row.ID = s.lastPlayerID
		row.CreatedAt = now
		row.UpdatedAt = now
		s.players[row.ID] = row
		*item = row
		return nil
	})
}

func (r *PlayerRepository) Update(_ context.Context, item player.Player) error {
	now := r.access.now()
	return r.access.write(func(s *snapshot) error {
		current, ok := s.players[item.ID]
		if !ok {
			return fmt.Errorf("update player %d: row not found", item.ID)
		}
		item.CreatedAt = current.CreatedAt
		item.UpdatedAt = now
		s.players[item.ID] = item
		return nil
	})
}

func (r *PlayerRepository) Delete(_ context.Context, playerID int64) error {
	return r.access.write(func(s *snapshot) error {
		delete(s.players, playerID)
		return nil
	})
}

func (r *PlayerRepository) DeleteByTeam(_ context.Context, teamID int64) error {
	return r.access.write(func(s *snapshot) error {
		for id, item := range s.players {
			if item.TeamID == teamID {
				delete(s.players, id)
			}
		}
		return nil
	})
}
