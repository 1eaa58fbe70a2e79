// Package memory keeps every aggregate in process memory. It backs local runs
// and the use case tests, and it honours the same unit of work contract as the
// postgres adapter: writes inside Store.Do become visible together or not at
// all.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/riskibarqy/tournament-ledger/internal/domain/match"
	"github.com/riskibarqy/tournament-ledger/internal/domain/player"
	"github.com/riskibarqy/tournament-ledger/internal/domain/team"
	"github.com/riskibarqy/tournament-ledger/internal/domain/tournament"
	"github.com/riskibarqy/tournament-ledger/internal/domain/unitofwork"
)

var errUnitOfWorkClosed = errors.New("memory: unit of work already finished")

type snapshot struct {
	tournaments map[int64]tournament.Tournament
	teams       map[int64]team.Team
	matches     map[int64]match.Match
	players     map[int64]player.Player

	lastTournamentID int64
	lastTeamID       int64
	lastMatchID      int64
	lastPlayerID     int64
}

func newSnapshot() *snapshot {
	return &snapshot{
		tournaments: make(map[int64]tournament.Tournament),
		teams:       make(map[int64]team.Team),
		matches:     make(map[int64]match.Match),
		players:     make(map[int64]player.Player),
	}
}

func (s *snapshot) clone() *snapshot {
	out := &snapshot{
		tournaments:      make(map[int64]tournament.Tournament, len(s.tournaments)),
		teams:            make(map[int64]team.Team, len(s.teams)),
		matches:          make(map[int64]match.Match, len(s.matches)),
		players:          make(map[int64]player.Player, len(s.players)),
		lastTournamentID: s.lastTournamentID,
		lastTeamID:       s.lastTeamID,
		lastMatchID:      s.lastMatchID,
		lastPlayerID:     s.lastPlayerID,
	}
	for id, item := range s.tournaments {
		out.tournaments[id] = item
	}
	for id, item := range s.teams {
		out.teams[id] = item
	}
	for id, item := range s.matches {
		out.matches[id] = cloneMatch(item)
	}
	for id, item := range s.players {
		out.players[id] = item
	}
	return out
}

// cloneMatch detaches the result pointer so callers never share it with the
// stored row.
func cloneMatch(m match.Match) match.Match {
	if m.Result != nil {
		score := *m.Result
		m.Result = &score
	}
	return m
}

// access is how repositories reach a snapshot: either the committed one,
// guarded by the store locks, or the private working copy of a unit of work.
type access interface {
	read(fn func(s *snapshot))
	write(fn func(s *snapshot) error) error
	now() time.Time
}

// Store owns the committed snapshot. Units of work run one at a time against a
// clone and swap it in on success.
type Store struct {
	mu        sync.RWMutex
	committed *snapshot

	writer sync.Mutex
	clock  func() time.Time
}

func NewStore() *Store {
	return &Store{
		committed: newSnapshot(),
		clock:     time.Now,
	}
}

// Repositories returns repositories bound to the committed state. Each write
// through them is its own unit of work.
func (s *Store) Repositories() unitofwork.Repositories {
	return repositoriesFor(committedAccess{store: s})
}

func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, repos unitofwork.Repositories) error) error {
	s.writer.Lock()
	defer s.writer.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	working := s.committed.clone()
	s.mu.RUnlock()

	tx := &txAccess{working: working, clock: s.clock}
	defer tx.close()

	if err := fn(ctx, repositoriesFor(tx)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.committed = working
	s.mu.Unlock()
	return nil
}

func repositoriesFor(a access) unitofwork.Repositories {
	return unitofwork.Repositories{
		Tournaments: &TournamentRepository{access: a},
		Teams:       &TeamRepository{access: a},
		Matches:     &MatchRepository{access: a},
		Players:     &PlayerRepository{access: a},
	}
}

type committedAccess struct {
	store *Store
}

func (c committedAccess) read(fn func(s *snapshot)) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	fn(c.store.committed)
}

func (c committedAccess) write(fn func(s *snapshot) error) error {
	c.store.writer.Lock()
	defer c.store.writer.Unlock()

	c.store.mu.RLock()
	working := c.store.committed.clone()
	c.store.mu.RUnlock()

	if err := fn(working); err != nil {
		return err
	}

	c.store.mu.Lock()
	c.store.committed = working
	c.store.mu.Unlock()
	return nil
}

func (c committedAccess) now() time.Time {
	return c.store.clock().UTC()
}

type txAccess struct {
	working *snapshot
	clock   func() time.Time
	closed  bool
}

func (t *txAccess) close() {
	t.closed = true
}

func (t *txAccess) read(fn func(s *snapshot)) {
	fn(t.working)
}

func (t *txAccess) write(fn func(s *snapshot) error) error {
	if t.closed {
		return errUnitOfWorkClosed
	}
	return fn(t.working)
}

func (t *txAccess) now() time.Time {
	return t.clock().UTC()
}
