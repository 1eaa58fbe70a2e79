// Package unitofwork is the boundary where several aggregates are persisted
// together. A match result touches three rows (the match and both teams) and
// only the storage layer can make those writes atomic.
package unitofwork

import (
	"context"

	"github.com/riskibarqy/tournament-ledger/internal/domain/match"
	"github.com/riskibarqy/tournament-ledger/internal/domain/player"
	"github.com/riskibarqy/tournament-ledger/internal/domain/team"
	"github.com/riskibarqy/tournament-ledger/internal/domain/tournament"
)

// Repositories bundles the repositories bound to one unit of work, or to the
// committed state when used outside of one.
type Repositories struct {
	Tournaments tournament.Repository
	Teams       team.Repository
	Matches     match.Repository
	Players     player.Repository
}

// UnitOfWork runs fn against repositories whose writes are committed together
// when fn returns nil and discarded otherwise. Implementations serialize units
// of work that touch the same rows.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
