package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-ledger/internal/domain/unitofwork"
	"github.com/riskibarqy/tournament-ledger/internal/platform/resilience"
)

// UnitOfWork runs each Do in its own transaction. Row locks taken through the
// ForUpdate reads serialize writers on the same rows. Lock order is tournament,
// then match, then teams by ascending id; reconciliation skips the match step.
type UnitOfWork struct {
	db      *sqlx.DB
	breaker *resilience.CircuitBreaker
}

// NewUnitOfWork accepts a nil breaker.
func NewUnitOfWork(db *sqlx.DB, breaker *resilience.CircuitBreaker) *UnitOfWork {
	return &UnitOfWork{db: db, breaker: breaker}
}

// NewRepositories binds repositories to db outside of any transaction.
func NewRepositories(db *sqlx.DB) unitofwork.Repositories {
	return repositoriesFor(db)
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos unitofwork.Repositories) error) error {
	if u.breaker == nil {
		return u.do(ctx, fn)
	}
	return u.breaker.Execute(func() error {
		return u.do(ctx, fn)
	}, isConnectionFailure)
}

func (u *UnitOfWork) do(ctx context.Context, fn func(ctx context.Context, repos unitofwork.Repositories) error) error {
	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin unit of work: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, repositoriesFor(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit unit of work: %w", err)
	}
	return nil
}

// isConnectionFailure reports errors that say the database is unreachable,
// as opposed to a query or business rule failing.
func isConnectionFailure(err error) bool {
	return errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded)
}

func repositoriesFor(db executor) unitofwork.Repositories {
	return unitofwork.Repositories{
		Tournaments: NewTournamentRepository(db),
		Teams:       NewTeamRepository(db),
		Matches:     NewMatchRepository(db),
		Players:     NewPlayerRepository(db),
	}
}
