package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// executor is what repositories need from either *sqlx.DB or *sqlx.Tx.
type executor interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// expectOneRow turns a zero-row UPDATE into an error so a vanished row is
// never reported as saved.
func expectOneRow(result sql.Result, what string, id int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected %s: %w", what, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s %d: row not found", what, id)
	}
	return nil
}

func nullInt64ToIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int64)
	return &out
}

func intPtrToNullInt64(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
