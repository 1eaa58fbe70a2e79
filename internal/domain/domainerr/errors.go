// Package domainerr holds the error kinds raised by the competition
// aggregates. Every kind is terminal for the operation that produced it.
package domainerr

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrValidation        = crerr.New("validation failed")
	ErrInvalidTransition = crerr.New("invalid state transition")
	ErrCrossAggregate    = crerr.New("cross aggregate validation failed")
	ErrInvalidOperation  = crerr.New("invalid operation")
	ErrConsistency       = crerr.New("consistency check failed")
)

func Validation(format string, args ...any) error {
	return crerr.Wrapf(ErrValidation, format, args...)
}

func InvalidTransition(format string, args ...any) error {
	return crerr.Wrapf(ErrInvalidTransition, format, args...)
}

func InvalidOperation(format string, args ...any) error {
	return crerr.Wrapf(ErrInvalidOperation, format, args...)
}

func Consistency(format string, args ...any) error {
	return crerr.Wrapf(ErrConsistency, format, args...)
}

// Side names which team of a match failed a cross aggregate check.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// CrossAggregateError reports a team that does not line up with the match
// it is being used for.
type CrossAggregateError struct {
	Side              Side
	TeamID            int64
	TeamTournamentID  int64
	MatchTournamentID int64
	Reason            string
}

func (e *CrossAggregateError) Error() string {
	return fmt.Sprintf("%s: %s team %d: %s (team tournament=%d, match tournament=%d)",
		ErrCrossAggregate.Error(), e.Side, e.TeamID, e.Reason, e.TeamTournamentID, e.MatchTournamentID)
}

func (e *CrossAggregateError) Is(target error) bool {
	return target == ErrCrossAggregate
}
