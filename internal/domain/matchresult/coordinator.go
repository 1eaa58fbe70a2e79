// Package matchresult keeps a match and the running totals of its two teams
// consistent when a result is registered, corrected or removed.
//
// The coordinator performs no I/O and holds no locks. It takes aggregates that
// were loaded by the caller and mutates them in memory; persisting the three
// of them atomically, and serializing calls that touch the same match or team,
// is the caller's job (see unitofwork.UnitOfWork). Two interleaved
// RegisterResult calls on the same match could both read the same previous
// score and double apply a delta.
package matchresult

import (
	"github.com/riskibarqy/tournament-ledger/internal/domain/domainerr"
	"github.com/riskibarqy/tournament-ledger/internal/domain/match"
	"github.com/riskibarqy/tournament-ledger/internal/domain/team"
)

type Coordinator struct{}

func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// RegisterResult assigns a result to the match and applies it to both teams.
// When the match already had a result, the previous one is reversed out of
// the teams first, so any sequence of corrections leaves the teams as if only
// the latest result had ever been applied.
//
// Nothing is written back to m, home or away unless every step succeeds.
func (c *Coordinator) RegisterResult(m *match.Match, home, away *team.Team, homeScore, awayScore int) (match.ResultOutcome, error) {
	if err := checkParticipants(m, home, away); err != nil {
		return match.ResultOutcome{}, err
	}

	nextMatch := *m
	nextHome := *home
	nextAway := *away

	outcome, err := nextMatch.AssignResult(homeScore, awayScore)
	if err != nil {
		return match.ResultOutcome{}, err
	}

	if outcome.IsCorrection {
		prev := outcome.Previous
		if err := reverse(&nextHome, &nextAway, prev.Home, prev.Away); err != nil {
			return match.ResultOutcome{}, err
		}
	}

	if err := nextHome.ApplyOutcome(homeScore, awayScore); err != nil {
		return match.ResultOutcome{}, err
	}
	if err := nextAway.ApplyOutcome(awayScore, homeScore); err != nil {
		return match.ResultOutcome{}, err
	}

	*m, *home, *away = nextMatch, nextHome, nextAway
	return outcome, nil
}

// RevertResult removes the current result from both teams and puts the match
// back on the schedule.
func (c *Coordinator) RevertResult(m *match.Match, home, away *team.Team) error {
	if !m.HasResult() {
		return domainerr.InvalidOperation("match %d has no result to revert", m.ID)
	}
	if err := checkParticipants(m, home, away); err != nil {
		return err
	}

	nextMatch := *m
	nextHome := *home
	nextAway := *away

	score := *nextMatch.Result
	if err := reverse(&nextHome, &nextAway, score.Home, score.Away); err != nil {
		return err
	}
	if err := nextMatch.ClearResult(); err != nil {
		return err
	}

	*m, *home, *away = nextMatch, nextHome, nextAway
	return nil
}

// PrepareForDeletion reverses the result of a match about to be deleted. A
// match that never finished needs nothing.
func (c *Coordinator) PrepareForDeletion(m *match.Match, home, away *team.Team) error {
	if !m.HasResult() {
		return nil
	}
	return c.RevertResult(m, home, away)
}

func reverse(home, away *team.Team, homeScore, awayScore int) error {
	if err := home.ReverseOutcome(homeScore, awayScore); err != nil {
		return err
	}
	return away.ReverseOutcome(awayScore, homeScore)
}

func checkParticipants(m *match.Match, home, away *team.Team) error {
	if err := checkSide(domainerr.SideHome, m, home, m.HomeTeamID); err != nil {
		return err
	}
	return checkSide(domainerr.SideAway, m, away, m.AwayTeamID)
}

func checkSide(side domainerr.Side, m *match.Match, t *team.Team, expectedTeamID int64) error {
	if t.TournamentID != m.TournamentID {
		return &domainerr.CrossAggregateError{
			Side:              side,
			TeamID:            t.ID,
			TeamTournamentID:  t.TournamentID,
			MatchTournamentID: m.TournamentID,
			Reason:            "team does not belong to the match tournament",
		}
	}
	if t.ID != expectedTeamID {
		return &domainerr.CrossAggregateError{
			Side:              side,
			TeamID:            t.ID,
			TeamTournamentID:  t.TournamentID,
			MatchTournamentID: m.TournamentID,
			Reason:            "team is not the match " + string(side) + " team",
		}
	}
	return nil
}
