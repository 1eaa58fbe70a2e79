package matchresult

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/tournament-ledger/internal/domain/domainerr"
	"github.com/riskibarqy/tournament-ledger/internal/domain/match"
	"github.com/riskibarqy/tournament-ledger/internal/domain/team"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tournamentID = 10

func fixture(t *testing.T) (*match.Match, *team.Team, *team.Team) {
	t.Helper()

	home, err := team.New(tournamentID, "Team A", "Coach A")
	require.NoError(t, err)
	home.ID = 1

	away, err := team.New(tournamentID, "Team B", "Coach B")
	require.NoError(t, err)
	away.ID = 2

	m, err := match.New(tournamentID, home.ID, away.ID, time.Date(2026, 5, 1, 15, 0, 0, 0, time.UTC), "Main Field")
	require.NoError(t, err)
	m.ID = 7

	return &m, &home, &away
}

func TestRegisterResult_FirstResult(t *testing.T) {
	m, home, away := fixture(t)

	outcome, err := NewCoordinator().RegisterResult(m, home, away, 3, 1)
	require.NoError(t, err)

	assert.False(t, outcome.IsCorrection)
	assert.Nil(t, outcome.Previous)
	assert.Equal(t, match.StatusFinished, m.Status)
	assert.Equal(t, &match.Score{Home: 3, Away: 1}, m.Result)

	assert.Equal(t, team.Totals{Points: 3, MatchesPlayed: 1, Wins: 1, GoalsFor: 3, GoalsAgainst: 1, GoalDifference: 2}, home.Totals)
	assert.Equal(t, team.Totals{Points: 0, MatchesPlayed: 1, Losses: 1, GoalsFor: 1, GoalsAgainst: 3, GoalDifference: -2}, away.Totals)
}

func TestRegisterResult_CorrectionReplacesDraw(t *testing.T) {
	m, home, away := fixture(t)
	c := NewCoordinator()

	_, err := c.RegisterResult(m, home, away, 2, 2)
	require.NoError(t, err)
	require.Equal(t, 1, home.Totals.Points)
	require.Equal(t, 1, away.Totals.Points)

	outcome, err := c.RegisterResult(m, home, away, 3, 1)
	require.NoError(t, err)

	assert.True(t, outcome.IsCorrection)
	require.NotNil(t, outcome.Previous)
	assert.Equal(t, match.Score{Home: 2, Away: 2}, *outcome.Previous)

	assert.Equal(t, 3, home.Totals.Points)
	assert.Equal(t, 1, home.Totals.Wins)
	assert.Equal(t, 0, home.Totals.Draws)
	assert.Equal(t, 1, home.Totals.MatchesPlayed)
	assert.Equal(t, 0, away.Totals.Points)
	assert.Equal(t, 1, away.Totals.Losses)
	assert.Equal(t, 0, away.Totals.Draws)
}

func TestRegisterResult_SameResultTwice(t *testing.T) {
	m, home, away := fixture(t)
	c := NewCoordinator()

	first, err := c.RegisterResult(m, home, away, 3, 1)
	require.NoError(t, err)
	homeOnce, awayOnce := home.Totals, away.Totals

	second, err := c.RegisterResult(m, home, away, 3, 1)
	require.NoError(t, err)

	assert.False(t, first.IsCorrection)
	assert.True(t, second.IsCorrection)
	assert.Equal(t, homeOnce, home.Totals)
	assert.Equal(t, awayOnce, away.Totals)
}

func TestRegisterResult_CorrectionsConverge(t *testing.T) {
	sequences := [][]match.Score{
		{{Home: 2, Away: 1}, {Home: 2, Away: 2}, {Home: 1, Away: 3}},
		{{Home: 0, Away: 0}, {Home: 5, Away: 0}, {Home: 0, Away: 0}},
		{{Home: 1, Away: 2}, {Home: 4, Away: 4}, {Home: 2, Away: 1}, {Home: 3, Away: 3}},
	}

	for _, seq := range sequences {
		m, home, away := fixture(t)
		c := NewCoordinator()
		for _, s := range seq {
			_, err := c.RegisterResult(m, home, away, s.Home, s.Away)
			require.NoError(t, err)
		}

		last := seq[len(seq)-1]
		freshMatch, freshHome, freshAway := fixture(t)
		_, err := c.RegisterResult(freshMatch, freshHome, freshAway, last.Home, last.Away)
		require.NoError(t, err)

		assert.Equal(t, freshHome.Totals, home.Totals, "sequence %v", seq)
		assert.Equal(t, freshAway.Totals, away.Totals, "sequence %v", seq)
		assert.Equal(t, freshMatch.Result, m.Result)
	}
}

func TestRegisterResult_TeamFromOtherTournament(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(home, away *team.Team)
		side   domainerr.Side
	}{
		{
			name:   "home team in other tournament",
			mutate: func(home, _ *team.Team) { home.TournamentID = 99 },
			side:   domainerr.SideHome,
		},
		{
			name:   "away team in other tournament",
			mutate: func(_, away *team.Team) { away.TournamentID = 99 },
			side:   domainerr.SideAway,
		},
		{
			name:   "teams swapped",
			mutate: func(home, away *team.Team) { home.ID, away.ID = away.ID, home.ID },
			side:   domainerr.SideHome,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, home, away := fixture(t)
			_, err := NewCoordinator().RegisterResult(m, home, away, 2, 0)
			require.NoError(t, err)

			tt.mutate(home, away)
			matchBefore, homeBefore, awayBefore := *m, *home, *away

			_, err = NewCoordinator().RegisterResult(m, home, away, 0, 4)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerr.ErrCrossAggregate))

			var crossErr *domainerr.CrossAggregateError
			require.True(t, errors.As(err, &crossErr))
			assert.Equal(t, tt.side, crossErr.Side)

			assert.Equal(t, matchBefore, *m)
			assert.Equal(t, homeBefore, *home)
			assert.Equal(t, awayBefore, *away)
		})
	}
}

func TestRegisterResult_PostponedMatchUntouched(t *testing.T) {
	m, home, away := fixture(t)
	require.NoError(t, m.Postpone())
	homeBefore, awayBefore := *home, *away

	_, err := NewCoordinator().RegisterResult(m, home, away, 1, 0)
	assert.ErrorIs(t, err, domainerr.ErrInvalidTransition)
	assert.Equal(t, match.StatusPostponed, m.Status)
	assert.Equal(t, homeBefore, *home)
	assert.Equal(t, awayBefore, *away)
}

func TestRegisterResult_FailureLeavesEverythingUnchanged(t *testing.T) {
	m, home, away := fixture(t)
	c := NewCoordinator()
	_, err := c.RegisterResult(m, home, away, 1, 1)
	require.NoError(t, err)

	// The away team lost its draw somewhere else: reversing it must fail.
	away.Totals = team.Totals{}
	matchBefore, homeBefore, awayBefore := *m, *home, *away

	_, err = c.RegisterResult(m, home, away, 2, 0)
	assert.ErrorIs(t, err, domainerr.ErrConsistency)
	assert.Equal(t, matchBefore, *m)
	assert.Equal(t, homeBefore, *home)
	assert.Equal(t, awayBefore, *away)
}

func TestRevertResult(t *testing.T) {
	m, home, away := fixture(t)
	c := NewCoordinator()

	assert.ErrorIs(t, c.RevertResult(m, home, away), domainerr.ErrInvalidOperation)

	_, err := c.RegisterResult(m, home, away, 4, 2)
	require.NoError(t, err)
	require.NoError(t, c.RevertResult(m, home, away))

	assert.False(t, m.HasResult())
	assert.Equal(t, match.StatusScheduled, m.Status)
	assert.Equal(t, team.Totals{}, home.Totals)
	assert.Equal(t, team.Totals{}, away.Totals)

	outcome, err := c.RegisterResult(m, home, away, 1, 0)
	require.NoError(t, err)
	assert.False(t, outcome.IsCorrection)
	assert.Equal(t, 3, home.Totals.Points)
}

func TestPrepareForDeletion_NoResult(t *testing.T) {
	m, home, away := fixture(t)
	home.Totals = team.Totals{Points: 4, MatchesPlayed: 2, Wins: 1, Draws: 1, GoalsFor: 3, GoalsAgainst: 1, GoalDifference: 2}
	homeBefore, awayBefore, matchBefore := *home, *away, *m

	require.NoError(t, NewCoordinator().PrepareForDeletion(m, home, away))

	assert.Equal(t, homeBefore, *home)
	assert.Equal(t, awayBefore, *away)
	assert.Equal(t, matchBefore, *m)
}

func TestPrepareForDeletion_FinishedMatch(t *testing.T) {
	m, home, away := fixture(t)
	_, err := m.AssignResult(3, 1)
	require.NoError(t, err)
	home.Totals = team.Totals{Points: 3, MatchesPlayed: 1, Wins: 1, GoalsFor: 3, GoalsAgainst: 1, GoalDifference: 2}
	away.Totals = team.Totals{Points: 0, MatchesPlayed: 1, Losses: 1, GoalsFor: 1, GoalsAgainst: 3, GoalDifference: -2}

	require.NoError(t, NewCoordinator().PrepareForDeletion(m, home, away))

	assert.Equal(t, team.Totals{}, home.Totals)
	assert.Equal(t, team.Totals{}, away.Totals)
}

func TestPrepareForDeletion_ChecksMembership(t *testing.T) {
	m, home, away := fixture(t)
	_, err := NewCoordinator().RegisterResult(m, home, away, 0, 1)
	require.NoError(t, err)

	away.TournamentID = 11
	err = NewCoordinator().PrepareForDeletion(m, home, away)
	assert.ErrorIs(t, err, domainerr.ErrCrossAggregate)
	assert.True(t, m.HasResult())
}
