package usecase

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/tournament-ledger/internal/domain/domainerr"
	"github.com/riskibarqy/tournament-ledger/internal/domain/match"
	"github.com/riskibarqy/tournament-ledger/internal/domain/team"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchService_RegisterResult_PersistsAllThree(t *testing.T) {
	svc := newTestServices(t)
	ids := seedMatch(t, svc)

	res, err := svc.matches.RegisterResult(t.Context(), RegisterResultInput{MatchID: ids.matchID, HomeScore: 3, AwayScore: 1})
	require.NoError(t, err)
	assert.False(t, res.IsCorrection)
	assert.Equal(t, 3, res.HomeTeam.Totals.Points)

	stored, err := svc.matches.Get(t.Context(), ids.matchID)
	require.NoError(t, err)
	assert.Equal(t, match.StatusFinished, stored.Status)
	assert.Equal(t, &match.Score{Home: 3, Away: 1}, stored.Result)

	assert.Equal(t, team.Totals{Points: 3, MatchesPlayed: 1, Wins: 1, GoalsFor: 3, GoalsAgainst: 1, GoalDifference: 2}, getTeam(t, svc, ids.homeID).Totals)
	assert.Equal(t, team.Totals{MatchesPlayed: 1, Losses: 1, GoalsFor: 1, GoalsAgainst: 3, GoalDifference: -2}, getTeam(t, svc, ids.awayID).Totals)
}

func TestMatchService_RegisterResult_Correction(t *testing.T) {
	svc := newTestServices(t)
	ids := seedMatch(t, svc)
	ctx := t.Context()

	_, err := svc.matches.RegisterResult(ctx, RegisterResultInput{MatchID: ids.matchID, HomeScore: 2, AwayScore: 2})
	require.NoError(t, err)

	res, err := svc.matches.RegisterResult(ctx, RegisterResultInput{MatchID: ids.matchID, HomeScore: 3, AwayScore: 1})
	require.NoError(t, err)
	assert.True(t, res.IsCorrection)
	require.NotNil(t, res.Previous)
	assert.Equal(t, match.Score{Home: 2, Away: 2}, *res.Previous)

	home := getTeam(t, svc, ids.homeID)
	assert.Equal(t, 3, home.Totals.Points)
	assert.Equal(t, 0, home.Totals.Draws)
	assert.Equal(t, 1, home.Totals.MatchesPlayed)
}

func TestMatchService_RegisterResult_PostponedLeavesTeamsUntouched(t *testing.T) {
	svc := newTestServices(t)
	ids := seedMatch(t, svc)
	ctx := t.Context()

	_, err := svc.matches.Postpone(ctx, ids.matchID)
	require.NoError(t, err)

	_, err = svc.matches.RegisterResult(ctx, RegisterResultInput{MatchID: ids.matchID, HomeScore: 1, AwayScore: 0})
	require.ErrorIs(t, err, domainerr.ErrInvalidTransition)

	assert.Equal(t, team.Totals{}, getTeam(t, svc, ids.homeID).Totals)
	assert.Equal(t, team.Totals{}, getTeam(t, svc, ids.awayID).Totals)

	rescheduled, err := svc.matches.Reschedule(ctx, ids.matchID, time.Date(2026, 8, 15, 18, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, match.StatusScheduled, rescheduled.Status)

	_, err = svc.matches.RegisterResult(ctx, RegisterResultInput{MatchID: ids.matchID, HomeScore: 1, AwayScore: 0})
	require.NoError(t, err)
}

func TestMatchService_RegisterResult_NegativeScore(t *testing.T) {
	svc := newTestServices(t)
	ids := seedMatch(t, svc)

	_, err := svc.matches.RegisterResult(t.Context(), RegisterResultInput{MatchID: ids.matchID, HomeScore: -1, AwayScore: 0})
	require.ErrorIs(t, err, domainerr.ErrValidation)

	stored, err := svc.matches.Get(t.Context(), ids.matchID)
	require.NoError(t, err)
	assert.False(t, stored.HasResult())
}

func TestMatchService_RegisterResult_UnknownMatch(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.matches.RegisterResult(t.Context(), RegisterResultInput{MatchID: 404, HomeScore: 1, AwayScore: 0})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.matches.RegisterResult(t.Context(), RegisterResultInput{MatchID: 0, HomeScore: 1, AwayScore: 0})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestMatchService_RevertResult(t *testing.T) {
	svc := newTestServices(t)
	ids := seedMatch(t, svc)
	ctx := t.Context()

	_, err := svc.matches.RevertResult(ctx, ids.matchID)
	require.ErrorIs(t, err, domainerr.ErrInvalidOperation)

	_, err = svc.matches.RegisterResult(ctx, RegisterResultInput{MatchID: ids.matchID, HomeScore: 0, AwayScore: 2})
	require.NoError(t, err)

	res, err := svc.matches.RevertResult(ctx, ids.matchID)
	require.NoError(t, err)
	require.NotNil(t, res.Previous)
	assert.Equal(t, match.Score{Home: 0, Away: 2}, *res.Previous)
	assert.Equal(t, match.StatusScheduled, res.Match.Status)
	assert.Equal(t, team.Totals{}, getTeam(t, svc, ids.homeID).Totals)
	assert.Equal(t, team.Totals{}, getTeam(t, svc, ids.awayID).Totals)
}

func TestMatchService_Delete(t *testing.T) {
	t.Run("scheduled match leaves totals alone", func(t *testing.T) {
		svc := newTestServices(t)
		ids := seedMatch(t, svc)

		require.NoError(t, svc.matches.Delete(t.Context(), ids.matchID))

		_, err := svc.matches.Get(t.Context(), ids.matchID)
		require.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, team.Totals{}, getTeam(t, svc, ids.homeID).Totals)
	})

	t.Run("finished match is reversed", func(t *testing.T) {
		svc := newTestServices(t)
		ids := seedMatch(t, svc)
		ctx := t.Context()

		_, err := svc.matches.RegisterResult(ctx, RegisterResultInput{MatchID: ids.matchID, HomeScore: 3, AwayScore: 1})
		require.NoError(t, err)
		require.NoError(t, svc.matches.Delete(ctx, ids.matchID))

		assert.Equal(t, team.Totals{}, getTeam(t, svc, ids.homeID).Totals)
		assert.Equal(t, team.Totals{}, getTeam(t, svc, ids.awayID).Totals)
	})
}

func TestMatchService_Create_Rules(t *testing.T) {
	svc := newTestServices(t)
	ids := seedMatch(t, svc)
	ctx := t.Context()

	other, err := svc.tournaments.Create(ctx, CreateTournamentInput{Name: "Other Cup", Description: "A different tournament"})
	require.NoError(t, err)
	stranger, err := svc.teams.Create(ctx, CreateTeamInput{TournamentID: other.ID, Name: "Team C", CoachName: "Coach C"})
	require.NoError(t, err)

	date := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   CreateMatchInput
		wantErr error
	}{
		{
			name:    "away team from other tournament",
			input:   CreateMatchInput{TournamentID: ids.tournamentID, HomeTeamID: ids.homeID, AwayTeamID: stranger.ID, MatchDate: date, Field: "North Pitch"},
			wantErr: domainerr.ErrCrossAggregate,
		},
		{
			name:    "unknown team",
			input:   CreateMatchInput{TournamentID: ids.tournamentID, HomeTeamID: ids.homeID, AwayTeamID: 999, MatchDate: date, Field: "North Pitch"},
			wantErr: ErrNotFound,
		},
		{
			name:    "same team twice",
			input:   CreateMatchInput{TournamentID: ids.tournamentID, HomeTeamID: ids.homeID, AwayTeamID: ids.homeID, MatchDate: date, Field: "North Pitch"},
			wantErr: domainerr.ErrValidation,
		},
		{
			name:    "blank field",
			input:   CreateMatchInput{TournamentID: ids.tournamentID, HomeTeamID: ids.homeID, AwayTeamID: ids.awayID, MatchDate: date, Field: "  "},
			wantErr: domainerr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.matches.Create(ctx, tt.input)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	var crossErr *domainerr.CrossAggregateError
	_, err = svc.matches.Create(ctx, tests[0].input)
	require.True(t, errors.As(err, &crossErr))
	assert.Equal(t, domainerr.SideAway, crossErr.Side)
}

func TestMatchService_Create_ClosedTournament(t *testing.T) {
	svc := newTestServices(t)
	ids := seedMatch(t, svc)
	ctx := t.Context()

	_, err := svc.tournaments.End(ctx, ids.tournamentID)
	require.NoError(t, err)

	_, err = svc.matches.Create(ctx, CreateMatchInput{
		TournamentID: ids.tournamentID,
		HomeTeamID:   ids.awayID,
		AwayTeamID:   ids.homeID,
		MatchDate:    time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC),
		Field:        "North Pitch",
	})
	require.ErrorIs(t, err, domainerr.ErrInvalidTransition)
}

func TestMatchService_UpdateDetails_FinishedMatch(t *testing.T) {
	svc := newTestServices(t)
	ids := seedMatch(t, svc)
	ctx := t.Context()

	updated, err := svc.matches.UpdateDetails(ctx, UpdateMatchInput{
		MatchID:   ids.matchID,
		MatchDate: time.Date(2026, 8, 2, 18, 0, 0, 0, time.UTC),
		Field:     "South Pitch",
	})
	require.NoError(t, err)
	assert.Equal(t, "South Pitch", updated.Field)

	_, err = svc.matches.RegisterResult(ctx, RegisterResultInput{MatchID: ids.matchID, HomeScore: 1, AwayScore: 1})
	require.NoError(t, err)

	_, err = svc.matches.UpdateDetails(ctx, UpdateMatchInput{MatchID: ids.matchID, MatchDate: updated.MatchDate, Field: "East Pitch"})
	require.ErrorIs(t, err, domainerr.ErrInvalidTransition)
}

func TestMatchService_ConcurrentCorrectionsStayConsistent(t *testing.T) {
	svc := newTestServices(t)
	ids := seedMatch(t, svc)
	ctx := t.Context()

	scores := []match.Score{{Home: 1, Away: 0}, {Home: 2, Away: 2}, {Home: 0, Away: 3}, {Home: 4, Away: 1}}

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		score := scores[i%len(scores)]
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.matches.RegisterResult(ctx, RegisterResultInput{MatchID: ids.matchID, HomeScore: score.Home, AwayScore: score.Away})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	home := getTeam(t, svc, ids.homeID)
	away := getTeam(t, svc, ids.awayID)
	assert.Equal(t, 1, home.Totals.MatchesPlayed)
	assert.Equal(t, 1, away.Totals.MatchesPlayed)

	report, err := svc.reconcile.ReconcileTournament(ctx, ReconcileInput{TournamentID: ids.tournamentID})
	require.NoError(t, err)
	assert.Zero(t, report.DriftCount)
}
