package usecase

import (
	"testing"

	"github.com/riskibarqy/tournament-ledger/internal/domain/domainerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamService_CreateRequiresTournament(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.teams.Create(t.Context(), CreateTeamInput{TournamentID: 7, Name: "Team A", CoachName: "Coach A"})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.teams.ListByTournament(t.Context(), 7)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTeamService_UpdateKeepsTotals(t *testing.T) {
	svc := newTestServices(t)
	ids := seedMatch(t, svc)
	ctx := t.Context()

	_, err := svc.matches.RegisterResult(ctx, RegisterResultInput{MatchID: ids.matchID, HomeScore: 2, AwayScore: 0})
	require.NoError(t, err)

	updated, err := svc.teams.Update(ctx, UpdateTeamInput{TeamID: ids.homeID, Name: "Team Alpha", CoachName: "Coach Alpha"})
	require.NoError(t, err)
	assert.Equal(t, "Team Alpha", updated.Name)
	assert.Equal(t, 3, updated.Totals.Points)

	_, err = svc.teams.Update(ctx, UpdateTeamInput{TeamID: ids.homeID, Name: " ", CoachName: "Coach Alpha"})
	require.ErrorIs(t, err, domainerr.ErrValidation)
}

func TestTeamService_DeleteWithMatches(t *testing.T) {
	svc := newTestServices(t)
	ids := seedMatch(t, svc)
	ctx := t.Context()

	require.ErrorIs(t, svc.teams.Delete(ctx, ids.homeID), ErrConflict)

	require.NoError(t, svc.matches.Delete(ctx, ids.matchID))
	_, err := svc.players.Create(ctx, CreatePlayerInput{TeamID: ids.homeID, Name: "Kaka Silva", Position: "FWD", JerseyNumber: 22})
	require.NoError(t, err)

	require.NoError(t, svc.teams.Delete(ctx, ids.homeID))

	teams, err := svc.teams.ListByTournament(ctx, ids.tournamentID)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, ids.awayID, teams[0].ID)
}
