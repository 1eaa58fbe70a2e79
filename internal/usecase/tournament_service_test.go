package usecase

import (
	"testing"
	"time"

	"github.com/riskibarqy/tournament-ledger/internal/domain/domainerr"
	"github.com/riskibarqy/tournament-ledger/internal/domain/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTournamentService_Lifecycle(t *testing.T) {
	svc := newTestServices(t)
	ctx := t.Context()

	cup, err := svc.tournaments.Create(ctx, CreateTournamentInput{Name: "Harbour Cup", Description: "Summer cup by the harbour"})
	require.NoError(t, err)
	assert.Equal(t, tournament.StatusCreated, cup.Status)
	assert.Positive(t, cup.ID)

	_, err = svc.tournaments.End(ctx, cup.ID)
	require.ErrorIs(t, err, domainerr.ErrInvalidTransition)

	started, err := svc.tournaments.Start(ctx, cup.ID)
	require.NoError(t, err)
	assert.Equal(t, tournament.StatusInProgress, started.Status)

	require.ErrorIs(t, svc.tournaments.Delete(ctx, cup.ID), domainerr.ErrInvalidTransition)

	ended, err := svc.tournaments.End(ctx, cup.ID)
	require.NoError(t, err)
	assert.Equal(t, tournament.StatusCompleted, ended.Status)

	_, err = svc.tournaments.Cancel(ctx, cup.ID)
	require.ErrorIs(t, err, domainerr.ErrInvalidTransition)

	stored, err := svc.tournaments.Get(ctx, cup.ID)
	require.NoError(t, err)
	assert.Equal(t, tournament.StatusCompleted, stored.Status)
}

func TestTournamentService_CreateValidation(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.tournaments.Create(t.Context(), CreateTournamentInput{Name: "HC", Description: "Summer cup by the harbour"})
	require.ErrorIs(t, err, domainerr.ErrValidation)

	items, err := svc.tournaments.List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTournamentService_Update(t *testing.T) {
	svc := newTestServices(t)
	ctx := t.Context()

	cup, err := svc.tournaments.Create(ctx, CreateTournamentInput{Name: "Harbour Cup", Description: "Summer cup by the harbour"})
	require.NoError(t, err)

	updated, err := svc.tournaments.Update(ctx, UpdateTournamentInput{TournamentID: cup.ID, Name: "Harbour Trophy", Description: "Summer trophy by the harbour"})
	require.NoError(t, err)
	assert.Equal(t, "Harbour Trophy", updated.Name)

	_, err = svc.tournaments.Update(ctx, UpdateTournamentInput{TournamentID: 99, Name: "Harbour Trophy", Description: "Summer trophy by the harbour"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTournamentService_DeleteCascades(t *testing.T) {
	svc := newTestServices(t)
	ids := seedMatch(t, svc)
	ctx := t.Context()

	_, err := svc.players.Create(ctx, CreatePlayerInput{TeamID: ids.homeID, Name: "Rui Costa", Position: "MID", JerseyNumber: 10})
	require.NoError(t, err)
	_, err = svc.matches.RegisterResult(ctx, RegisterResultInput{MatchID: ids.matchID, HomeScore: 1, AwayScore: 0})
	require.NoError(t, err)

	_, err = svc.tournaments.Cancel(ctx, ids.tournamentID)
	require.NoError(t, err)
	require.NoError(t, svc.tournaments.Delete(ctx, ids.tournamentID))

	_, err = svc.tournaments.Get(ctx, ids.tournamentID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.teams.Get(ctx, ids.homeID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.matches.Get(ctx, ids.matchID)
	require.ErrorIs(t, err, ErrNotFound)

	players, err := svc.store.Repositories().Players.ListByTeam(ctx, ids.homeID)
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestTournamentService_Overview(t *testing.T) {
	svc := newTestServices(t)
	ids := seedMatch(t, svc)
	ctx := t.Context()

	_, err := svc.matches.Create(ctx, CreateMatchInput{
		TournamentID: ids.tournamentID,
		HomeTeamID:   ids.awayID,
		AwayTeamID:   ids.homeID,
		MatchDate:    time.Date(2026, 8, 8, 18, 0, 0, 0, time.UTC),
		Field:        "North Pitch",
	})
	require.NoError(t, err)

	overview, err := svc.tournaments.Overview(ctx, ids.tournamentID)
	require.NoError(t, err)
	assert.Equal(t, ids.tournamentID, overview.Tournament.ID)
	assert.Len(t, overview.Teams, 2)
	assert.Len(t, overview.Matches, 2)
	assert.Less(t, overview.Teams[0].ID, overview.Teams[1].ID)

	_, err = svc.tournaments.Overview(ctx, 404)
	require.ErrorIs(t, err, ErrNotFound)
}
