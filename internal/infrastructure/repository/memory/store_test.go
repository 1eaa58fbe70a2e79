package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/tournament-ledger/internal/domain/tournament"
	"github.com/riskibarqy/tournament-ledger/internal/domain/unitofwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_DoCommitsOnSuccess(t *testing.T) {
	store := NewStore()
	ctx := t.Context()

	var id int64
	err := store.Do(ctx, func(ctx context.Context, repos unitofwork.Repositories) error {
		item, err := tournament.New("Spring Cup", "Twelve clubs over four weekends")
		require.NoError(t, err)
		if err := repos.Tournaments.Insert(ctx, &item); err != nil {
			return err
		}
		id = item.ID
		return nil
	})
	require.NoError(t, err)

	got, exists, err := store.Repositories().Tournaments.GetByID(ctx, id)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, "Spring Cup", got.Name)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestStore_DoDiscardsOnError(t *testing.T) {
	store := NewStore()
	ctx := t.Context()
	boom := errors.New("boom")

	err := store.Do(ctx, func(ctx context.Context, repos unitofwork.Repositories) error {
		item, err := tournament.New("Autumn Cup", "Knockout cup for amateur sides")
		require.NoError(t, err)
		if err := repos.Tournaments.Insert(ctx, &item); err != nil {
			return err
		}

		inside, err := repos.Tournaments.List(ctx)
		require.NoError(t, err)
		assert.Len(t, inside, 1)

		outside, err := store.Repositories().Tournaments.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, outside)
		return boom
	})
	require.ErrorIs(t, err, boom)

	items, err := store.Repositories().Tournaments.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStore_ReturnedMatchesDoNotAliasStoredResult(t *testing.T) {
	store := NewStore()
	ctx := t.Context()
	require.NoError(t, SeedDemo(ctx, store))

	repos := store.Repositories()
	tournaments, err := repos.Tournaments.List(ctx)
	require.NoError(t, err)
	require.Len(t, tournaments, 1)

	matches, err := repos.Matches.ListByTournament(ctx, tournaments[0].ID)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	require.NotNil(t, matches[0].Result)

	matches[0].Result.Home = 99

	again, exists, err := repos.Matches.GetByID(ctx, matches[0].ID)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, 2, again.Result.Home)
}

func TestSeedDemo_TotalsMatchFinishedMatch(t *testing.T) {
	store := NewStore()
	ctx := t.Context()
	require.NoError(t, SeedDemo(ctx, store))

	repos := store.Repositories()
	tournaments, err := repos.Tournaments.List(ctx)
	require.NoError(t, err)
	require.Len(t, tournaments, 1)
	assert.Equal(t, tournament.StatusInProgress, tournaments[0].Status)

	teams, err := repos.Teams.ListByTournament(ctx, tournaments[0].ID)
	require.NoError(t, err)
	require.Len(t, teams, 4)
	assert.Equal(t, 3, teams[0].Totals.Points)
	assert.Equal(t, 0, teams[1].Totals.Points)
	assert.Equal(t, 1, teams[1].Totals.Losses)
	assert.Zero(t, teams[2].Totals.MatchesPlayed)

	players, err := repos.Players.ListByTeam(ctx, teams[0].ID)
	require.NoError(t, err)
	assert.Len(t, players, 4)
}
