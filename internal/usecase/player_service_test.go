package usecase

import (
	"testing"

	"github.com/riskibarqy/tournament-ledger/internal/domain/domainerr"
	"github.com/riskibarqy/tournament-ledger/internal/domain/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerService_CRUD(t *testing.T) {
	svc := newTestServices(t)
	ids := seedMatch(t, svc)
	ctx := t.Context()

	created, err := svc.players.Create(ctx, CreatePlayerInput{TeamID: ids.homeID, Name: "Evan Dimas", Position: "mid", JerseyNumber: 6})
	require.NoError(t, err)
	assert.Equal(t, player.PositionMidfielder, created.Position)

	_, err = svc.players.Create(ctx, CreatePlayerInput{TeamID: ids.homeID, Name: "Evan Dimas", Position: "COACH", JerseyNumber: 6})
	require.ErrorIs(t, err, domainerr.ErrValidation)

	_, err = svc.players.Create(ctx, CreatePlayerInput{TeamID: 999, Name: "Evan Dimas", Position: "MID", JerseyNumber: 6})
	require.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.players.Update(ctx, UpdatePlayerInput{PlayerID: created.ID, Name: "Evan Dimas", Position: "FWD", JerseyNumber: 9})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.JerseyNumber)

	items, err := svc.players.ListByTeam(ctx, ids.homeID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, player.PositionForward, items[0].Position)

	require.NoError(t, svc.players.Delete(ctx, created.ID))
	_, err = svc.players.Get(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
