package usecase

import (
	"testing"
	"time"

	"github.com/riskibarqy/tournament-ledger/internal/domain/match"
	"github.com/riskibarqy/tournament-ledger/internal/domain/team"
	"github.com/riskibarqy/tournament-ledger/internal/domain/tournament"
	"github.com/riskibarqy/tournament-ledger/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/require"
)

type testServices struct {
	store       *memory.Store
	tournaments *TournamentService
	teams       *TeamService
	players     *PlayerService
	matches     *MatchService
	reconcile   *ReconcileService
}

func newTestServices(t *testing.T) testServices {
	t.Helper()

	store := memory.NewStore()
	repos := store.Repositories()
	return testServices{
		store:       store,
		tournaments: NewTournamentService(repos.Tournaments, repos.Teams, repos.Matches, store, nil),
		teams:       NewTeamService(repos.Tournaments, repos.Teams, store, nil),
		players:     NewPlayerService(repos.Teams, repos.Players, store),
		matches:     NewMatchService(repos.Tournaments, repos.Matches, store, nil),
		reconcile:   NewReconcileService(repos.Tournaments, repos.Teams, repos.Matches, store, 2, nil),
	}
}

type fixtureIDs struct {
	tournamentID int64
	homeID       int64
	awayID       int64
	matchID      int64
}

// seedMatch creates a started tournament with two teams and one scheduled
// match between them.
func seedMatch(t *testing.T, svc testServices) fixtureIDs {
	t.Helper()
	ctx := t.Context()

	cup, err := svc.tournaments.Create(ctx, CreateTournamentInput{Name: "City Cup", Description: "Eight local clubs, single round"})
	require.NoError(t, err)
	_, err = svc.tournaments.Start(ctx, cup.ID)
	require.NoError(t, err)

	home, err := svc.teams.Create(ctx, CreateTeamInput{TournamentID: cup.ID, Name: "Team A", CoachName: "Coach A"})
	require.NoError(t, err)
	away, err := svc.teams.Create(ctx, CreateTeamInput{TournamentID: cup.ID, Name: "Team B", CoachName: "Coach B"})
	require.NoError(t, err)

	m, err := svc.matches.Create(ctx, CreateMatchInput{
		TournamentID: cup.ID,
		HomeTeamID:   home.ID,
		AwayTeamID:   away.ID,
		MatchDate:    time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC),
		Field:        "North Pitch",
	})
	require.NoError(t, err)
	require.Equal(t, match.StatusScheduled, m.Status)

	return fixtureIDs{tournamentID: cup.ID, homeID: home.ID, awayID: away.ID, matchID: m.ID}
}

func getTeam(t *testing.T, svc testServices, teamID int64) team.Team {
	t.Helper()
	item, err := svc.teams.Get(t.Context(), teamID)
	require.NoError(t, err)
	return item
}

func mustTournament(t *testing.T, name string) tournament.Tournament {
	t.Helper()
	item, err := tournament.New(name, "Season long round robin")
	require.NoError(t, err)
	return item
}
