package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/tournament-ledger/internal/domain/match"
	"github.com/riskibarqy/tournament-ledger/internal/domain/matchresult"
	"github.com/riskibarqy/tournament-ledger/internal/domain/player"
	"github.com/riskibarqy/tournament-ledger/internal/domain/team"
	"github.com/riskibarqy/tournament-ledger/internal/domain/tournament"
	"github.com/riskibarqy/tournament-ledger/internal/domain/unitofwork"
)

type seedTeam struct {
	name    string
	coach   string
	players []seedPlayer
}

type seedPlayer struct {
	name     string
	position player.Position
	jersey   int
}

func demoTeams() []seedTeam {
	return []seedTeam{
		{
			name:  "Persija Jakarta",
			coach: "Carlos Pena",
			players: []seedPlayer{
				{name: "Andritany Ardhiyasa", position: player.PositionGoalkeeper, jersey: 26},
				{name: "Hansamu Yama", position: player.PositionDefender, jersey: 5},
				{name: "Maciej Gajos", position: player.PositionMidfielder, jersey: 8},
				{name: "Gustavo Almeida", position: player.PositionForward, jersey: 9},
			},
		},
		{
			name:  "Persib Bandung",
			coach: "Bojan Hodak",
			players: []seedPlayer{
				{name: "Teja Paku Alam", position: player.PositionGoalkeeper, jersey: 14},
				{name: "Nick Kuipers", position: player.PositionDefender, jersey: 2},
				{name: "Marc Klok", position: player.PositionMidfielder, jersey: 23},
				{name: "David da Silva", position: player.PositionForward, jersey: 19},
			},
		},
		{
			name:  "Persebaya Surabaya",
			coach: "Paul Munster",
			players: []seedPlayer{
				{name: "Dusan Stevanovic", position: player.PositionDefender, jersey: 4},
				{name: "Bruno Moreira", position: player.PositionMidfielder, jersey: 10},
			},
		},
		{
			name:  "Bali United",
			coach: "Stefano Cugurra",
			players: []seedPlayer{
				{name: "Ricky Fajrin", position: player.PositionDefender, jersey: 24},
				{name: "Eber Bessa", position: player.PositionMidfielder, jersey: 7},
			},
		},
	}
}

// SeedDemo loads one in-progress tournament with four teams, a finished
// match and an upcoming one. Totals are produced by the result coordinator so
// the seeded data passes reconciliation.
func SeedDemo(ctx context.Context, uow unitofwork.UnitOfWork) error {
	return uow.Do(ctx, func(ctx context.Context, repos unitofwork.Repositories) error {
		cup, err := tournament.New("Liga Nusantara Cup", "Pre-season cup for Indonesian top flight clubs")
		if err != nil {
			return err
		}
		if err := cup.Start(); err != nil {
			return err
		}
		if err := repos.Tournaments.Insert(ctx, &cup); err != nil {
			return fmt.Errorf("seed tournament: %w", err)
		}

		teams := make([]team.Team, 0, 4)
		for _, spec := range demoTeams() {
			item, err := team.New(cup.ID, spec.name, spec.coach)
			if err != nil {
				return err
			}
			if err := repos.Teams.Insert(ctx, &item); err != nil {
				return fmt.Errorf("seed team %s: %w", spec.name, err)
			}
			for _, p := range spec.players {
				member, err := player.New(item.ID, p.name, p.position, p.jersey)
				if err != nil {
					return err
				}
				if err := repos.Players.Insert(ctx, &member); err != nil {
					return fmt.Errorf("seed player %s: %w", p.name, err)
				}
			}
			teams = append(teams, item)
		}

		kickoff := time.Date(2026, time.July, 4, 19, 0, 0, 0, time.UTC)
		opener, err := match.New(cup.ID, teams[0].ID, teams[1].ID, kickoff, "Gelora Bung Karno")
		if err != nil {
			return err
		}
		if _, err := matchresult.NewCoordinator().RegisterResult(&opener, &teams[0], &teams[1], 2, 1); err != nil {
			return err
		}
		if err := repos.Matches.Insert(ctx, &opener); err != nil {
			return fmt.Errorf("seed match: %w", err)
		}
		if err := repos.Teams.Update(ctx, teams[0]); err != nil {
			return err
		}
		if err := repos.Teams.Update(ctx, teams[1]); err != nil {
			return err
		}

		next, err := match.New(cup.ID, teams[2].ID, teams[3].ID, kickoff.Add(24*time.Hour), "Gelora Bung Tomo")
		if err != nil {
			return err
		}
		if err := repos.Matches.Insert(ctx, &next); err != nil {
			return fmt.Errorf("seed match: %w", err)
		}
		return nil
	})
}
