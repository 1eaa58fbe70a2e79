package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/tournament-ledger/internal/domain/player"
	"github.com/riskibarqy/tournament-ledger/internal/domain/team"
	"github.com/riskibarqy/tournament-ledger/internal/domain/unitofwork"
)

type CreatePlayerInput struct {
	TeamID       int64
	Name         string
	Position     string
	JerseyNumber int
}

type UpdatePlayerInput struct {
	PlayerID     int64
	Name         string
	Position     string
	JerseyNumber int
}

type PlayerService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	uow        unitofwork.UnitOfWork
}

func NewPlayerService(teamRepo team.Repository, playerRepo player.Repository, uow unitofwork.UnitOfWork) *PlayerService {
	return &PlayerService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		uow:        uow,
	}
}

func (s *PlayerService) Create(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Create")
	defer span.End()

	if err := requireID("team id", input.TeamID); err != nil {
		return player.Player{}, err
	}
	item, err := player.New(input.TeamID, input.Name, player.Position(input.Position), input.JerseyNumber)
	if err != nil {
		return player.Player{}, err
	}

	err = s.uow.Do(ctx, func(ctx context.Context, repos unitofwork.Repositories) error {
		if _, err := loadTeam(ctx, repos.Teams.GetByID, input.TeamID); err != nil {
			return err
		}
		if err := repos.Players.Insert(ctx, &item); err != nil {
			return fmt.Errorf("insert player: %w", err)
		}
		return nil
	})
	if err != nil {
		return player.Player{}, err
	}

	return item, nil
}

func (s *PlayerService) Get(ctx context.Context, playerID int64) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Get")
	defer span.End()

	if err := requireID("player id", playerID); err != nil {
		return player.Player{}, err
	}
	return loadPlayer(ctx, s.playerRepo, playerID)
}

func (s *PlayerService) ListByTeam(ctx context.Context, teamID int64) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListByTeam")
	defer span.End()

	if err := requireID("team id", teamID); err != nil {
		return nil, err
	}
	if _, err := loadTeam(ctx, s.teamRepo.GetByID, teamID); err != nil {
		return nil, err
	}

	items, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list players by team: %w", err)
	}
	return items, nil
}

func (s *PlayerService) Update(ctx context.Context, input UpdatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Update")
	defer span.End()

	if err := requireID("player id", input.PlayerID); err != nil {
		return player.Player{}, err
	}

	var out player.Player
	err := s.uow.Do(ctx, func(ctx context.Context, repos unitofwork.Repositories) error {
		item, err := loadPlayer(ctx, repos.Players, input.PlayerID)
		if err != nil {
			return err
		}
		if err := item.UpdateDetails(input.Name, player.Position(input.Position), input.JerseyNumber); err != nil {
			return err
		}
		if err := repos.Players.Update(ctx, item); err != nil {
			return fmt.Errorf("update player: %w", err)
		}
		out = item
		return nil
	})
	if err != nil {
		return player.Player{}, err
	}
	return out, nil
}

func (s *PlayerService) Delete(ctx context.Context, playerID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Delete")
	defer span.End()

	if err := requireID("player id", playerID); err != nil {
		return err
	}

	return s.uow.Do(ctx, func(ctx context.Context, repos unitofwork.Repositories) error {
		if _, err := loadPlayer(ctx, repos.Players, playerID); err != nil {
			return err
		}
		if err := repos.Players.Delete(ctx, playerID); err != nil {
			return fmt.Errorf("delete player: %w", err)
		}
		return nil
	})
}

func loadPlayer(ctx context.Context, repo player.Repository, playerID int64) (player.Player, error) {
	item, exists, err := repo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}
	return item, nil
}
