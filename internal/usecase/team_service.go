package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/tournament-ledger/internal/domain/team"
	"github.com/riskibarqy/tournament-ledger/internal/domain/tournament"
	"github.com/riskibarqy/tournament-ledger/internal/domain/unitofwork"
	"github.com/riskibarqy/tournament-ledger/internal/platform/logging"
)

type CreateTeamInput struct {
	TournamentID int64
	Name         string
	CoachName    string
}

type UpdateTeamInput struct {
	TeamID    int64
	Name      string
	CoachName string
}

type TeamService struct {
	tournamentRepo tournament.Repository
	teamRepo       team.Repository
	uow            unitofwork.UnitOfWork
	logger         *logging.Logger
}

func NewTeamService(
	tournamentRepo tournament.Repository,
	teamRepo team.Repository,
	uow unitofwork.UnitOfWork,
	logger *logging.Logger,
) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		uow:            uow,
		logger:         logger,
	}
}

func (s *TeamService) Create(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	if err := requireID("tournament id", input.TournamentID); err != nil {
		return team.Team{}, err
	}
	item, err := team.New(input.TournamentID, input.Name, input.CoachName)
	if err != nil {
		return team.Team{}, err
	}

	err = s.uow.Do(ctx, func(ctx context.Context, repos unitofwork.Repositories) error {
		if _, err := loadTournament(ctx, repos.Tournaments.GetForUpdate, input.TournamentID); err != nil {
			return err
		}
		if err := repos.Teams.Insert(ctx, &item); err != nil {
			return fmt.Errorf("insert team: %w", err)
		}
		return nil
	})
	if err != nil {
		return team.Team{}, err
	}

	s.logger.InfoContext(ctx, "team created", "team_id", item.ID, "tournament_id", item.TournamentID)
	return item, nil
}

func (s *TeamService) Get(ctx context.Context, teamID int64) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Get")
	defer span.End()

	if err := requireID("team id", teamID); err != nil {
		return team.Team{}, err
	}
	return loadTeam(ctx, s.teamRepo.GetByID, teamID)
}

// ListByTournament returns the teams with their running totals, ordered by id.
func (s *TeamService) ListByTournament(ctx context.Context, tournamentID int64) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListByTournament")
	defer span.End()

	if err := requireID("tournament id", tournamentID); err != nil {
		return nil, err
	}
	if _, err := loadTournament(ctx, s.tournamentRepo.GetByID, tournamentID); err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list teams by tournament: %w", err)
	}
	return teams, nil
}

// Update changes name and coach only. Totals are owned by match results.
func (s *TeamService) Update(ctx context.Context, input UpdateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Update")
	defer span.End()

	if err := requireID("team id", input.TeamID); err != nil {
		return team.Team{}, err
	}

	var out team.Team
	err := s.uow.Do(ctx, func(ctx context.Context, repos unitofwork.Repositories) error {
		item, err := loadTeam(ctx, repos.Teams.GetForUpdate, input.TeamID)
		if err != nil {
			return err
		}
		if err := item.Rename(input.Name, input.CoachName); err != nil {
			return err
		}
		if err := repos.Teams.Update(ctx, item); err != nil {
			return fmt.Errorf("update team: %w", err)
		}
		out = item
		return nil
	})
	if err != nil {
		return team.Team{}, err
	}

	return out, nil
}

// Delete is refused while any match still references the team.
func (s *TeamService) Delete(ctx context.Context, teamID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Delete")
	defer span.End()

	if err := requireID("team id", teamID); err != nil {
		return err
	}

	err := s.uow.Do(ctx, func(ctx context.Context, repos unitofwork.Repositories) error {
		if _, err := loadTeam(ctx, repos.Teams.GetForUpdate, teamID); err != nil {
			return err
		}
		count, err := repos.Matches.CountByTeam(ctx, teamID)
		if err != nil {
			return fmt.Errorf("count matches by team: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: team=%d has %d matches", ErrConflict, teamID, count)
		}
		if err := repos.Players.DeleteByTeam(ctx, teamID); err != nil {
			return fmt.Errorf("delete players of team: %w", err)
		}
		if err := repos.Teams.Delete(ctx, teamID); err != nil {
			return fmt.Errorf("delete team: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "team deleted", "team_id", teamID)
	return nil
}

type teamLoader func(ctx context.Context, teamID int64) (team.Team, bool, error)

func loadTeam(ctx context.Context, load teamLoader, teamID int64) (team.Team, error) {
	item, exists, err := load(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}
	return item, nil
}

