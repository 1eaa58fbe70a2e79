package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/tournament-ledger/internal/domain/match"
	"github.com/riskibarqy/tournament-ledger/internal/domain/team"
	"github.com/riskibarqy/tournament-ledger/internal/domain/tournament"
	"github.com/riskibarqy/tournament-ledger/internal/domain/unitofwork"
	"github.com/riskibarqy/tournament-ledger/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

type CreateTournamentInput struct {
	Name        string
	Description string
}

type UpdateTournamentInput struct {
	TournamentID int64
	Name         string
	Description  string
}

// TournamentOverview is a tournament with everything attached to it.
type TournamentOverview struct {
	Tournament tournament.Tournament
	Teams      []team.Team
	Matches    []match.Match
}

type TournamentService struct {
	tournamentRepo tournament.Repository
	teamRepo       team.Repository
	matchRepo      match.Repository
	uow            unitofwork.UnitOfWork
	logger         *logging.Logger
}

func NewTournamentService(
	tournamentRepo tournament.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	uow unitofwork.UnitOfWork,
	logger *logging.Logger,
) *TournamentService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TournamentService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		uow:            uow,
		logger:         logger,
	}
}

func (s *TournamentService) Create(ctx context.Context, input CreateTournamentInput) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Create")
	defer span.End()

	item, err := tournament.New(input.Name, input.Description)
	if err != nil {
		return tournament.Tournament{}, err
	}

	err = s.uow.Do(ctx, func(ctx context.Context, repos unitofwork.Repositories) error {
		return repos.Tournaments.Insert(ctx, &item)
	})
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("insert tournament: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament created", "tournament_id", item.ID)
	return item, nil
}

func (s *TournamentService) Get(ctx context.Context, tournamentID int64) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Get")
	defer span.End()

	if err := requireID("tournament id", tournamentID); err != nil {
		return tournament.Tournament{}, err
	}

	item, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%d", ErrNotFound, tournamentID)
	}

	return item, nil
}

func (s *TournamentService) List(ctx context.Context) ([]tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.List")
	defer span.End()

	items, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}

	return items, nil
}

func (s *TournamentService) Update(ctx context.Context, input UpdateTournamentInput) (tournament.Tournament, error) {
	return s.mutate(ctx, "usecase.TournamentService.Update", input.TournamentID, func(item *tournament.Tournament) error {
		return item.UpdateDetails(input.Name, input.Description)
	})
}

func (s *TournamentService) Start(ctx context.Context, tournamentID int64) (tournament.Tournament, error) {
	return s.mutate(ctx, "usecase.TournamentService.Start", tournamentID, (*tournament.Tournament).Start)
}

func (s *TournamentService) End(ctx context.Context, tournamentID int64) (tournament.Tournament, error) {
	return s.mutate(ctx, "usecase.TournamentService.End", tournamentID, (*tournament.Tournament).End)
}

func (s *TournamentService) Cancel(ctx context.Context, tournamentID int64) (tournament.Tournament, error) {
	return s.mutate(ctx, "usecase.TournamentService.Cancel", tournamentID, (*tournament.Tournament).Cancel)
}

func (s *TournamentService) mutate(
	ctx context.Context,
	spanName string,
	tournamentID int64,
	change func(item *tournament.Tournament) error,
) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, spanName)
	defer span.End()

	if err := requireID("tournament id", tournamentID); err != nil {
		return tournament.Tournament{}, err
	}

	var out tournament.Tournament
	err := s.uow.Do(ctx, func(ctx context.Context, repos unitofwork.Repositories) error {
		item, err := loadTournament(ctx, repos.Tournaments.GetForUpdate, tournamentID)
		if err != nil {
			return err
		}
		if err := change(&item); err != nil {
			return err
		}
		if err := repos.Tournaments.Update(ctx, item); err != nil {
			return fmt.Errorf("update tournament: %w", err)
		}
		out = item
		return nil
	})
	if err != nil {
		return tournament.Tournament{}, err
	}

	s.logger.InfoContext(ctx, "tournament updated", "tournament_id", out.ID, "status", out.Status)
	return out, nil
}

// Delete removes the tournament together with its matches, teams and their
// players. Totals are not reversed since the teams go too.
func (s *TournamentService) Delete(ctx context.Context, tournamentID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Delete")
	defer span.End()

	if err := requireID("tournament id", tournamentID); err != nil {
		return err
	}

	err := s.uow.Do(ctx, func(ctx context.Context, repos unitofwork.Repositories) error {
		item, err := loadTournament(ctx, repos.Tournaments.GetForUpdate, tournamentID)
		if err != nil {
			return err
		}
		if err := item.EnsureDeletable(); err != nil {
			return err
		}

		teams, err := repos.Teams.ListByTournament(ctx, tournamentID)
		if err != nil {
			return fmt.Errorf("list teams by tournament: %w", err)
		}
		for _, t := range teams {
			if err := repos.Players.DeleteByTeam(ctx, t.ID); err != nil {
				return fmt.Errorf("delete players of team %d: %w", t.ID, err)
			}
		}
		if err := repos.Matches.DeleteByTournament(ctx, tournamentID); err != nil {
			return fmt.Errorf("delete matches: %w", err)
		}
		if err := repos.Teams.DeleteByTournament(ctx, tournamentID); err != nil {
			return fmt.Errorf("delete teams: %w", err)
		}
		if err := repos.Tournaments.Delete(ctx, tournamentID); err != nil {
			return fmt.Errorf("delete tournament: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "tournament deleted", "tournament_id", tournamentID)
	return nil
}

func (s *TournamentService) Overview(ctx context.Context, tournamentID int64) (TournamentOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Overview")
	defer span.End()

	if err := requireID("tournament id", tournamentID); err != nil {
		return TournamentOverview{}, err
	}

	var out TournamentOverview
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		item, err := loadTournament(ctx, s.tournamentRepo.GetByID, tournamentID)
		if err != nil {
			return err
		}
		out.Tournament = item
		return nil
	})
	p.Go(func(ctx context.Context) error {
		teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
		if err != nil {
			return fmt.Errorf("list teams by tournament: %w", err)
		}
		out.Teams = teams
		return nil
	})
	p.Go(func(ctx context.Context) error {
		matches, err := s.matchRepo.ListByTournament(ctx, tournamentID)
		if err != nil {
			return fmt.Errorf("list matches by tournament: %w", err)
		}
		out.Matches = matches
		return nil
	})
	if err := p.Wait(); err != nil {
		return TournamentOverview{}, err
	}

	return out, nil
}

type tournamentLoader func(ctx context.Context, tournamentID int64) (tournament.Tournament, bool, error)

func loadTournament(ctx context.Context, load tournamentLoader, tournamentID int64) (tournament.Tournament, error) {
	item, exists, err := load(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%d", ErrNotFound, tournamentID)
	}
	return item, nil
}
