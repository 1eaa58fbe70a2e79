package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/tournament-ledger/internal/domain/domainerr"
	"github.com/riskibarqy/tournament-ledger/internal/domain/match"
	"github.com/riskibarqy/tournament-ledger/internal/domain/matchresult"
	"github.com/riskibarqy/tournament-ledger/internal/domain/team"
	"github.com/riskibarqy/tournament-ledger/internal/domain/tournament"
	"github.com/riskibarqy/tournament-ledger/internal/domain/unitofwork"
	"github.com/riskibarqy/tournament-ledger/internal/platform/logging"
)

type CreateMatchInput struct {
	TournamentID int64
	HomeTeamID   int64
	AwayTeamID   int64
	MatchDate    time.Time
	Field        string
}

type UpdateMatchInput struct {
	MatchID   int64
	MatchDate time.Time
	Field     string
}

type RegisterResultInput struct {
	MatchID   int64
	HomeScore int
	AwayScore int
}

// MatchResult is the state of a match and both of its teams after a result
// change, as committed.
type MatchResult struct {
	Match        match.Match
	HomeTeam     team.Team
	AwayTeam     team.Team
	IsCorrection bool
	Previous     *match.Score
}

type MatchService struct {
	tournamentRepo tournament.Repository
	matchRepo      match.Repository
	uow            unitofwork.UnitOfWork
	coordinator    *matchresult.Coordinator
	logger         *logging.Logger
}

func NewMatchService(
	tournamentRepo tournament.Repository,
	matchRepo match.Repository,
	uow unitofwork.UnitOfWork,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		uow:            uow,
		coordinator:    matchresult.NewCoordinator(),
		logger:         logger,
	}
}

func (s *MatchService) Create(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create")
	defer span.End()

	if err := requireID("tournament id", input.TournamentID); err != nil {
		return match.Match{}, err
	}
	item, err := match.New(input.TournamentID, input.HomeTeamID, input.AwayTeamID, input.MatchDate, input.Field)
	if err != nil {
		return match.Match{}, err
	}

	err = s.uow.Do(ctx, func(ctx context.Context, repos unitofwork.Repositories) error {
		owner, err := loadTournament(ctx, repos.Tournaments.GetForUpdate, input.TournamentID)
		if err != nil {
			return err
		}
		if err := owner.EnsureAcceptsMatches(); err != nil {
			return err
		}
		if err := ensureTeamInTournament(ctx, repos.Teams, domainerr.SideHome, input.HomeTeamID, input.TournamentID); err != nil {
			return err
		}
		if err := ensureTeamInTournament(ctx, repos.Teams, domainerr.SideAway, input.AwayTeamID, input.TournamentID); err != nil {
			return err
		}
		if err := repos.Matches.Insert(ctx, &item); err != nil {
			return fmt.Errorf("insert match: %w", err)
		}
		return nil
	})
	if err != nil {
		return match.Match{}, err
	}

	s.logger.InfoContext(ctx, "match created", "match_id", item.ID, "tournament_id", item.TournamentID)
	return item, nil
}

func (s *MatchService) Get(ctx context.Context, matchID int64) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get")
	defer span.End()

	if err := requireID("match id", matchID); err != nil {
		return match.Match{}, err
	}
	return loadMatch(ctx, s.matchRepo.GetByID, matchID)
}

func (s *MatchService) ListByTournament(ctx context.Context, tournamentID int64) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListByTournament")
	defer span.End()

	if err := requireID("tournament id", tournamentID); err != nil {
		return nil, err
	}
	if _, err := loadTournament(ctx, s.tournamentRepo.GetByID, tournamentID); err != nil {
		return nil, err
	}

	items, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list matches by tournament: %w", err)
	}
	return items, nil
}

func (s *MatchService) UpdateDetails(ctx context.Context, input UpdateMatchInput) (match.Match, error) {
	return s.mutate(ctx, "usecase.MatchService.UpdateDetails", input.MatchID, func(m *match.Match) error {
		return m.UpdateDetails(input.MatchDate, input.Field)
	})
}

func (s *MatchService) Postpone(ctx context.Context, matchID int64) (match.Match, error) {
	return s.mutate(ctx, "usecase.MatchService.Postpone", matchID, (*match.Match).Postpone)
}

func (s *MatchService) Reschedule(ctx context.Context, matchID int64, matchDate time.Time) (match.Match, error) {
	return s.mutate(ctx, "usecase.MatchService.Reschedule", matchID, func(m *match.Match) error {
		return m.Reschedule(matchDate)
	})
}

// mutate applies a change that never touches team totals.
func (s *MatchService) mutate(ctx context.Context, spanName string, matchID int64, change func(m *match.Match) error) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, spanName)
	defer span.End()

	if err := requireID("match id", matchID); err != nil {
		return match.Match{}, err
	}

	var out match.Match
	err := s.uow.Do(ctx, func(ctx context.Context, repos unitofwork.Repositories) error {
		item, err := loadMatch(ctx, repos.Matches.GetForUpdate, matchID)
		if err != nil {
			return err
		}
		if err := change(&item); err != nil {
			return err
		}
		if err := repos.Matches.Update(ctx, item); err != nil {
			return fmt.Errorf("update match: %w", err)
		}
		out = item
		return nil
	})
	if err != nil {
		return match.Match{}, err
	}
	return out, nil
}

// RegisterResult records or corrects the score and moves both teams' totals
// in the same unit of work.
func (s *MatchService) RegisterResult(ctx context.Context, input RegisterResultInput) (MatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RegisterResult")
	defer span.End()

	if err := requireID("match id", input.MatchID); err != nil {
		return MatchResult{}, err
	}

	var out MatchResult
	err := s.uow.Do(ctx, func(ctx context.Context, repos unitofwork.Repositories) error {
		m, home, away, err := loadParticipants(ctx, repos, input.MatchID)
		if err != nil {
			return err
		}

		outcome, err := s.coordinator.RegisterResult(&m, &home, &away, input.HomeScore, input.AwayScore)
		if err != nil {
			return err
		}
		if err := saveParticipants(ctx, repos, m, home, away); err != nil {
			return err
		}

		out = MatchResult{
			Match:        m,
			HomeTeam:     home,
			AwayTeam:     away,
			IsCorrection: outcome.IsCorrection,
			Previous:     outcome.Previous,
		}
		return nil
	})
	if err != nil {
		s.logger.WarnContext(ctx, "register match result failed", "match_id", input.MatchID, "error", err)
		return MatchResult{}, err
	}

	s.logger.InfoContext(ctx, "match result registered",
		"match_id", out.Match.ID,
		"home_score", input.HomeScore,
		"away_score", input.AwayScore,
		"is_correction", out.IsCorrection,
	)
	return out, nil
}

// RevertResult takes the current result back out of both teams and returns
// the match to SCHEDULED.
func (s *MatchService) RevertResult(ctx context.Context, matchID int64) (MatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RevertResult")
	defer span.End()

	if err := requireID("match id", matchID); err != nil {
		return MatchResult{}, err
	}

	var out MatchResult
	err := s.uow.Do(ctx, func(ctx context.Context, repos unitofwork.Repositories) error {
		m, home, away, err := loadParticipants(ctx, repos, matchID)
		if err != nil {
			return err
		}
		previous := m.Result

		if err := s.coordinator.RevertResult(&m, &home, &away); err != nil {
			return err
		}
		if err := saveParticipants(ctx, repos, m, home, away); err != nil {
			return err
		}

		out = MatchResult{Match: m, HomeTeam: home, AwayTeam: away, Previous: previous}
		return nil
	})
	if err != nil {
		return MatchResult{}, err
	}

	s.logger.InfoContext(ctx, "match result reverted", "match_id", matchID)
	return out, nil
}

// Delete reverses a finished match's result before the match row goes away.
func (s *MatchService) Delete(ctx context.Context, matchID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Delete")
	defer span.End()

	if err := requireID("match id", matchID); err != nil {
		return err
	}

	err := s.uow.Do(ctx, func(ctx context.Context, repos unitofwork.Repositories) error {
		m, home, away, err := loadParticipants(ctx, repos, matchID)
		if err != nil {
			return err
		}
		hadResult := m.HasResult()

		if err := s.coordinator.PrepareForDeletion(&m, &home, &away); err != nil {
			return err
		}
		if hadResult {
			if err := repos.Teams.Update(ctx, home); err != nil {
				return fmt.Errorf("update home team: %w", err)
			}
			if err := repos.Teams.Update(ctx, away); err != nil {
				return fmt.Errorf("update away team: %w", err)
			}
		}
		if err := repos.Matches.Delete(ctx, matchID); err != nil {
			return fmt.Errorf("delete match: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "match deleted", "match_id", matchID)
	return nil
}

// loadParticipants locks the match first and then both teams in ascending
// id order, so two units of work never wait on each other in a cycle.
func loadParticipants(ctx context.Context, repos unitofwork.Repositories, matchID int64) (match.Match, team.Team, team.Team, error) {
	m, err := loadMatch(ctx, repos.Matches.GetForUpdate, matchID)
	if err != nil {
		return match.Match{}, team.Team{}, team.Team{}, err
	}

	firstID, secondID := m.HomeTeamID, m.AwayTeamID
	if firstID > secondID {
		firstID, secondID = secondID, firstID
	}
	first, err := loadParticipant(ctx, repos.Teams, m, firstID)
	if err != nil {
		return match.Match{}, team.Team{}, team.Team{}, err
	}
	second, err := loadParticipant(ctx, repos.Teams, m, secondID)
	if err != nil {
		return match.Match{}, team.Team{}, team.Team{}, err
	}

	if first.ID == m.HomeTeamID {
		return m, first, second, nil
	}
	return m, second, first, nil
}

func loadParticipant(ctx context.Context, repo team.Repository, m match.Match, teamID int64) (team.Team, error) {
	item, exists, err := repo.GetForUpdate(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, domainerr.Consistency("match %d references missing team %d", m.ID, teamID)
	}
	return item, nil
}

func saveParticipants(ctx context.Context, repos unitofwork.Repositories, m match.Match, home, away team.Team) error {
	if err := repos.Matches.Update(ctx, m); err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	if err := repos.Teams.Update(ctx, home); err != nil {
		return fmt.Errorf("update home team: %w", err)
	}
	if err := repos.Teams.Update(ctx, away); err != nil {
		return fmt.Errorf("update away team: %w", err)
	}
	return nil
}

func ensureTeamInTournament(ctx context.Context, repo team.Repository, side domainerr.Side, teamID, tournamentID int64) error {
	item, err := loadTeam(ctx, repo.GetByID, teamID)
	if err != nil {
		return err
	}
	if item.TournamentID != tournamentID {
		return &domainerr.CrossAggregateError{
			Side:              side,
			TeamID:            item.ID,
			TeamTournamentID:  item.TournamentID,
			MatchTournamentID: tournamentID,
			Reason:            "team does not belong to the tournament",
		}
	}
	return nil
}

type matchLoader func(ctx context.Context, matchID int64) (match.Match, bool, error)

func loadMatch(ctx context.Context, load matchLoader, matchID int64) (match.Match, error) {
	item, exists, err := load(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}
	return item, nil
}
