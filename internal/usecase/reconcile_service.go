package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/tournament-ledger/internal/domain/match"
	"github.com/riskibarqy/tournament-ledger/internal/domain/team"
	"github.com/riskibarqy/tournament-ledger/internal/domain/tournament"
	"github.com/riskibarqy/tournament-ledger/internal/domain/unitofwork"
	"github.com/riskibarqy/tournament-ledger/internal/platform/logging"
)

const defaultReconcileWorkers = 4

type ReconcileInput struct {
	TournamentID int64
	// Apply rewrites drifted totals. Without it the run only reports.
	Apply      bool
	MaxWorkers int
}

type ReconcileResult struct {
	TournamentID    int64
	TeamCount       int
	FinishedMatches int
	DriftCount      int
	FailedCount     int
	WorkerCount     int
	Applied         bool
	Teams           []TeamReconcileResult
}

type TeamReconcileResult struct {
	TeamID   int64
	TeamName string
	Stored   team.Totals
	Expected team.Totals
	Drift    bool
	// Failed marks a team whose matches could not be replayed. Its stored
	// totals are left alone.
	Failed  bool
	Message string
}

// ReconcileService recomputes team totals from scratch out of the finished
// matches of a tournament and compares them to what is stored.
type ReconcileService struct {
	tournamentRepo tournament.Repository
	teamRepo       team.Repository
	matchRepo      match.Repository
	uow            unitofwork.UnitOfWork
	maxWorkers     int
	logger         *logging.Logger
}

func NewReconcileService(
	tournamentRepo tournament.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	uow unitofwork.UnitOfWork,
	maxWorkers int,
	logger *logging.Logger,
) *ReconcileService {
	if maxWorkers <= 0 {
		maxWorkers = defaultReconcileWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ReconcileService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		uow:            uow,
		maxWorkers:     maxWorkers,
		logger:         logger,
	}
}

func (s *ReconcileService) ReconcileTournament(ctx context.Context, input ReconcileInput) (ReconcileResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.ReconcileTournament")
	defer span.End()

	if err := requireID("tournament id", input.TournamentID); err != nil {
		return ReconcileResult{}, err
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 || workerCount > s.maxWorkers {
		workerCount = s.maxWorkers
	}

	if !input.Apply {
		repos := unitofwork.Repositories{
			Tournaments: s.tournamentRepo,
			Teams:       s.teamRepo,
			Matches:     s.matchRepo,
		}
		return s.reconcile(ctx, repos, input.TournamentID, workerCount, false)
	}

	var result ReconcileResult
	err := s.uow.Do(ctx, func(ctx context.Context, repos unitofwork.Repositories) error {
		out, err := s.reconcile(ctx, repos, input.TournamentID, workerCount, true)
		if err != nil {
			return err
		}
		result = out
		return nil
	})
	if err != nil {
		return ReconcileResult{}, err
	}
	return result, nil
}

func (s *ReconcileService) reconcile(
	ctx context.Context,
	repos unitofwork.Repositories,
	tournamentID int64,
	workerCount int,
	apply bool,
) (ReconcileResult, error) {
	// Applying locks the tournament and then its teams, in the order result
	// registration takes team locks. Matches are read after that, so a result
	// committed meanwhile is already in the replay.
	loadOwner, listTeams := repos.Tournaments.GetByID, repos.Teams.ListByTournament
	if apply {
		loadOwner, listTeams = repos.Tournaments.GetForUpdate, repos.Teams.ListByTournamentForUpdate
	}
	if _, err := loadTournament(ctx, loadOwner, tournamentID); err != nil {
		return ReconcileResult{}, err
	}
	teams, err := listTeams(ctx, tournamentID)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("list teams by tournament: %w", err)
	}
	matches, err := repos.Matches.ListByTournament(ctx, tournamentID)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("list matches by tournament: %w", err)
	}

	finished := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if m.HasResult() {
			finished = append(finished, m)
		}
	}

	result := ReconcileResult{
		TournamentID:    tournamentID,
		TeamCount:       len(teams),
		FinishedMatches: len(finished),
		WorkerCount:     workerCount,
		Teams:           make([]TeamReconcileResult, len(teams)),
	}
	if len(teams) == 0 {
		return result, nil
	}

	var driftCount, failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for idx, item := range teams {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row := reconcileTeam(item, finished)
			switch {
			case row.Failed:
				failedCount.Add(1)
			case row.Drift:
				driftCount.Add(1)
			}
			result.Teams[idx] = row
		}); err != nil {
			workers.Done()
			workers.Wait()
			return ReconcileResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	result.DriftCount = int(driftCount.Load())
	result.FailedCount = int(failedCount.Load())
	if result.DriftCount > 0 || result.FailedCount > 0 {
		s.logger.WarnContext(ctx, "team totals drift detected",
			"tournament_id", tournamentID,
			"drift_count", result.DriftCount,
			"failed_count", result.FailedCount,
			"apply", apply,
		)
	}
	if !apply || result.DriftCount == 0 {
		return result, nil
	}

	for idx, row := range result.Teams {
		if !row.Drift || row.Failed {
			continue
		}
		fixed := teams[idx]
		fixed.Totals = row.Expected
		if err := repos.Teams.Update(ctx, fixed); err != nil {
			return ReconcileResult{}, fmt.Errorf("update team %d totals: %w", fixed.ID, err)
		}
	}
	result.Applied = true

	s.logger.InfoContext(ctx, "team totals reconciled", "tournament_id", tournamentID, "fixed_count", result.DriftCount)
	return result, nil
}

// reconcileTeam replays every finished match the team took part in onto a
// zeroed copy of it.
func reconcileTeam(item team.Team, finished []match.Match) TeamReconcileResult {
	row := TeamReconcileResult{
		TeamID:   item.ID,
		TeamName: item.Name,
		Stored:   item.Totals,
	}

	replay := item
	replay.Totals = team.Totals{}
	for _, m := range finished {
		var err error
		switch item.ID {
		case m.HomeTeamID:
			err = replay.ApplyOutcome(m.Result.Home, m.Result.Away)
		case m.AwayTeamID:
			err = replay.ApplyOutcome(m.Result.Away, m.Result.Home)
		default:
			continue
		}
		if err != nil {
			row.Failed = true
			row.Message = fmt.Sprintf("replay match %d: %v", m.ID, err)
			row.Expected = item.Totals
			return row
		}
	}

	row.Expected = replay.Totals
	row.Drift = row.Expected != row.Stored
	return row
}
