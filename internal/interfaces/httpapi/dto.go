package httpapi

import (
	"time"

	"github.com/riskibarqy/tournament-ledger/internal/domain/match"
	"github.com/riskibarqy/tournament-ledger/internal/domain/player"
	"github.com/riskibarqy/tournament-ledger/internal/domain/team"
	"github.com/riskibarqy/tournament-ledger/internal/domain/tournament"
	"github.com/riskibarqy/tournament-ledger/internal/usecase"
)

type tournamentRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=50"`
	Description string `json:"description" validate:"required,min=10,max=200"`
}

type teamRequest struct {
	Name      string `json:"name" validate:"required,min=3,max=100"`
	CoachName string `json:"coach_name" validate:"required,min=3,max=100"`
}

type playerRequest struct {
	Name         string `json:"name" validate:"required,min=3,max=100"`
	Position     string `json:"position" validate:"required"`
	JerseyNumber int    `json:"jersey_number" validate:"required,min=1,max=99"`
}

type createMatchRequest struct {
	HomeTeamID int64     `json:"home_team_id" validate:"required,gt=0"`
	AwayTeamID int64     `json:"away_team_id" validate:"required,gt=0,nefield=HomeTeamID"`
	MatchDate  time.Time `json:"match_date"`
	Field      string    `json:"field" validate:"required,max=100"`
}

type updateMatchRequest struct {
	MatchDate time.Time `json:"match_date"`
	Field     string    `json:"field" validate:"required,max=100"`
}

type rescheduleMatchRequest struct {
	MatchDate time.Time `json:"match_date"`
}

// Scores are pointers so an explicit 0 passes "required".
type matchResultRequest struct {
	HomeScore *int `json:"home_score" validate:"required,min=0"`
	AwayScore *int `json:"away_score" validate:"required,min=0"`
}

type reconcileJobRequest struct {
	TournamentID int64 `json:"tournament_id" validate:"required,gt=0"`
	Apply        bool  `json:"apply"`
	MaxWorkers   int   `json:"max_workers" validate:"omitempty,min=1,max=64"`
}

type tournamentDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type totalsDTO struct {
	Points         int `json:"points"`
	MatchesPlayed  int `json:"matches_played"`
	Wins           int `json:"wins"`
	Draws          int `json:"draws"`
	Losses         int `json:"losses"`
	GoalsFor       int `json:"goals_for"`
	GoalsAgainst   int `json:"goals_against"`
	GoalDifference int `json:"goal_difference"`
}

type teamDTO struct {
	ID           int64     `json:"id"`
	TournamentID int64     `json:"tournament_id"`
	Name         string    `json:"name"`
	CoachName    string    `json:"coach_name"`
	Totals       totalsDTO `json:"totals"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type playerDTO struct {
	ID           int64     `json:"id"`
	TeamID       int64     `json:"team_id"`
	Name         string    `json:"name"`
	Position     string    `json:"position"`
	JerseyNumber int       `json:"jersey_number"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type scoreDTO struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

type matchDTO struct {
	ID           int64     `json:"id"`
	TournamentID int64     `json:"tournament_id"`
	HomeTeamID   int64     `json:"home_team_id"`
	AwayTeamID   int64     `json:"away_team_id"`
	MatchDate    time.Time `json:"match_date"`
	Field        string    `json:"field"`
	Status       string    `json:"status"`
	Result       *scoreDTO `json:"result"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type matchResultDTO struct {
	Match        matchDTO  `json:"match"`
	HomeTeam     teamDTO   `json:"home_team"`
	AwayTeam     teamDTO   `json:"away_team"`
	IsCorrection bool      `json:"is_correction"`
	Previous     *scoreDTO `json:"previous_result,omitempty"`
}

type tournamentOverviewDTO struct {
	Tournament tournamentDTO `json:"tournament"`
	Teams      []teamDTO     `json:"teams"`
	Matches    []matchDTO    `json:"matches"`
}

type teamReconcileDTO struct {
	TeamID   int64     `json:"team_id"`
	TeamName string    `json:"team_name"`
	Stored   totalsDTO `json:"stored"`
	Expected totalsDTO `json:"expected"`
	Drift    bool      `json:"drift"`
	Failed   bool      `json:"failed"`
	Message  string    `json:"message,omitempty"`
}

type reconcileResultDTO struct {
	RunID           string             `json:"run_id"`
	TournamentID    int64              `json:"tournament_id"`
	TeamCount       int                `json:"team_count"`
	FinishedMatches int                `json:"finished_matches"`
	DriftCount      int                `json:"drift_count"`
	FailedCount     int                `json:"failed_count"`
	WorkerCount     int                `json:"worker_count"`
	Applied         bool               `json:"applied"`
	Teams           []teamReconcileDTO `json:"teams"`
}

func tournamentToDTO(v tournament.Tournament) tournamentDTO {
	return tournamentDTO{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Status:      string(v.Status),
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func totalsToDTO(v team.Totals) totalsDTO {
	return totalsDTO{
		Points:         v.Points,
		MatchesPlayed:  v.MatchesPlayed,
		Wins:           v.Wins,
		Draws:          v.Draws,
		Losses:         v.Losses,
		GoalsFor:       v.GoalsFor,
		GoalsAgainst:   v.GoalsAgainst,
		GoalDifference: v.GoalDifference,
	}
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:           v.ID,
		TournamentID: v.TournamentID,
		Name:         v.Name,
		CoachName:    v.CoachName,
		Totals:       totalsToDTO(v.Totals),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func teamsToDTO(items []team.Team) []teamDTO {
	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}
	return out
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:           v.ID,
		TeamID:       v.TeamID,
		Name:         v.Name,
		Position:     string(v.Position),
		JerseyNumber: v.JerseyNumber,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func scoreToDTO(v *match.Score) *scoreDTO {
	if v == nil {
		return nil
	}
	return &scoreDTO{Home: v.Home, Away: v.Away}
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:           v.ID,
		TournamentID: v.TournamentID,
		HomeTeamID:   v.HomeTeamID,
		AwayTeamID:   v.AwayTeamID,
		MatchDate:    v.MatchDate,
		Field:        v.Field,
		Status:       string(v.Status),
		Result:       scoreToDTO(v.Result),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func matchesToDTO(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}
	return out
}

func matchResultToDTO(v usecase.MatchResult) matchResultDTO {
	return matchResultDTO{
		Match:        matchToDTO(v.Match),
		HomeTeam:     teamToDTO(v.HomeTeam),
		AwayTeam:     teamToDTO(v.AwayTeam),
		IsCorrection: v.IsCorrection,
		Previous:     scoreToDTO(v.Previous),
	}
}

func reconcileResultToDTO(runID string, v usecase.ReconcileResult) reconcileResultDTO {
	teams := make([]teamReconcileDTO, 0, len(v.Teams))
	for _, item := range v.Teams {
		teams = append(teams, teamReconcileDTO{
			TeamID:   item.TeamID,
			TeamName: item.TeamName,
			Stored:   totalsToDTO(item.Stored),
			Expected: totalsToDTO(item.Expected),
			Drift:    item.Drift,
			Failed:   item.Failed,
			Message:  item.Message,
		})
	}
	return reconcileResultDTO{
		RunID:           runID,
		TournamentID:    v.TournamentID,
		TeamCount:       v.TeamCount,
		FinishedMatches: v.FinishedMatches,
		DriftCount:      v.DriftCount,
		FailedCount:     v.FailedCount,
		WorkerCount:     v.WorkerCount,
		Applied:         v.Applied,
		Teams:           teams,
	}
}
