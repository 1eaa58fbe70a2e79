package match

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/riskibarqy/tournament-ledger/internal/domain/domainerr"
)

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusFinished  Status = "FINISHED"
	StatusPostponed Status = "POSTPONED"
)

const FieldMaxLength = 100

func ParseStatus(value string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(value)))
	switch status {
	case StatusScheduled, StatusFinished, StatusPostponed:
		return status, nil
	default:
		return "", domainerr.Validation("unknown match status %q", value)
	}
}

// Score is a complete result. A match either has one or it does not.
type Score struct {
	Home int
	Away int
}

// ResultOutcome tells the caller whether an assignment replaced an earlier
// result, and which one.
type ResultOutcome struct {
	IsCorrection bool
	Previous     *Score
}

// Match is one scheduled game between two teams of the same tournament.
type Match struct {
	ID           int64
	TournamentID int64
	HomeTeamID   int64
	AwayTeamID   int64
	MatchDate    time.Time
	Field        string
	Result       *Score
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// New builds an unsaved match in SCHEDULED without a result.
func New(tournamentID, homeTeamID, awayTeamID int64, matchDate time.Time, field string) (Match, error) {
	m := Match{
		TournamentID: tournamentID,
		HomeTeamID:   homeTeamID,
		AwayTeamID:   awayTeamID,
		MatchDate:    matchDate,
		Field:        strings.TrimSpace(field),
		Status:       StatusScheduled,
	}
	if err := m.Validate(); err != nil {
		return Match{}, err
	}
	return m, nil
}

func (m Match) Validate() error {
	if m.TournamentID <= 0 {
		return domainerr.Validation("match tournament id is required")
	}
	if m.HomeTeamID <= 0 || m.AwayTeamID <= 0 {
		return domainerr.Validation("home and away team ids must be positive")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return domainerr.Validation("home and away team must differ")
	}
	if m.MatchDate.IsZero() {
		return domainerr.Validation("match date is required")
	}
	if strings.TrimSpace(m.Field) == "" {
		return domainerr.Validation("match field is required")
	}
	if utf8.RuneCountInString(m.Field) > FieldMaxLength {
		return domainerr.Validation("match field must be at most %d characters", FieldMaxLength)
	}
	if m.Result != nil && (m.Result.Home < 0 || m.Result.Away < 0) {
		return domainerr.Validation("scores must be non-negative")
	}
	return nil
}

func (m Match) HasResult() bool {
	return m.Result != nil
}

// AssignResult sets or corrects the result and finishes the match.
func (m *Match) AssignResult(homeScore, awayScore int) (ResultOutcome, error) {
	if homeScore < 0 || awayScore < 0 {
		return ResultOutcome{}, domainerr.Validation("scores must be non-negative, got %d-%d", homeScore, awayScore)
	}
	if m.Status != StatusScheduled && m.Status != StatusFinished {
		return ResultOutcome{}, domainerr.InvalidTransition("cannot assign a result to match %d in status %s", m.ID, m.Status)
	}

	outcome := ResultOutcome{}
	if m.Result != nil {
		previous := *m.Result
		outcome.IsCorrection = true
		outcome.Previous = &previous
	}

	m.Result = &Score{Home: homeScore, Away: awayScore}
	m.Status = StatusFinished
	return outcome, nil
}

// ClearResult drops the result and puts the match back on the schedule.
// Team totals must already have been reversed.
func (m *Match) ClearResult() error {
	if m.Result == nil {
		return domainerr.InvalidOperation("match %d has no result", m.ID)
	}
	m.Result = nil
	m.Status = StatusScheduled
	return nil
}

// Postpone is idempotent for a match that is already postponed.
func (m *Match) Postpone() error {
	switch m.Status {
	case StatusScheduled, StatusPostponed:
		m.Status = StatusPostponed
		return nil
	default:
		return domainerr.InvalidTransition("cannot postpone match %d in status %s", m.ID, m.Status)
	}
}

// Reschedule moves a postponed match back to SCHEDULED on a new date.
func (m *Match) Reschedule(matchDate time.Time) error {
	if m.Status != StatusPostponed {
		return domainerr.InvalidTransition("cannot reschedule match %d in status %s", m.ID, m.Status)
	}
	next := *m
	next.MatchDate = matchDate
	next.Status = StatusScheduled
	if err := next.Validate(); err != nil {
		return err
	}
	*m = next
	return nil
}

func (m *Match) UpdateDetails(matchDate time.Time, field string) error {
	if m.Status == StatusFinished {
		return domainerr.InvalidTransition("cannot update details of finished match %d", m.ID)
	}
	next := *m
	next.MatchDate = matchDate
	next.Field = strings.TrimSpace(field)
	if err := next.Validate(); err != nil {
		return err
	}
	*m = next
	return nil
}

// InvolvesTeam reports whether the team plays in this match.
func (m Match) InvolvesTeam(teamID int64) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}
