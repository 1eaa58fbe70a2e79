package team

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/riskibarqy/tournament-ledger/internal/domain/domainerr"
)

const (
	NameMinLength = 3
	NameMaxLength = 100
)

// Totals are the running competition figures a standings table reads.
type Totals struct {
	Points         int
	MatchesPlayed  int
	Wins           int
	Draws          int
	Losses         int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
}

// Team is a participant of exactly one tournament.
type Team struct {
	ID           int64
	TournamentID int64
	Name         string
	CoachName    string
	Totals       Totals
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// New builds an unsaved team with zeroed totals.
func New(tournamentID int64, name, coachName string) (Team, error) {
	t := Team{
		TournamentID: tournamentID,
		Name:         strings.TrimSpace(name),
		CoachName:    strings.TrimSpace(coachName),
	}
	if err := t.Validate(); err != nil {
		return Team{}, err
	}
	return t, nil
}

func (t Team) Validate() error {
	if t.TournamentID <= 0 {
		return domainerr.Validation("team tournament id is required")
	}
	if err := validateLabel("team name", t.Name); err != nil {
		return err
	}
	if err := validateLabel("coach name", t.CoachName); err != nil {
		return err
	}
	return nil
}

// Rename replaces the descriptive fields. The tournament never changes.
func (t *Team) Rename(name, coachName string) error {
	next := *t
	next.Name = strings.TrimSpace(name)
	next.CoachName = strings.TrimSpace(coachName)
	if err := next.Validate(); err != nil {
		return err
	}
	*t = next
	return nil
}

// ApplyOutcome records one match played with the given goals.
func (t *Team) ApplyOutcome(goalsFor, goalsAgainst int) error {
	if err := validateGoals(goalsFor, goalsAgainst); err != nil {
		return err
	}

	next := t.Totals
	next.MatchesPlayed++
	next.GoalsFor += goalsFor
	next.GoalsAgainst += goalsAgainst
	next.GoalDifference = next.GoalsFor - next.GoalsAgainst

	outcome := Classify(goalsFor, goalsAgainst)
	next.Points += outcome.Points()
	switch outcome {
	case OutcomeWin:
		next.Wins++
	case OutcomeDraw:
		next.Draws++
	default:
		next.Losses++
	}

	if err := next.Check(); err != nil {
		return fmt.Errorf("team %d after applying %d-%d: %w", t.ID, goalsFor, goalsAgainst, err)
	}
	t.Totals = next
	return nil
}

// ReverseOutcome undoes a previous ApplyOutcome called with the same pair.
// The totals are checked afterwards as well, so reversing something that
// was never applied fails instead of driving counters negative.
func (t *Team) ReverseOutcome(goalsFor, goalsAgainst int) error {
	if err := validateGoals(goalsFor, goalsAgainst); err != nil {
		return err
	}

	next := t.Totals
	next.MatchesPlayed--
	next.GoalsFor -= goalsFor
	next.GoalsAgainst -= goalsAgainst
	next.GoalDifference = next.GoalsFor - next.GoalsAgainst

	outcome := Classify(goalsFor, goalsAgainst)
	next.Points -= outcome.Points()
	switch outcome {
	case OutcomeWin:
		next.Wins--
	case OutcomeDraw:
		next.Draws--
	default:
		next.Losses--
	}

	if err := next.Check(); err != nil {
		return fmt.Errorf("team %d after reversing %d-%d: %w", t.ID, goalsFor, goalsAgainst, err)
	}
	t.Totals = next
	return nil
}

// Check verifies the invariants that tie the counters together.
func (s Totals) Check() error {
	if s.Points < 0 || s.MatchesPlayed < 0 || s.Wins < 0 || s.Draws < 0 || s.Losses < 0 ||
		s.GoalsFor < 0 || s.GoalsAgainst < 0 {
		return domainerr.Consistency("negative counter in %+v", s)
	}
	if s.MatchesPlayed != s.Wins+s.Draws+s.Losses {
		return domainerr.Consistency("matches played %d != wins %d + draws %d + losses %d",
			s.MatchesPlayed, s.Wins, s.Draws, s.Losses)
	}
	if s.GoalDifference != s.GoalsFor-s.GoalsAgainst {
		return domainerr.Consistency("goal difference %d != goals for %d - goals against %d",
			s.GoalDifference, s.GoalsFor, s.GoalsAgainst)
	}
	return nil
}

func validateGoals(goalsFor, goalsAgainst int) error {
	if goalsFor < 0 || goalsAgainst < 0 {
		return domainerr.Validation("goals must be non-negative, got %d-%d", goalsFor, goalsAgainst)
	}
	return nil
}

func validateLabel(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domainerr.Validation("%s is required", field)
	}
	n := utf8.RuneCountInString(value)
	if n < NameMinLength || n > NameMaxLength {
		return domainerr.Validation("%s must be between %d and %d characters", field, NameMinLength, NameMaxLength)
	}
	return nil
}
