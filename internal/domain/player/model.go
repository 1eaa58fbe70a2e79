package player

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/riskibarqy/tournament-ledger/internal/domain/domainerr"
)

// Position represents football position categories.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

const (
	NameMinLength   = 3
	NameMaxLength   = 100
	MinJerseyNumber = 1
	MaxJerseyNumber = 99
)

// Player is a squad member of one team.
type Player struct {
	ID           int64
	TeamID       int64
	Name         string
	Position     Position
	JerseyNumber int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func New(teamID int64, name string, position Position, jerseyNumber int) (Player, error) {
	p := Player{
		TeamID:       teamID,
		Name:         strings.TrimSpace(name),
		Position:     Position(strings.ToUpper(strings.TrimSpace(string(position)))),
		JerseyNumber: jerseyNumber,
	}
	if err := p.Validate(); err != nil {
		return Player{}, err
	}
	return p, nil
}

func (p Player) Validate() error {
	if p.TeamID <= 0 {
		return domainerr.Validation("player team id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return domainerr.Validation("player name is required")
	}
	if n := utf8.RuneCountInString(p.Name); n < NameMinLength || n > NameMaxLength {
		return domainerr.Validation("player name must be between %d and %d characters", NameMinLength, NameMaxLength)
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return domainerr.Validation("invalid player position: %s", p.Position)
	}
	if p.JerseyNumber < MinJerseyNumber || p.JerseyNumber > MaxJerseyNumber {
		return domainerr.Validation("jersey number must be between %d and %d", MinJerseyNumber, MaxJerseyNumber)
	}

	return nil
}

func (p *Player) UpdateDetails(name string, position Position, jerseyNumber int) error {
	next := *p
	next.Name = strings.TrimSpace(name)
	next.Position = Position(strings.ToUpper(strings.TrimSpace(string(position))))
	next.JerseyNumber = jerseyNumber
	if err := next.Validate(); err != nil {
		return err
	}
	*p = next
	return nil
}
