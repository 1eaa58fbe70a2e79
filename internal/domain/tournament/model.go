package tournament

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/riskibarqy/tournament-ledger/internal/domain/domainerr"
)

type Status string

const (
	StatusCreated    Status = "CREATED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

const (
	NameMinLength        = 3
	NameMaxLength        = 50
	DescriptionMinLength = 10
	DescriptionMaxLength = 200
)

func ParseStatus(value string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(value)))
	switch status {
	case StatusCreated, StatusInProgress, StatusCompleted, StatusCancelled:
		return status, nil
	default:
		return "", domainerr.Validation("unknown tournament status %q", value)
	}
}

// Tournament groups teams and matches and gates what may happen to them.
type Tournament struct {
	ID          int64
	Name        string
	Description string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func New(name, description string) (Tournament, error) {
	t := Tournament{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Status:      StatusCreated,
	}
	if err := t.Validate(); err != nil {
		return Tournament{}, err
	}
	return t, nil
}

func (t Tournament) Validate() error {
	if err := validateLength("tournament name", t.Name, NameMinLength, NameMaxLength); err != nil {
		return err
	}
	if err := validateLength("tournament description", t.Description, DescriptionMinLength, DescriptionMaxLength); err != nil {
		return err
	}
	if _, err := ParseStatus(string(t.Status)); err != nil {
		return err
	}
	return nil
}

func (t *Tournament) UpdateDetails(name, description string) error {
	next := *t
	next.Name = strings.TrimSpace(name)
	next.Description = strings.TrimSpace(description)
	if err := next.Validate(); err != nil {
		return err
	}
	*t = next
	return nil
}

func (t *Tournament) Start() error {
	if t.Status != StatusCreated {
		return domainerr.InvalidTransition("cannot start tournament %d in status %s", t.ID, t.Status)
	}
	t.Status = StatusInProgress
	return nil
}

func (t *Tournament) End() error {
	if t.Status != StatusInProgress {
		return domainerr.InvalidTransition("cannot end tournament %d in status %s", t.ID, t.Status)
	}
	t.Status = StatusCompleted
	return nil
}

func (t *Tournament) Cancel() error {
	if t.Status != StatusCreated && t.Status != StatusInProgress {
		return domainerr.InvalidTransition("cannot cancel tournament %d in status %s", t.ID, t.Status)
	}
	t.Status = StatusCancelled
	return nil
}

func (t Tournament) EnsureDeletable() error {
	if t.Status == StatusInProgress {
		return domainerr.InvalidTransition("cannot delete tournament %d while in progress", t.ID)
	}
	return nil
}

func (t Tournament) EnsureAcceptsMatches() error {
	if t.Status != StatusCreated && t.Status != StatusInProgress {
		return domainerr.InvalidTransition("tournament %d in status %s does not accept matches", t.ID, t.Status)
	}
	return nil
}

func validateLength(field, value string, minLen, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return domainerr.Validation("%s is required", field)
	}
	n := utf8.RuneCountInString(value)
	if n < minLen || n > maxLen {
		return domainerr.Validation("%s must be between %d and %d characters", field, minLen, maxLen)
	}
	return nil
}
