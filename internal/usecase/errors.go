package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("resource conflict")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

func requireID(name string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidInput, name)
	}
	return nil
}
