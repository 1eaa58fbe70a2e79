package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, teamID int64) (Team, bool, error)
	// GetForUpdate loads the team and holds it until the surrounding unit of
	// work ends.
	GetForUpdate(ctx context.Context, teamID int64) (Team, bool, error)
	ListByTournament(ctx context.Context, tournamentID int64) ([]Team, error)
	// ListByTournamentForUpdate locks the tournament's teams in ascending id
	// order, the same order result registration uses.
	ListByTournamentForUpdate(ctx context.Context, tournamentID int64) ([]Team, error)
	Insert(ctx context.Context, item *Team) error
	Update(ctx context.Context, item Team) error
	Delete(ctx context.Context, teamID int64) error
	DeleteByTournament(ctx context.Context, tournamentID int64) error
}
