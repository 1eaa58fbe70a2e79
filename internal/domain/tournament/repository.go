package tournament

import "context"

// Repository describes tournament persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Tournament, error)
	GetByID(ctx context.Context, tournamentID int64) (Tournament, bool, error)
	// GetForUpdate loads the tournament and holds it until the surrounding
	// unit of work ends. Status transitions read through it.
	GetForUpdate(ctx context.Context, tournamentID int64) (Tournament, bool, error)
	Insert(ctx context.Context, item *Tournament) error
	Update(ctx context.Context, item Tournament) error
	Delete(ctx context.Context, tournamentID int64) error
}
