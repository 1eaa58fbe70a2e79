package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, matchID int64) (Match, bool, error)
	GetForUpdate(ctx context.Context, matchID int64) (Match, bool, error)
	ListByTournament(ctx context.Context, tournamentID int64) ([]Match, error)
	CountByTeam(ctx context.Context, teamID int64) (int, error)
	Insert(ctx context.Context, item *Match) error
	Update(ctx context.Context, item Match) error
	Delete(ctx context.Context, matchID int64) error
	DeleteByTournament(ctx context.Context, tournamentID int64) error
}
