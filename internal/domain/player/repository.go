package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, playerID int64) (Player, bool, error)
	ListByTeam(ctx context.Context, teamID int64) ([]Player, error)
	Insert(ctx context.Context, item *Player) error
	Update(ctx context.Context, item Player) error
	Delete(ctx context.Context, playerID int64) error
	DeleteByTeam(ctx context.Context, teamID int64) error
}
