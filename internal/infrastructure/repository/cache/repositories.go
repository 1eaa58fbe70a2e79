package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/tournament-ledger/internal/domain/tournament"
	"github.com/riskibarqy/tournament-ledger/internal/domain/unitofwork"
	basecache "github.com/riskibarqy/tournament-ledger/internal/platform/cache"
)

const tournamentKeyPrefix = "tournament:"

// TournamentRepository serves tournament reads from a TTL cache. Teams and
// matches are not cached since every result changes them.
type TournamentRepository struct {
	next  tournament.Repository
	cache *basecache.Store
}

func NewTournamentRepository(next tournament.Repository, cache *basecache.Store) *TournamentRepository {
	return &TournamentRepository{next: next, cache: cache}
}

func (r *TournamentRepository) List(ctx context.Context) ([]tournament.Tournament, error) {
	v, err := r.cache.GetOrLoad(ctx, tournamentKeyPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]tournament.Tournament(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]tournament.Tournament)
	return append([]tournament.Tournament(nil), items...), nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID int64) (tournament.Tournament, bool, error) {
	key := tournamentKeyPrefix + "id:" + strconv.FormatInt(tournamentID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return cachedTournamentByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return tournament.Tournament{}, false, err
	}

	cached, _ := v.(cachedTournamentByID)
	return cached.value, cached.exists, nil
}

// GetForUpdate always reaches the database; a locked read must see the row it
// locks.
func (r *TournamentRepository) GetForUpdate(ctx context.Context, tournamentID int64) (tournament.Tournament, bool, error) {
	return r.next.GetForUpdate(ctx, tournamentID)
}

func (r *TournamentRepository) Insert(ctx context.Context, item *tournament.Tournament) error {
	defer r.cache.DeletePrefix(ctx, tournamentKeyPrefix)
	return r.next.Insert(ctx, item)
}

func (r *TournamentRepository) Update(ctx context.Context, item tournament.Tournament) error {
	defer r.cache.DeletePrefix(ctx, tournamentKeyPrefix)
	return r.next.Update(ctx, item)
}

func (r *TournamentRepository) Delete(ctx context.Context, tournamentID int64) error {
	defer r.cache.DeletePrefix(ctx, tournamentKeyPrefix)
	return r.next.Delete(ctx, tournamentID)
}

type cachedTournamentByID struct {
	value  tournament.Tournament
	exists bool
}

// UnitOfWork drops cached tournaments once a unit of work commits. Writes
// inside the unit of work bypass TournamentRepository, so this is where the
// cache learns about them.
type UnitOfWork struct {
	next  unitofwork.UnitOfWork
	cache *basecache.Store
}

func NewUnitOfWork(next unitofwork.UnitOfWork, cache *basecache.Store) *UnitOfWork {
	return &UnitOfWork{next: next, cache: cache}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos unitofwork.Repositories) error) error {
	if err := u.next.Do(ctx, fn); err != nil {
		return err
	}
	u.cache.DeletePrefix(ctx, tournamentKeyPrefix)
	return nil
}
