package cached

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-directory-service/internal/adapter/cache"
	domain "user-directory-service/internal/domain/directory"
	usecase "user-directory-service/internal/usecase/directory"
)

// CachedDirectoryRepository implements the directory Repository with a
// cached roster snapshot. Paginated listing always goes to the
// database (the criteria combinations are unbounded); the full-roster
// read used by locally-filtering clients is served cache-aside with
// singleflight so a cold cache triggers exactly one database scan.
type CachedDirectoryRepository struct {
	dbRepo usecase.Repository
	cache  cache.RosterCache
	log    *zap.Logger
	group  singleflight.Group
}

// NewCachedDirectoryRepository wraps a database repository with the
// roster cache. A nil cache disables caching.
func NewCachedDirectoryRepository(dbRepo usecase.Repository, c cache.RosterCache, log *zap.Logger) *CachedDirectoryRepository {
	return &CachedDirectoryRepository{dbRepo: dbRepo, cache: c, log: log}
}

// List delegates to the database repository.
func (r *CachedDirectoryRepository) List(ctx context.Context, criteria domain.FilterCriteria, page, size int64) ([]domain.UserRecord, error) {
	return r.dbRepo.List(ctx, criteria, page, size)
}

// Count delegates to the database repository.
func (r *CachedDirectoryRepository) Count(ctx context.Context, criteria domain.FilterCriteria) (int64, error) {
	return r.dbRepo.Count(ctx, criteria)
}

// GetByUserID delegates to the database repository.
func (r *CachedDirectoryRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserRecord, error) {
	return r.dbRepo.GetByUserID(ctx, userID)
}

// All returns the roster from cache when present, otherwise loads it
// from the database once and stores it. Cache errors degrade to a
// database read.
func (r *CachedDirectoryRepository) All(ctx context.Context) ([]domain.UserRecord, error) {
	if r.cache != nil {
		users, err := r.cache.Get(ctx)
		if err != nil {
			r.log.Warn("roster cache get error, falling back to database", zap.Error(err))
		} else if users != nil {
			return users, nil
		}
	}

	result, err, _ := r.group.Do("roster", func() (any, error) {
		// Only one concurrent miss hits the database
		users, err := r.dbRepo.All(ctx)
		if err != nil {
			return nil, err
		}

		if r.cache != nil {
			if err := r.cache.Set(ctx, users); err != nil {
				r.log.Warn("failed to cache roster", zap.Error(err))
			}
		}

		return users, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]domain.UserRecord), nil
}
