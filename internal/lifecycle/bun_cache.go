package lifecycle

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitebuilder/internal/identity"
)

// NewCacheRecordRepository creates a repository for CacheRecord entities.
func NewCacheRecordRepository(db *bun.DB) repository.Repository[*CacheRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*CacheRecord]{
		NewRecord: func() *CacheRecord { return &CacheRecord{} },
		GetID: func(r *CacheRecord) uuid.UUID {
			return r.ID
		},
		SetID: func(r *CacheRecord, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "business_id"
		},
		GetIdentifierValue: func(r *CacheRecord) string {
			return r.BusinessID
		},
	})
}

// BunCache is the durable LocalCache backed by the embedded sqlite database.
type BunCache struct {
	repo repository.Repository[*CacheRecord]
}

var _ LocalCache = (*BunCache)(nil)

// NewBunCache constructs a durable cache over db.
func NewBunCache(db *bun.DB) *BunCache {
	return NewBunCacheWithCache(db, nil, nil)
}

// NewBunCacheWithCache constructs a durable cache with optional read-through
// caching.
func NewBunCacheWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunCache {
	base := NewCacheRecordRepository(db)
	return &BunCache{repo: wrapWithCache(base, cacheService, keySerializer)}
}

func (c *BunCache) Get(ctx context.Context, businessID string) (*CacheRecord, error) {
	record, err := c.repo.GetByIdentifier(ctx, businessID)
	if err != nil {
		return nil, mapRepositoryError(err, businessID)
	}
	return record.Clone(), nil
}

func (c *BunCache) Put(ctx context.Context, record *CacheRecord) error {
	if record == nil || record.BusinessID == "" {
		return ErrCacheMiss
	}
	stored := record.Clone()
	if stored.ID == uuid.Nil {
		stored.ID = identity.CacheRecordUUID(stored.BusinessID)
	}
	if _, err := c.repo.Upsert(ctx, stored); err != nil {
		return fmt.Errorf("cache record upsert: %w", err)
	}
	return nil
}

func (c *BunCache) Delete(ctx context.Context, businessID string) error {
	record, err := c.repo.GetByIdentifier(ctx, businessID)
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil
		}
		return mapRepositoryError(err, businessID)
	}
	if err := c.repo.Delete(ctx, record); err != nil {
		return fmt.Errorf("cache record delete: %w", err)
	}
	return nil
}

func mapRepositoryError(err error, businessID string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return fmt.Errorf("%w: %s", ErrCacheMiss, businessID)
	}
	return fmt.Errorf("cache repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
