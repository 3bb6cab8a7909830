package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/greet-marketplace/service-bookings/internal/domain/listing"
)

const listingCacheTTL = 5 * time.Minute

// CachedListingRepository decorates a ListingRepository with a Redis cache.
// Listings are read-only from this service's perspective, so a short TTL'd
// JSON snapshot is enough. Cache errors are logged and treated as misses.
type CachedListingRepository struct {
	inner  listing.ListingRepository
	client *redis.Client
	logger *zap.Logger
}

// NewCachedListingRepository wraps inner with a Redis cache.
func NewCachedListingRepository(inner listing.ListingRepository, client *redis.Client, logger *zap.Logger) *CachedListingRepository {
	return &CachedListingRepository{inner: inner, client: client, logger: logger}
}

// FindByID serves the listing from cache when present, falling through to
// the inner repository and populating the cache on miss.
func (r *CachedListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	key := cacheKey(id)

	raw, err := r.client.Get(ctx, key).Bytes()
	if err == nil {
		var lst listing.Listing
		if err := json.Unmarshal(raw, &lst); err == nil {
			return &lst, nil
		}
		// Corrupt entry: drop it and fall through.
		_ = r.client.Del(ctx, key).Err()
	} else if err != redis.Nil {
		r.logger.Warn("listing cache read failed", zap.Error(err))
	}

	lst, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(lst); err == nil {
		if err := r.client.Set(ctx, key, data, listingCacheTTL).Err(); err != nil {
			r.logger.Warn("listing cache write failed", zap.Error(err))
		}
	}

	return lst, nil
}

func cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("listing:%s", id)
}
