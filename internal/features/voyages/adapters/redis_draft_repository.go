package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"voyage-tracker/internal/core/cache"
	"voyage-tracker/internal/features/voyages/domain"
)

const draftCacheKey = "voyage_draft"

// RedisDraftRepository implements ports.DraftRepository on the cache
// adaptation.
type RedisDraftRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisDraftRepository creates a new RedisDraftRepository. A zero ttl
// caches drafts without expiration.
func NewRedisDraftRepository(c cache.Cache, ttl time.Duration) *RedisDraftRepository {
	return &RedisDraftRepository{
		cache: c,
		ttl:   ttl,
	}
}

// Get retrieves the cached draft. A cache miss returns (nil, nil).
func (r *RedisDraftRepository) Get(ctx context.Context) (*domain.VoyageLog, error) {
	data, err := r.cache.Get(ctx, draftCacheKey)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get draft from cache: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var log domain.VoyageLog
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	return &log, nil
}

// Save stores the draft in the cache.
func (r *RedisDraftRepository) Save(ctx context.Context, log *domain.VoyageLog) error {
	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := r.cache.Set(ctx, draftCacheKey, data, r.ttl); err != nil {
		return fmt.Errorf("failed to save draft to cache: %w", err)
	}

	return nil
}

// Delete removes the cached draft.
func (r *RedisDraftRepository) Delete(ctx context.Context) error {
	if err := r.cache.Delete(ctx, draftCacheKey); err != nil {
		return fmt.Errorf("failed to delete draft from cache: %w", err)
	}
	return nil
}
