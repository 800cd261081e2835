package ports

import (
	"context"

	underway "voyage-tracker/internal/features/underway/domain"
	"voyage-tracker/internal/features/voyages/domain"
)

// ObservationSource yields the position history the detector runs over.
type ObservationSource interface {
	// Load returns observations in ascending time order.
	Load(ctx context.Context) ([]underway.Observation, error)
}

// DraftRepository stores the most recent draft voyage log.
type DraftRepository interface {
	// Get returns the cached draft, or (nil, nil) when none is cached.
	Get(ctx context.Context) (*domain.VoyageLog, error)

	// Save replaces the cached draft.
	Save(ctx context.Context, log *domain.VoyageLog) error
}
