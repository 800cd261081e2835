package ports

import (
	"context"
	"time"

	"voyage-tracker/internal/features/underway/domain"
)

// FeedProvider defines the secondary port for fetching underway telemetry
// from the upstream feed.
type FeedProvider interface {
	// Fetch retrieves observations from the feed. A nil since fetches the
	// full history; otherwise only observations strictly after since are
	// requested.
	Fetch(ctx context.Context, since *time.Time) ([]domain.Observation, error)
	// HealthCheck verifies the feed endpoint is reachable and answering.
	HealthCheck(ctx context.Context) error
}

// ObservationStore defines the secondary port for the local observation
// snapshot.
type ObservationStore interface {
	// Merge inserts observations, skipping records already present.
	// Returns the number actually inserted. A failed merge leaves the
	// snapshot unchanged.
	Merge(ctx context.Context, observations []domain.Observation) (int64, error)
	// MaxTimestamp returns the newest observation time in the snapshot.
	// The bool is false when the snapshot is empty.
	MaxTimestamp(ctx context.Context) (time.Time, bool, error)
	// Count returns the number of observations in the snapshot.
	Count(ctx context.Context) (int64, error)
	// LoadSince returns observations at or after cutoff, ordered by time.
	LoadSince(ctx context.Context, cutoff time.Time) ([]domain.Observation, error)
	// Close releases the underlying storage.
	Close() error
}
