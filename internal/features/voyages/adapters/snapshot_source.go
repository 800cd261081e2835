package adapters

import (
	"context"
	"fmt"
	"time"

	underway "voyage-tracker/internal/features/underway/domain"
	underwayports "voyage-tracker/internal/features/underway/ports"
)

// SnapshotSource implements ports.ObservationSource over the underway
// snapshot store, discarding observations before the configured cutoff.
type SnapshotSource struct {
	store  underwayports.ObservationStore
	cutoff time.Time
}

// NewSnapshotSource creates a new SnapshotSource.
func NewSnapshotSource(store underwayports.ObservationStore, cutoff time.Time) *SnapshotSource {
	return &SnapshotSource{
		store:  store,
		cutoff: cutoff,
	}
}

// Load returns the snapshot history from the cutoff onward, oldest first.
func (s *SnapshotSource) Load(ctx context.Context) ([]underway.Observation, error) {
	observations, err := s.store.LoadSince(ctx, s.cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return observations, nil
}
