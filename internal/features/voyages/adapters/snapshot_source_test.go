package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	underway "voyage-tracker/internal/features/underway/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore is a canned ObservationStore for source tests.
type stubStore struct {
	observations []underway.Observation
	err          error
	gotCutoff    time.Time
}

func (s *stubStore) Merge(ctx context.Context, observations []underway.Observation) (int64, error) {
	return 0, nil
}

func (s *stubStore) MaxTimestamp(ctx context.Context) (time.Time, bool, error) {
	return time.Time{}, false, nil
}

func (s *stubStore) Count(ctx context.Context) (int64, error) {
	return int64(len(s.observations)), nil
}

func (s *stubStore) LoadSince(ctx context.Context, cutoff time.Time) ([]underway.Observation, error) {
	s.gotCutoff = cutoff
	return s.observations, s.err
}

func (s *stubStore) Close() error { return nil }

// TestSnapshotSource_Load verifies the source forwards the configured
// cutoff and returns the store's history.
func TestSnapshotSource_Load(t *testing.T) {
	cutoff := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	store := &stubStore{
		observations: []underway.Observation{
			{GMLID: "a", Time: cutoff.AddDate(0, 1, 0), Lat: -42.88, Lon: 147.33},
			{GMLID: "b", Time: cutoff.AddDate(0, 2, 0), Lat: -50.0, Lon: 130.0},
		},
	}

	source := NewSnapshotSource(store, cutoff)
	got, err := source.Load(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, cutoff, store.gotCutoff)
}

// TestSnapshotSource_LoadError verifies store failures are wrapped.
func TestSnapshotSource_LoadError(t *testing.T) {
	store := &stubStore{err: errors.New("disk gone")}

	source := NewSnapshotSource(store, time.Time{})
	_, err := source.Load(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load snapshot")
	assert.Contains(t, err.Error(), "disk gone")
}
