package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"voyage-tracker/internal/core/logger"
	"voyage-tracker/internal/features/underway/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrEmptyFeed is returned when a full fetch yields no observations.
// An empty incremental fetch just means the snapshot is current.
var ErrEmptyFeed = errors.New("feed returned no observations")

// RefreshResult summarizes one snapshot refresh run.
type RefreshResult struct {
	// RunID uniquely identifies this refresh run.
	RunID string `json:"run_id"`
	// Incremental is true when only observations after the snapshot's
	// newest timestamp were requested.
	Incremental bool `json:"incremental"`
	// Fetched is the number of observations returned by the feed.
	Fetched int `json:"fetched"`
	// Inserted is the number of new observations merged into the snapshot.
	Inserted int64 `json:"inserted"`
	// Total is the snapshot size after the merge.
	Total int64 `json:"total"`
	// DurationMS is the wall-clock duration of the run in milliseconds.
	DurationMS int64 `json:"duration_ms"`
	// CompletedAt is when the run finished.
	CompletedAt time.Time `json:"completed_at"`
}

// SnapshotStatus reports the snapshot state and the last refresh outcome.
type SnapshotStatus struct {
	// Observations is the current snapshot size.
	Observations int64 `json:"observations"`
	// LatestObservation is the newest observation time, if any.
	LatestObservation *time.Time `json:"latest_observation,omitempty"`
	// LastRefresh is the most recent successful refresh, if any.
	LastRefresh *RefreshResult `json:"last_refresh,omitempty"`
	// LastRefreshError is the most recent refresh failure, if the last
	// attempt failed.
	LastRefreshError string `json:"last_refresh_error,omitempty"`
}

// RefreshService keeps the local observation snapshot in sync with the
// upstream feed.
type RefreshService struct {
	feed   ports.FeedProvider
	store  ports.ObservationStore
	logger *zap.Logger

	mu      sync.Mutex
	last    *RefreshResult
	lastErr error
}

// NewRefreshService creates a new RefreshService.
func NewRefreshService(feed ports.FeedProvider, store ports.ObservationStore) *RefreshService {
	return &RefreshService{
		feed:   feed,
		store:  store,
		logger: logger.Get(),
	}
}

// Refresh downloads new observations and merges them into the snapshot.
// With a non-empty snapshot only observations after its newest timestamp
// are fetched; an empty snapshot triggers a full fetch. An empty full
// fetch fails with ErrEmptyFeed, an empty incremental fetch is a no-op.
func (s *RefreshService) Refresh(ctx context.Context) (*RefreshResult, error) {
	start := time.Now()
	runID := uuid.NewString()

	maxTS, haveSnapshot, err := s.store.MaxTimestamp(ctx)
	if err != nil {
		return nil, s.fail(fmt.Errorf("failed to read snapshot timestamp: %w", err))
	}

	var since *time.Time
	if haveSnapshot {
		since = &maxTS
	}

	s.logger.Info("Refreshing snapshot",
		zap.String("run_id", runID),
		zap.Bool("incremental", haveSnapshot),
	)

	observations, err := s.feed.Fetch(ctx, since)
	if err != nil {
		return nil, s.fail(fmt.Errorf("failed to fetch feed: %w", err))
	}
	if len(observations) == 0 && !haveSnapshot {
		return nil, s.fail(ErrEmptyFeed)
	}

	inserted, err := s.store.Merge(ctx, observations)
	if err != nil {
		return nil, s.fail(fmt.Errorf("failed to merge observations: %w", err))
	}

	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, s.fail(fmt.Errorf("failed to count snapshot: %w", err))
	}

	result := &RefreshResult{
		RunID:       runID,
		Incremental: haveSnapshot,
		Fetched:     len(observations),
		Inserted:    inserted,
		Total:       total,
		DurationMS:  time.Since(start).Milliseconds(),
		CompletedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.last = result
	s.lastErr = nil
	s.mu.Unlock()

	s.logger.Info("Snapshot refreshed",
		zap.String("run_id", runID),
		zap.Int("fetched", result.Fetched),
		zap.Int64("inserted", result.Inserted),
		zap.Int64("total", result.Total),
	)

	return result, nil
}

// fail records the error for the status endpoint and returns it.
func (s *RefreshService) fail(err error) error {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	return err
}

// Status reports the snapshot state together with the last refresh outcome.
func (s *RefreshService) Status(ctx context.Context) (*SnapshotStatus, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count snapshot: %w", err)
	}

	status := &SnapshotStatus{Observations: count}

	maxTS, ok, err := s.store.MaxTimestamp(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot timestamp: %w", err)
	}
	if ok {
		status.LatestObservation = &maxTS
	}

	s.mu.Lock()
	if s.last != nil {
		last := *s.last
		status.LastRefresh = &last
	}
	if s.lastErr != nil {
		status.LastRefreshError = s.lastErr.Error()
	}
	s.mu.Unlock()

	return status, nil
}
