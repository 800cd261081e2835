package service

import (
	"context"
	"fmt"
	"time"

	"voyage-tracker/internal/core/logger"
	"voyage-tracker/internal/features/voyages/domain"
	"voyage-tracker/internal/features/voyages/ports"

	"go.uber.org/zap"
)

// DetectionService turns the observation history into a draft voyage
// log, with a cached draft in front of the full recompute.
type DetectionService struct {
	source  ports.ObservationSource
	drafts  ports.DraftRepository
	catalog *domain.Catalog
	opts    domain.Options
	logger  *zap.Logger
}

// NewDetectionService creates a new DetectionService. A nil drafts
// repository disables caching.
func NewDetectionService(source ports.ObservationSource, drafts ports.DraftRepository, catalog *domain.Catalog, opts domain.Options) *DetectionService {
	return &DetectionService{
		source:  source,
		drafts:  drafts,
		catalog: catalog,
		opts:    opts,
		logger:  logger.Get(),
	}
}

// Draft returns the current draft voyage log, serving the cached copy
// when one exists. With force set the cache is bypassed and the draft
// recomputed from the full history. Cache failures degrade to a
// recompute rather than failing the request.
func (s *DetectionService) Draft(ctx context.Context, force bool) (*domain.VoyageLog, error) {
	if s.drafts != nil && !force {
		cached, err := s.drafts.Get(ctx)
		if err != nil {
			s.logger.Warn("Draft cache read failed, recomputing", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	return s.recompute(ctx)
}

// Recompute rebuilds the draft from the full history and refreshes the
// cached copy.
func (s *DetectionService) Recompute(ctx context.Context) (*domain.VoyageLog, error) {
	return s.recompute(ctx)
}

func (s *DetectionService) recompute(ctx context.Context) (*domain.VoyageLog, error) {
	start := time.Now()

	observations, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load observations: %w", err)
	}

	opts := s.opts
	opts.GeneratedAt = time.Now().UTC()

	log, err := domain.Detect(s.catalog, observations, opts)
	if err != nil {
		return nil, fmt.Errorf("service: detection failed: %w", err)
	}

	s.logger.Info("Draft voyage log computed",
		zap.Int("observations", len(observations)),
		zap.Int("voyages", len(log.Voyages)),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	if s.drafts != nil {
		if err := s.drafts.Save(ctx, log); err != nil {
			s.logger.Warn("Draft cache write failed", zap.Error(err))
		}
	}

	return log, nil
}
