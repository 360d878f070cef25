package service

import (
	"context"
	"fmt"
	"time"

	"finhealth/internal/cache"
	"finhealth/internal/domain"
	"finhealth/internal/logger"
	"finhealth/internal/scorer"

	"github.com/google/uuid"
)

// SnapshotProvider is the data-access collaborator. The application layer
// implements it against whatever store it uses; the scorer itself never
// sees storage.
type SnapshotProvider interface {
	GetSnapshot(ctx context.Context, userID uuid.UUID, asOf time.Time) (*domain.FinancialSnapshot, error)
}

type ScoreService interface {
	GetScore(ctx context.Context, userID uuid.UUID, asOf time.Time) (*domain.ScoreResult, error)
}

type scoreServiceHandler struct {
	SnapshotProvider SnapshotProvider
	Scorer           *scorer.Scorer
	Cache            cache.Cache
	CacheTTL         time.Duration
}

func NewScoreService(snapshotProvider SnapshotProvider, healthScorer *scorer.Scorer, scoreCache cache.Cache, cacheTTL time.Duration) ScoreService {
	return scoreServiceHandler{
		SnapshotProvider: snapshotProvider,
		Scorer:           healthScorer,
		Cache:            scoreCache,
		CacheTTL:         cacheTTL,
	}
}

func (h scoreServiceHandler) GetScore(ctx context.Context, userID uuid.UUID, asOf time.Time) (*domain.ScoreResult, error) {
	log := logger.FromContext(ctx)
	key := scoreCacheKey(userID, asOf)

	if h.Cache != nil {
		if cached, ok := h.Cache.Get(key); ok {
			if result, ok := cached.(*domain.ScoreResult); ok {
				log.Debugw("score cache hit", "userId", userID, "asOf", asOf)
				return result, nil
			}
		}
	}

	snapshot, err := h.SnapshotProvider.GetSnapshot(ctx, userID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot for %s: %w", userID, err)
	}

	result, err := h.Scorer.CalculateScore(*snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to score snapshot for %s: %w", userID, err)
	}
	log.Infow("computed financial health score",
		"userId", userID,
		"asOf", asOf,
		"totalScore", result.TotalScore,
		"level", result.Level,
	)

	if h.Cache != nil {
		h.Cache.Set(key, result, h.CacheTTL)
	}

	return result, nil
}

func scoreCacheKey(userID uuid.UUID, asOf time.Time) string {
	return fmt.Sprintf("score/%s/%s", userID, asOf.Format("2006-01-02"))
}
