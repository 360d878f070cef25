package scorer

import (
	"fmt"
	"math"

	"finhealth/internal/domain"
)

// Scorer combines a financial snapshot into a single 0-1000 score across
// three pillars: Trajectory (momentum), Behavior (consistency), and
// Position (current standing). Identical snapshots always produce identical
// results; the only clock the scorer sees is snapshot.AsOf.
type Scorer struct {
	Config Config
}

func NewScorer(config Config) *Scorer {
	return &Scorer{Config: config}
}

func (s *Scorer) CalculateScore(snapshot domain.FinancialSnapshot) (*domain.ScoreResult, error) {
	if err := s.Config.Validate(); err != nil {
		return nil, err
	}

	flows := monthlyFlows(snapshot.Transactions, snapshot.AsOf, trailingWindowMonths)

	pillars := []domain.PillarScore{
		s.trajectoryPillar(snapshot, flows),
		s.behaviorPillar(snapshot, flows),
		s.positionPillar(snapshot, flows),
	}

	total := 0.0
	for _, pillar := range pillars {
		total += pillar.Score
	}
	totalScore := int(math.Round(total))
	if totalScore < 0 {
		totalScore = 0
	}
	if totalScore > 1000 {
		totalScore = 1000
	}

	level := s.Config.levelFor(totalScore)

	return &domain.ScoreResult{
		TotalScore: totalScore,
		Pillars:    pillars,
		Level:      level.Level,
		LevelTitle: fmt.Sprintf("Level %d - %s", level.Level, level.Title),
	}, nil
}

func buildPillar(name string, maxPoints float64, subs []domain.SubComponent) domain.PillarScore {
	score := 0.0
	for _, sub := range subs {
		score += sub.Score
	}
	return domain.PillarScore{
		Name:          name,
		Score:         score,
		MaxPoints:     maxPoints,
		SubComponents: subs,
	}
}

// blend applies progressive (cold start) scoring: the earned score counts in
// proportion to confidence, and the remainder falls back to neutral half
// credit instead of zeroing out users with thin history.
func blend(name string, earned, maxPoints, confidence float64) domain.SubComponent {
	confidence = clamp01(confidence)
	earned = math.Min(earned, maxPoints)
	return domain.SubComponent{
		Name:       name,
		Score:      confidence*earned + (1-confidence)*0.5*maxPoints,
		MaxPoints:  maxPoints,
		Confidence: confidence,
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// saturate maps x >= 0 into [0, 1) with diminishing returns: ~0.63 at
// x = scale, ~0.86 at 2*scale. Keeps every factor continuous - no cliffs.
func saturate(x, scale float64) float64 {
	if x <= 0 {
		return 0
	}
	return 1 - math.Exp(-x/scale)
}

// logScale maps x >= 0 into [0, 1] on a logarithmic curve that hits 1 at
// target. An extra dollar matters less the more is already there.
func logScale(x, target float64) float64 {
	if x <= 0 || target <= 0 {
		return 0
	}
	return clamp01(math.Log1p(x) / math.Log1p(target))
}
