package domain

// SubComponent is one scored factor within a pillar. The field set is a
// public contract - the UI renders per-factor progress bars straight from
// this struct. Confidence in [0,1] reflects how much history backed the
// factor; low-confidence factors are blended toward neutral half credit.
type SubComponent struct {
	Name       string  `json:"name"`
	Score      float64 `json:"score"`
	MaxPoints  float64 `json:"maxPoints"`
	Confidence float64 `json:"confidence"`
}

type PillarScore struct {
	Name          string         `json:"name"`
	Score         float64        `json:"score"`
	MaxPoints     float64        `json:"maxPoints"`
	SubComponents []SubComponent `json:"subComponents"`
}

// ScoreResult is the full financial health score on the fixed 0-1000 scale.
type ScoreResult struct {
	TotalScore int           `json:"totalScore"`
	Pillars    []PillarScore `json:"pillars"`
	Level      int           `json:"level"`
	LevelTitle string        `json:"levelTitle"`
}
