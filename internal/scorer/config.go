package scorer

import (
	"fmt"
	"os"

	"finhealth/internal/domain"

	"gopkg.in/yaml.v3"
)

// Config carries every tunable in the scoring model: subcomponent point
// budgets, debt risk multipliers, and the level table. Keeping it as data
// means a rebalance ships as a config change, not an algorithm change.
type Config struct {
	Version string `yaml:"version"`

	Trajectory TrajectoryConfig `yaml:"trajectory"`
	Behavior   BehaviorConfig   `yaml:"behavior"`
	Position   PositionConfig   `yaml:"position"`

	// DebtRiskMultipliers weight debt balances by realized financial risk.
	// A dollar of credit card debt should hurt Position more than a dollar
	// of low-rate mortgage. Unknown debt types fall back to 1.0.
	DebtRiskMultipliers map[domain.DebtType]float64 `yaml:"debtRiskMultipliers"`

	Levels []LevelThreshold `yaml:"levels"`
}

type TrajectoryConfig struct {
	SavingsRateMax   float64 `yaml:"savingsRateMax"`
	DebtPaydownMax   float64 `yaml:"debtPaydownMax"`
	CashflowTrendMax float64 `yaml:"cashflowTrendMax"`
}

func (c TrajectoryConfig) total() float64 {
	return c.SavingsRateMax + c.DebtPaydownMax + c.CashflowTrendMax
}

type BehaviorConfig struct {
	BudgetAdherenceMax   float64 `yaml:"budgetAdherenceMax"`
	OnBudgetFrequencyMax float64 `yaml:"onBudgetFrequencyMax"`
	ConsistencyMax       float64 `yaml:"consistencyMax"`
}

func (c BehaviorConfig) total() float64 {
	return c.BudgetAdherenceMax + c.OnBudgetFrequencyMax + c.ConsistencyMax
}

type PositionConfig struct {
	EmergencyFundMax          float64 `yaml:"emergencyFundMax"`
	DebtToIncomeMax           float64 `yaml:"debtToIncomeMax"`
	NetWorthMax               float64 `yaml:"netWorthMax"`
	EmergencyFundTargetMonths float64 `yaml:"emergencyFundTargetMonths"`
}

func (c PositionConfig) total() float64 {
	return c.EmergencyFundMax + c.DebtToIncomeMax + c.NetWorthMax
}

// LevelThreshold maps a minimum total score to a gamification level.
type LevelThreshold struct {
	MinScore int    `yaml:"minScore"`
	Level    int    `yaml:"level"`
	Title    string `yaml:"title"`
}

// DefaultConfig is the v2 rebalance: Trajectory 350 / Behavior 350 /
// Position 300.
func DefaultConfig() Config {
	return Config{
		Version: "v2",
		Trajectory: TrajectoryConfig{
			SavingsRateMax:   140,
			DebtPaydownMax:   110,
			CashflowTrendMax: 100,
		},
		Behavior: BehaviorConfig{
			BudgetAdherenceMax:   150,
			OnBudgetFrequencyMax: 110,
			ConsistencyMax:       90,
		},
		Position: PositionConfig{
			EmergencyFundMax:          130,
			DebtToIncomeMax:           100,
			NetWorthMax:               70,
			EmergencyFundTargetMonths: 6,
		},
		DebtRiskMultipliers: map[domain.DebtType]float64{
			domain.DebtCreditCard:   2.0,
			domain.DebtPersonalLoan: 1.5,
			domain.DebtAutoLoan:     1.0,
			domain.DebtStudentLoan:  0.8,
			domain.DebtMortgage:     0.4,
		},
		Levels: []LevelThreshold{
			{MinScore: 0, Level: 1, Title: "Getting Started"},
			{MinScore: 150, Level: 2, Title: "Foundation Builder"},
			{MinScore: 300, Level: 3, Title: "Steady Saver"},
			{MinScore: 450, Level: 4, Title: "Money Manager"},
			{MinScore: 600, Level: 5, Title: "Momentum Maker"},
			{MinScore: 750, Level: 6, Title: "Wealth Builder"},
			{MinScore: 900, Level: 7, Title: "Financially Free"},
		},
	}
}

// LoadConfig reads a scoring config from a YAML file and validates it.
func LoadConfig(path string) (*Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scoring config: %w", err)
	}

	config := Config{}
	if err := yaml.Unmarshal(contents, &config); err != nil {
		return nil, fmt.Errorf("failed to parse scoring config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Config) Validate() error {
	if c.Trajectory.total() <= 0 || c.Behavior.total() <= 0 || c.Position.total() <= 0 {
		return fmt.Errorf("invalid scoring config: every pillar needs a positive point budget")
	}
	for debtType, multiplier := range c.DebtRiskMultipliers {
		if multiplier < 0 {
			return fmt.Errorf("invalid scoring config: negative risk multiplier for %s", debtType)
		}
	}
	if len(c.Levels) == 0 {
		return fmt.Errorf("invalid scoring config: no levels defined")
	}
	if c.Levels[0].MinScore != 0 {
		return fmt.Errorf("invalid scoring config: first level must start at score 0")
	}
	for i := 1; i < len(c.Levels); i++ {
		if c.Levels[i].MinScore <= c.Levels[i-1].MinScore {
			return fmt.Errorf("invalid scoring config: level thresholds must be strictly increasing")
		}
	}
	return nil
}

// riskMultiplier looks up the configured weighting for a debt type.
func (c Config) riskMultiplier(debtType domain.DebtType) float64 {
	if multiplier, ok := c.DebtRiskMultipliers[debtType]; ok {
		return multiplier
	}
	return 1.0
}

// levelFor resolves the gamification level for a total score.
func (c Config) levelFor(totalScore int) LevelThreshold {
	matched := c.Levels[0]
	for _, threshold := range c.Levels {
		if totalScore >= threshold.MinScore {
			matched = threshold
		}
	}
	return matched
}
