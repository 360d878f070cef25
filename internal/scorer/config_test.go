package scorer

import (
	"os"
	"path/filepath"
	"testing"

	"finhealth/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	t.Run("default config is valid", func(t *testing.T) {
		require.NoError(t, DefaultConfig().Validate())
	})

	t.Run("zero pillar budget", func(t *testing.T) {
		config := DefaultConfig()
		config.Behavior = BehaviorConfig{}
		require.Error(t, config.Validate())
	})

	t.Run("negative risk multiplier", func(t *testing.T) {
		config := DefaultConfig()
		config.DebtRiskMultipliers[domain.DebtCreditCard] = -1
		require.Error(t, config.Validate())
	})

	t.Run("no levels", func(t *testing.T) {
		config := DefaultConfig()
		config.Levels = nil
		require.Error(t, config.Validate())
	})

	t.Run("first level must start at zero", func(t *testing.T) {
		config := DefaultConfig()
		config.Levels[0].MinScore = 10
		require.Error(t, config.Validate())
	})

	t.Run("thresholds must increase", func(t *testing.T) {
		config := DefaultConfig()
		config.Levels[2].MinScore = config.Levels[1].MinScore
		require.Error(t, config.Validate())
	})
}

func TestLevelFor(t *testing.T) {
	config := DefaultConfig()

	require.Equal(t, 1, config.levelFor(0).Level)
	require.Equal(t, 1, config.levelFor(149).Level)
	require.Equal(t, 2, config.levelFor(150).Level)
	require.Equal(t, 7, config.levelFor(1000).Level)
}

func TestLoadConfig(t *testing.T) {
	t.Run("round trips yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scoring.yaml")
		contents := `
version: custom
trajectory:
  savingsRateMax: 100
  debtPaydownMax: 100
  cashflowTrendMax: 100
behavior:
  budgetAdherenceMax: 150
  onBudgetFrequencyMax: 100
  consistencyMax: 100
position:
  emergencyFundMax: 150
  debtToIncomeMax: 100
  netWorthMax: 100
  emergencyFundTargetMonths: 3
debtRiskMultipliers:
  credit_card: 3
  mortgage: 0.5
levels:
  - minScore: 0
    level: 1
    title: Novice
  - minScore: 500
    level: 2
    title: Adept
`
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

		config, err := LoadConfig(path)
		require.NoError(t, err)
		require.Equal(t, "custom", config.Version)
		require.Equal(t, 3.0, config.riskMultiplier(domain.DebtCreditCard))
		require.Equal(t, 1.0, config.riskMultiplier(domain.DebtAutoLoan))
		require.Equal(t, "Adept", config.levelFor(640).Title)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scoring.yaml")
		require.NoError(t, os.WriteFile(path, []byte("levels: []"), 0o644))

		_, err := LoadConfig(path)
		require.Error(t, err)
	})
}
