package scorer

import (
	"testing"
	"time"

	"finhealth/internal/domain"
	"finhealth/internal/util"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func monthlyTransactions(asOf time.Time, months int, income, spending float64) []domain.Transaction {
	transactions := []domain.Transaction{}
	for offset := 0; offset < months; offset++ {
		date := asOf.AddDate(0, -offset, 0)
		transactions = append(transactions,
			domain.Transaction{
				Amount:   decimal.NewFromFloat(income),
				Date:     date,
				Category: "income",
				Cleared:  true,
			},
			domain.Transaction{
				Amount:   decimal.NewFromFloat(-spending),
				Date:     date,
				Category: "living",
				Cleared:  true,
			},
		)
	}
	return transactions
}

func healthySnapshot(asOf time.Time) domain.FinancialSnapshot {
	return domain.FinancialSnapshot{
		UserID:        uuid.MustParse("7ab62fa5-4b82-4f92-a0cf-9f3e5f67ab81"),
		AsOf:          asOf,
		MonthlyIncome: decimal.NewFromInt(8000),
		Accounts: []domain.Account{
			{Name: "checking", Type: domain.AccountChecking, Balance: decimal.NewFromInt(6000)},
			{Name: "savings", Type: domain.AccountSavings, Balance: decimal.NewFromInt(24000)},
			{Name: "brokerage", Type: domain.AccountInvestment, Balance: decimal.NewFromInt(40000)},
		},
		Budgets: []domain.Budget{
			{Category: "groceries", Budgeted: decimal.NewFromInt(800), Spent: decimal.NewFromInt(650)},
			{Category: "dining", Budgeted: decimal.NewFromInt(300), Spent: decimal.NewFromInt(280)},
			{Category: "transport", Budgeted: decimal.NewFromInt(200), Spent: decimal.NewFromInt(150)},
		},
		Transactions: monthlyTransactions(asOf, 6, 8000, 5200),
		Debts: []domain.Debt{
			{
				Name:              "student loan",
				Type:              domain.DebtStudentLoan,
				Balance:           decimal.NewFromInt(12000),
				AnnualRatePercent: decimal.NewFromFloat(4.5),
				Payments: []domain.DebtPayment{
					{Date: asOf.AddDate(0, -1, 0), Amount: decimal.NewFromInt(400)},
					{Date: asOf.AddDate(0, -2, 0), Amount: decimal.NewFromInt(400)},
					{Date: asOf.AddDate(0, -3, 0), Amount: decimal.NewFromInt(400)},
				},
			},
		},
		SavingsGoals: []domain.SavingsGoal{
			{
				Name:                "emergency fund",
				Target:              decimal.NewFromInt(30000),
				Current:             decimal.NewFromInt(24000),
				MonthlyContribution: decimal.NewFromInt(900),
			},
		},
	}
}

func TestCalculateScore(t *testing.T) {
	asOf := util.NewDate(2024, 6, 15)
	s := NewScorer(DefaultConfig())

	t.Run("healthy snapshot scores well", func(t *testing.T) {
		result, err := s.CalculateScore(healthySnapshot(asOf))
		require.NoError(t, err)

		require.GreaterOrEqual(t, result.TotalScore, 600)
		require.LessOrEqual(t, result.TotalScore, 1000)
		require.Len(t, result.Pillars, 3)
		require.Equal(t, "Trajectory", result.Pillars[0].Name)
		require.Equal(t, "Behavior", result.Pillars[1].Name)
		require.Equal(t, "Position", result.Pillars[2].Name)
	})

	t.Run("pillar scores stay within their budgets", func(t *testing.T) {
		result, err := s.CalculateScore(healthySnapshot(asOf))
		require.NoError(t, err)

		for _, pillar := range result.Pillars {
			require.GreaterOrEqual(t, pillar.Score, 0.0)
			require.LessOrEqual(t, pillar.Score, pillar.MaxPoints)
			for _, sub := range pillar.SubComponents {
				require.GreaterOrEqual(t, sub.Score, 0.0)
				require.LessOrEqual(t, sub.Score, sub.MaxPoints)
				require.GreaterOrEqual(t, sub.Confidence, 0.0)
				require.LessOrEqual(t, sub.Confidence, 1.0)
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		first, err := s.CalculateScore(healthySnapshot(asOf))
		require.NoError(t, err)
		second, err := s.CalculateScore(healthySnapshot(asOf))
		require.NoError(t, err)

		require.Equal(t, "", cmp.Diff(first, second))
	})

	t.Run("empty snapshot is bounded, not an error", func(t *testing.T) {
		result, err := s.CalculateScore(domain.FinancialSnapshot{AsOf: asOf})
		require.NoError(t, err)

		require.GreaterOrEqual(t, result.TotalScore, 0)
		require.LessOrEqual(t, result.TotalScore, 1000)
	})

	t.Run("cold start earns partial confidence, not zero", func(t *testing.T) {
		// income and one account, no history at all
		result, err := s.CalculateScore(domain.FinancialSnapshot{
			AsOf:          asOf,
			MonthlyIncome: decimal.NewFromInt(5000),
			Accounts: []domain.Account{
				{Name: "checking", Type: domain.AccountChecking, Balance: decimal.NewFromInt(3000)},
			},
		})
		require.NoError(t, err)

		require.Greater(t, result.TotalScore, 0)

		confidences := map[string]float64{}
		for _, pillar := range result.Pillars {
			for _, sub := range pillar.SubComponents {
				confidences[sub.Name] = sub.Confidence
			}
		}
		// history-backed factors get discounted; debt factors are fully
		// confident because "no debt" is real information
		for _, name := range []string{
			"Savings Rate", "Cashflow Trend", "Budget Adherence",
			"On-Budget Frequency", "Logging Consistency", "Emergency Fund",
		} {
			require.Less(t, confidences[name], 1.0,
				"%s should not claim full confidence without history", name)
		}
		require.Equal(t, 1.0, confidences["Debt Paydown"])
		require.Equal(t, 1.0, confidences["Debt-to-Income"])
	})

	t.Run("level comes from the threshold table", func(t *testing.T) {
		result, err := s.CalculateScore(healthySnapshot(asOf))
		require.NoError(t, err)

		level := DefaultConfig().levelFor(result.TotalScore)
		require.Equal(t, level.Level, result.Level)
		require.Contains(t, result.LevelTitle, level.Title)
	})

	t.Run("invalid config errors", func(t *testing.T) {
		_, err := NewScorer(Config{}).CalculateScore(healthySnapshot(asOf))
		require.Error(t, err)
	})
}

func TestCalculateScore_debtTypeWeighting(t *testing.T) {
	// equal balances must not penalize Position equally: credit card debt
	// carries more realized risk than a mortgage
	asOf := util.NewDate(2024, 6, 15)
	s := NewScorer(DefaultConfig())

	withDebt := func(debtType domain.DebtType) domain.FinancialSnapshot {
		snapshot := healthySnapshot(asOf)
		snapshot.Debts = []domain.Debt{
			{Name: "debt", Type: debtType, Balance: decimal.NewFromInt(60000)},
		}
		return snapshot
	}

	creditCard, err := s.CalculateScore(withDebt(domain.DebtCreditCard))
	require.NoError(t, err)
	mortgage, err := s.CalculateScore(withDebt(domain.DebtMortgage))
	require.NoError(t, err)

	require.Greater(t, mortgage.Pillars[2].Score, creditCard.Pillars[2].Score)
}

func TestCalculateScore_paydownWindow(t *testing.T) {
	// month-end snapshot date; payments on the window edges must land on
	// the right side of the trailing-6-calendar-month cutoff
	asOf := util.NewDate(2024, 5, 31)
	s := NewScorer(DefaultConfig())

	result, err := s.CalculateScore(domain.FinancialSnapshot{
		AsOf:          asOf,
		MonthlyIncome: decimal.NewFromInt(6000),
		Debts: []domain.Debt{
			{
				Name:    "auto loan",
				Type:    domain.DebtAutoLoan,
				Balance: decimal.NewFromInt(9000),
				Payments: []domain.DebtPayment{
					// on the snapshot date: counts
					{Date: asOf, Amount: decimal.NewFromInt(350)},
					// first day of the window: counts
					{Date: util.NewDate(2023, 12, 1), Amount: decimal.NewFromInt(350)},
					// day before the window: excluded
					{Date: util.NewDate(2023, 11, 30), Amount: decimal.NewFromInt(350)},
				},
			},
		},
	})
	require.NoError(t, err)

	var paydown domain.SubComponent
	for _, sub := range result.Pillars[0].SubComponents {
		if sub.Name == "Debt Paydown" {
			paydown = sub
		}
	}
	require.Equal(t, 1.0, paydown.Confidence)

	// two of the three payments fall inside the window
	velocity := 700.0 / 9700.0
	expected := DefaultConfig().Trajectory.DebtPaydownMax * saturate(velocity, 0.10)
	require.InDelta(t, expected, paydown.Score, 1e-9)
}

func TestCalculateScore_rewardsBetterBehavior(t *testing.T) {
	asOf := util.NewDate(2024, 6, 15)
	s := NewScorer(DefaultConfig())

	overspent := healthySnapshot(asOf)
	overspent.Budgets = []domain.Budget{
		{Category: "groceries", Budgeted: decimal.NewFromInt(800), Spent: decimal.NewFromInt(1900)},
		{Category: "dining", Budgeted: decimal.NewFromInt(300), Spent: decimal.NewFromInt(750)},
	}

	healthy, err := s.CalculateScore(healthySnapshot(asOf))
	require.NoError(t, err)
	blown, err := s.CalculateScore(overspent)
	require.NoError(t, err)

	require.Greater(t, healthy.Pillars[1].Score, blown.Pillars[1].Score)
	require.Greater(t, healthy.TotalScore, blown.TotalScore)
}
