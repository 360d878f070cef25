package scorer

import (
	"math"

	"finhealth/internal/domain"
	"finhealth/internal/util"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// trajectoryPillar rewards positive momentum: how much of income is being
// put away, how fast debt principal is shrinking, and which way monthly net
// cashflow is trending.
func (s *Scorer) trajectoryPillar(snapshot domain.FinancialSnapshot, flows []monthlyFlow) domain.PillarScore {
	cfg := s.Config.Trajectory
	subs := []domain.SubComponent{
		s.savingsRate(snapshot),
		s.debtPaydownVelocity(snapshot),
		s.cashflowTrend(snapshot, flows),
	}
	return buildPillar("Trajectory", cfg.total(), subs)
}

func (s *Scorer) savingsRate(snapshot domain.FinancialSnapshot) domain.SubComponent {
	maxPoints := s.Config.Trajectory.SavingsRateMax
	income := snapshot.MonthlyIncome.InexactFloat64()
	if income <= 0 {
		return blend("Savings Rate", 0, maxPoints, 0)
	}

	contributions := decimal.Zero
	for _, goal := range snapshot.SavingsGoals {
		contributions = contributions.Add(goal.MonthlyContribution)
	}

	rate := contributions.InexactFloat64() / income
	// saturates around a 12% savings rate
	earned := maxPoints * saturate(rate, 0.12)

	confidence := 1.0
	if len(snapshot.SavingsGoals) == 0 {
		// income known but no goals tracked - weak signal either way
		confidence = 0.4
	}
	return blend("Savings Rate", earned, maxPoints, confidence)
}

func (s *Scorer) debtPaydownVelocity(snapshot domain.FinancialSnapshot) domain.SubComponent {
	maxPoints := s.Config.Trajectory.DebtPaydownMax
	if len(snapshot.Debts) == 0 {
		// nothing to pay down is the best possible trajectory
		return blend("Debt Paydown", maxPoints, maxPoints, 1)
	}

	totalBalance := decimal.Zero
	paidInWindow := decimal.Zero
	// same trailing calendar months the flow buckets cover, anchored at a
	// month start so day-31 as-of dates can't skew the window
	windowStart := util.MonthStart(snapshot.AsOf).AddDate(0, -(trailingWindowMonths - 1), 0)
	historySeen := false
	for _, debt := range snapshot.Debts {
		totalBalance = totalBalance.Add(debt.Balance)
		for _, payment := range debt.Payments {
			historySeen = true
			if !payment.Date.Before(windowStart) && util.DateLte(payment.Date, snapshot.AsOf) {
				paidInWindow = paidInWindow.Add(payment.Amount)
			}
		}
	}

	if totalBalance.LessThanOrEqual(decimal.Zero) {
		return blend("Debt Paydown", maxPoints, maxPoints, 1)
	}

	// fraction of the starting-window balance retired over the window
	paid := paidInWindow.InexactFloat64()
	velocity := paid / (totalBalance.InexactFloat64() + paid)
	earned := maxPoints * saturate(velocity, 0.10)

	confidence := 1.0
	if !historySeen {
		confidence = 0.25
	}
	return blend("Debt Paydown", earned, maxPoints, confidence)
}

func (s *Scorer) cashflowTrend(snapshot domain.FinancialSnapshot, flows []monthlyFlow) domain.SubComponent {
	maxPoints := s.Config.Trajectory.CashflowTrendMax
	active := activeMonths(flows)
	if active < 2 {
		return blend("Cashflow Trend", 0, maxPoints, 0)
	}

	series := make(stats.Series, 0, len(flows))
	for i, flow := range flows {
		series = append(series, stats.Coordinate{X: float64(i), Y: flow.net()})
	}
	fitted, err := stats.LinearRegression(series)
	if err != nil || len(fitted) < 2 {
		return blend("Cashflow Trend", 0, maxPoints, 0)
	}
	slope := (fitted[len(fitted)-1].Y - fitted[0].Y) / float64(len(fitted)-1)

	reference := snapshot.MonthlyIncome.InexactFloat64()
	if reference <= 0 {
		total := 0.0
		for _, flow := range flows {
			total += flow.Inflow.InexactFloat64()
		}
		reference = total / float64(len(flows))
	}
	if reference <= 0 {
		return blend("Cashflow Trend", 0, maxPoints, 0)
	}

	// flat cashflow earns half credit; upward trends earn toward full
	normalized := slope / reference
	earned := maxPoints * (0.5 + 0.5*math.Tanh(normalized/0.10))

	confidence := math.Min(1, float64(active)/4)
	return blend("Cashflow Trend", earned, maxPoints, confidence)
}
