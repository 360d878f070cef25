package scorer

import (
	"math"

	"finhealth/internal/domain"

	"github.com/shopspring/decimal"
)

// behaviorPillar rewards consistency: staying inside budgets overall,
// staying inside each individual budget, and actually logging activity
// month after month.
func (s *Scorer) behaviorPillar(snapshot domain.FinancialSnapshot, flows []monthlyFlow) domain.PillarScore {
	cfg := s.Config.Behavior
	subs := []domain.SubComponent{
		s.budgetAdherence(snapshot),
		s.onBudgetFrequency(snapshot),
		s.loggingConsistency(snapshot, flows),
	}
	return buildPillar("Behavior", cfg.total(), subs)
}

func (s *Scorer) budgetAdherence(snapshot domain.FinancialSnapshot) domain.SubComponent {
	maxPoints := s.Config.Behavior.BudgetAdherenceMax

	totalBudgeted := decimal.Zero
	totalSpent := decimal.Zero
	for _, budget := range snapshot.Budgets {
		totalBudgeted = totalBudgeted.Add(budget.Budgeted)
		totalSpent = totalSpent.Add(budget.Spent)
	}
	if totalBudgeted.LessThanOrEqual(decimal.Zero) {
		return blend("Budget Adherence", 0, maxPoints, 0)
	}

	ratio := totalSpent.Div(totalBudgeted).InexactFloat64()
	var adherence float64
	if ratio <= 1 {
		// slight reward for headroom under budget
		adherence = 1 - 0.1*clamp01(ratio)
	} else {
		// overspending decays smoothly from the 0.9 it meets at ratio 1
		adherence = 0.9 * math.Exp(-(ratio-1)/0.25)
	}
	return blend("Budget Adherence", maxPoints*adherence, maxPoints, 1)
}

func (s *Scorer) onBudgetFrequency(snapshot domain.FinancialSnapshot) domain.SubComponent {
	maxPoints := s.Config.Behavior.OnBudgetFrequencyMax

	scored := 0
	total := 0.0
	for _, budget := range snapshot.Budgets {
		if budget.Budgeted.LessThanOrEqual(decimal.Zero) {
			continue
		}
		ratio := budget.Spent.Div(budget.Budgeted).InexactFloat64()
		// full credit within budget, sliding to zero at 2x overspend
		total += clamp01(2 - ratio)
		scored++
	}
	if scored == 0 {
		return blend("On-Budget Frequency", 0, maxPoints, 0)
	}

	earned := maxPoints * total / float64(scored)
	return blend("On-Budget Frequency", earned, maxPoints, 1)
}

func (s *Scorer) loggingConsistency(snapshot domain.FinancialSnapshot, flows []monthlyFlow) domain.SubComponent {
	maxPoints := s.Config.Behavior.ConsistencyMax

	transactions := 0
	cleared := 0
	for _, flow := range flows {
		transactions += flow.Transactions
		cleared += flow.Cleared
	}
	if transactions == 0 {
		return blend("Logging Consistency", 0, maxPoints, 0)
	}

	coverage := float64(activeMonths(flows)) / float64(len(flows))
	clearedFraction := float64(cleared) / float64(transactions)
	earned := maxPoints * (0.7*coverage + 0.3*clearedFraction)

	confidence := math.Min(1, float64(activeMonths(flows))/3)
	return blend("Logging Consistency", earned, maxPoints, confidence)
}
