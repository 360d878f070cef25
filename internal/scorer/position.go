package scorer

import (
	"math"

	"finhealth/internal/domain"

	"github.com/shopspring/decimal"
)

// positionPillar rewards current standing: months of expenses covered by
// liquid balances, risk-weighted debt load against income, and which side
// of zero net worth sits on.
func (s *Scorer) positionPillar(snapshot domain.FinancialSnapshot, flows []monthlyFlow) domain.PillarScore {
	cfg := s.Config.Position
	subs := []domain.SubComponent{
		s.emergencyFund(snapshot, flows),
		s.debtToIncome(snapshot),
		s.netWorthDirection(snapshot),
	}
	return buildPillar("Position", cfg.total(), subs)
}

func (s *Scorer) emergencyFund(snapshot domain.FinancialSnapshot, flows []monthlyFlow) domain.SubComponent {
	maxPoints := s.Config.Position.EmergencyFundMax
	if len(snapshot.Accounts) == 0 {
		return blend("Emergency Fund", 0, maxPoints, 0)
	}

	liquid := decimal.Zero
	for _, account := range snapshot.Accounts {
		if account.Type.IsLiquid() {
			liquid = liquid.Add(account.Balance)
		}
	}

	confidence := 1.0
	monthlySpend := averageSpending(flows)
	if monthlySpend <= 0 {
		// no observed spending; estimate burn from income instead
		income := snapshot.MonthlyIncome.InexactFloat64()
		if income <= 0 {
			return blend("Emergency Fund", 0, maxPoints, 0)
		}
		monthlySpend = 0.8 * income
		confidence = 0.5
	}

	monthsCovered := liquid.InexactFloat64() / monthlySpend
	target := s.Config.Position.EmergencyFundTargetMonths
	earned := maxPoints * logScale(monthsCovered, target)
	return blend("Emergency Fund", earned, maxPoints, confidence)
}

func (s *Scorer) debtToIncome(snapshot domain.FinancialSnapshot) domain.SubComponent {
	maxPoints := s.Config.Position.DebtToIncomeMax

	weighted := 0.0
	for _, debt := range snapshot.Debts {
		weighted += debt.Balance.InexactFloat64() * s.Config.riskMultiplier(debt.Type)
	}
	if weighted <= 0 {
		return blend("Debt-to-Income", maxPoints, maxPoints, 1)
	}

	annualIncome := snapshot.MonthlyIncome.InexactFloat64() * 12
	if annualIncome <= 0 {
		// debt with no known income: heavily discounted, not a crash
		return blend("Debt-to-Income", 0, maxPoints, 0.3)
	}

	ratio := weighted / annualIncome
	earned := maxPoints * math.Exp(-ratio/0.35)
	return blend("Debt-to-Income", earned, maxPoints, 1)
}

func (s *Scorer) netWorthDirection(snapshot domain.FinancialSnapshot) domain.SubComponent {
	maxPoints := s.Config.Position.NetWorthMax
	if len(snapshot.Accounts) == 0 && len(snapshot.Debts) == 0 {
		return blend("Net Worth", 0, maxPoints, 0)
	}

	assets := decimal.Zero
	for _, account := range snapshot.Accounts {
		assets = assets.Add(account.Balance)
	}
	liabilities := decimal.Zero
	for _, debt := range snapshot.Debts {
		liabilities = liabilities.Add(debt.Balance)
	}
	netWorth := assets.Sub(liabilities).InexactFloat64()

	reference := snapshot.MonthlyIncome.InexactFloat64() * 12
	if reference <= 0 {
		reference = 50_000
	}

	// signed log curve: hits ~1 around one reference-year of net worth,
	// neutral 0.5 at zero
	magnitude := clamp01(math.Log1p(math.Abs(netWorth)/reference*9) / math.Log1p(9))
	direction := 0.5 + 0.5*math.Copysign(magnitude, netWorth)
	earned := maxPoints * clamp01(direction)
	return blend("Net Worth", earned, maxPoints, 1)
}
