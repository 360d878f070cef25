package amortization

import (
	"finhealth/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)

	// residualEpsilon absorbs division round-off at the tail of a schedule
	// so the final balance lands on exactly zero
	residualEpsilon = decimal.New(1, -6)
)

// monthlyRate converts a nominal APR like 6.5 into the periodic rate.
func monthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(twelve).Div(hundred)
}

// fixedPayment is the standard level payment P*r(1+r)^n / ((1+r)^n - 1),
// falling back to straight-line principal/n at zero rate.
func fixedPayment(principal, r decimal.Decimal, termMonths int) decimal.Decimal {
	if r.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(termMonths)))
	}
	growth := one.Add(r).Pow(decimal.NewFromInt(int64(termMonths)))
	return principal.Mul(r).Mul(growth).Div(growth.Sub(one))
}

// GenerateSchedule produces the theoretical month-by-month payoff schedule
// for a fixed-rate, fixed-term loan. Loans with a non-positive principal or
// term have no defined schedule and yield an empty slice. The schedule ends
// the moment the balance reaches zero, which can be before the final term
// month.
func GenerateSchedule(terms domain.LoanTerms) []domain.AmortizationPoint {
	if terms.OriginalBalance.LessThanOrEqual(decimal.Zero) || terms.TermMonths <= 0 {
		return []domain.AmortizationPoint{}
	}

	r := monthlyRate(terms.AnnualRatePercent)
	payment := fixedPayment(terms.OriginalBalance, r, terms.TermMonths)

	points := make([]domain.AmortizationPoint, 0, terms.TermMonths)
	balance := terms.OriginalBalance
	for month := 1; month <= terms.TermMonths; month++ {
		interest := balance.Mul(r)
		principalPortion := payment.Sub(interest)
		// cap the final payment so the balance can't go negative
		if principalPortion.GreaterThan(balance) {
			principalPortion = balance
		}
		balance = balance.Sub(principalPortion)
		if balance.LessThan(residualEpsilon) {
			balance = decimal.Zero
		}

		points = append(points, domain.AmortizationPoint{
			Month:            month,
			Payment:          principalPortion.Add(interest),
			PrincipalPortion: principalPortion,
			InterestPortion:  interest,
			BalanceAfter:     balance,
		})

		if balance.IsZero() {
			break
		}
	}

	return points
}

// ExpectedBalance answers "what should the balance be after monthNumber
// payments" in closed form, without walking the schedule:
//
//	B = P * ((1+r)^n - (1+r)^m) / ((1+r)^n - 1)
//
// Months before the loan starts return the full principal; months at or past
// the term return zero. Agrees with the iterative schedule within rounding
// tolerance.
func ExpectedBalance(terms domain.LoanTerms, monthNumber int) decimal.Decimal {
	if terms.OriginalBalance.LessThanOrEqual(decimal.Zero) || terms.TermMonths <= 0 {
		return decimal.Zero
	}
	if monthNumber <= 0 {
		return terms.OriginalBalance
	}
	if monthNumber >= terms.TermMonths {
		return decimal.Zero
	}

	r := monthlyRate(terms.AnnualRatePercent)
	if r.IsZero() {
		elapsed := decimal.NewFromInt(int64(monthNumber)).Div(decimal.NewFromInt(int64(terms.TermMonths)))
		return terms.OriginalBalance.Mul(one.Sub(elapsed))
	}

	growthN := one.Add(r).Pow(decimal.NewFromInt(int64(terms.TermMonths)))
	growthM := one.Add(r).Pow(decimal.NewFromInt(int64(monthNumber)))
	balance := terms.OriginalBalance.Mul(growthN.Sub(growthM)).Div(growthN.Sub(one))
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}
