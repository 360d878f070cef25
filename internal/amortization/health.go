package amortization

import (
	"math"
	"time"

	"finhealth/internal/domain"
	"finhealth/internal/util"

	"github.com/shopspring/decimal"
)

// onTrackBandPercent is how far (in percent of the expected balance) the
// actual balance can drift either way and still count as on track.
const onTrackBandPercent = 2.0

// balanceMatchTolerance is the currency-unit window the month search treats
// as an exact balance match.
var balanceMatchTolerance = decimal.NewFromFloat(0.01)

// Health computes the ahead/behind-schedule verdict for one debt as of a
// caller-supplied time. It never reads a clock of its own.
//
// A nil result means the debt doesn't carry enough data for amortization
// tracking: no origination date, a non-positive original balance or term, or
// an origination date that hasn't arrived yet. Callers should treat nil as a
// normal outcome, not a failure.
func Health(debt domain.DebtSnapshot, now time.Time) *domain.AmortizationHealth {
	if debt.OriginationDate == nil || debt.TermMonths <= 0 ||
		debt.OriginalBalance.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	monthsElapsed := util.WholeMonthsBetween(*debt.OriginationDate, now)
	if monthsElapsed < 0 {
		return nil
	}

	terms := debt.Terms()
	expected := ExpectedBalance(terms, monthsElapsed)
	actual := debt.CurrentBalance
	difference := expected.Sub(actual)

	// where on the theoretical schedule does the actual balance sit
	matchedMonth := searchClosestMonth(func(month int) decimal.Decimal {
		return ExpectedBalance(terms, month)
	}, actual, debt.TermMonths, balanceMatchTolerance)
	monthsAheadOrBehind := matchedMonth - monthsElapsed

	var (
		percentAhead float64
		status       domain.ScheduleStatus
	)
	if expected.IsZero() {
		// the schedule says this loan should already be paid off
		if actual.GreaterThan(decimal.Zero) {
			status = domain.ScheduleBehind
		} else {
			status = domain.ScheduleOnTrack
		}
	} else {
		percentAhead = difference.Div(expected).InexactFloat64() * 100
		switch {
		case math.Abs(percentAhead) <= onTrackBandPercent:
			status = domain.ScheduleOnTrack
		case difference.GreaterThan(decimal.Zero):
			status = domain.ScheduleAhead
		default:
			status = domain.ScheduleBehind
		}
	}

	expectedPayoff := debt.OriginationDate.AddDate(0, debt.TermMonths, 0)
	var projectedPayoff *time.Time
	if !expected.IsZero() || actual.LessThanOrEqual(decimal.Zero) {
		p := expectedPayoff.AddDate(0, -monthsAheadOrBehind, 0)
		projectedPayoff = &p
	}

	return &domain.AmortizationHealth{
		MonthsElapsed:       monthsElapsed,
		ExpectedBalance:     expected,
		ActualBalance:       actual,
		Difference:          difference,
		MonthsAheadOrBehind: monthsAheadOrBehind,
		Status:              status,
		PercentAhead:        percentAhead,
		ExpectedPayoffDate:  expectedPayoff,
		ProjectedPayoffDate: projectedPayoff,
	}
}
