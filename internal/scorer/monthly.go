package scorer

import (
	"time"

	"finhealth/internal/domain"
	"finhealth/internal/util"

	"github.com/shopspring/decimal"
)

// trailingWindowMonths is how far back the scorer looks when it needs
// history: cashflow trend, paydown velocity, logging consistency.
const trailingWindowMonths = 6

// monthlyFlow aggregates one calendar month of transactions. Spending is
// stored positive.
type monthlyFlow struct {
	Key          string
	Inflow       decimal.Decimal
	Spending     decimal.Decimal
	Transactions int
	Cleared      int
}

func (m monthlyFlow) net() float64 {
	return m.Inflow.Sub(m.Spending).InexactFloat64()
}

// monthlyFlows buckets transactions into the trailing `window` calendar
// months ending at asOf, oldest first. Months with no activity still appear
// zeroed, so callers can tell "no data" apart from "no spending". Ordering
// comes from walking month offsets, not map iteration, so the result is
// deterministic.
func monthlyFlows(transactions []domain.Transaction, asOf time.Time, window int) []monthlyFlow {
	// anchor at the first of the as-of month: stepping back from a day-31
	// date would normalize "Feb 31" into March and lose short months
	anchor := util.MonthStart(asOf)

	buckets := map[string]*monthlyFlow{}
	flows := make([]monthlyFlow, 0, window)
	for offset := window - 1; offset >= 0; offset-- {
		key := util.MonthKey(anchor.AddDate(0, -offset, 0))
		buckets[key] = &monthlyFlow{Key: key}
	}

	for _, transaction := range transactions {
		if transaction.Date.After(asOf) {
			continue
		}
		bucket, ok := buckets[util.MonthKey(transaction.Date)]
		if !ok {
			continue
		}
		bucket.Transactions++
		if transaction.Cleared {
			bucket.Cleared++
		}
		if transaction.Amount.IsNegative() {
			bucket.Spending = bucket.Spending.Add(transaction.Amount.Neg())
		} else {
			bucket.Inflow = bucket.Inflow.Add(transaction.Amount)
		}
	}

	for offset := window - 1; offset >= 0; offset-- {
		key := util.MonthKey(anchor.AddDate(0, -offset, 0))
		flows = append(flows, *buckets[key])
	}
	return flows
}

// activeMonths counts months that saw at least one transaction.
func activeMonths(flows []monthlyFlow) int {
	active := 0
	for _, flow := range flows {
		if flow.Transactions > 0 {
			active++
		}
	}
	return active
}

// averageSpending is the mean monthly outflow across active months.
func averageSpending(flows []monthlyFlow) float64 {
	total := decimal.Zero
	active := 0
	for _, flow := range flows {
		if flow.Transactions > 0 {
			total = total.Add(flow.Spending)
			active++
		}
	}
	if active == 0 {
		return 0
	}
	return total.InexactFloat64() / float64(active)
}
