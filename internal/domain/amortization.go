package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanTerms describes a fixed-rate, fixed-term installment loan at
// origination.
type LoanTerms struct {
	OriginalBalance   decimal.Decimal `json:"originalBalance"`
	AnnualRatePercent decimal.Decimal `json:"annualRatePercent"`
	TermMonths        int             `json:"termMonths"`
}

// AmortizationPoint is one month of the theoretical payoff schedule.
type AmortizationPoint struct {
	Month            int             `json:"month"`
	Payment          decimal.Decimal `json:"payment"`
	PrincipalPortion decimal.Decimal `json:"principalPortion"`
	InterestPortion  decimal.Decimal `json:"interestPortion"`
	BalanceAfter     decimal.Decimal `json:"balanceAfter"`
}

// DebtSnapshot is the state of a single installment debt as read from the
// data layer. OriginationDate is nil when the user never supplied one.
type DebtSnapshot struct {
	OriginalBalance   decimal.Decimal `json:"originalBalance"`
	CurrentBalance    decimal.Decimal `json:"currentBalance"`
	AnnualRatePercent decimal.Decimal `json:"annualRatePercent"`
	TermMonths        int             `json:"termMonths"`
	OriginationDate   *time.Time      `json:"originationDate"`
}

// Terms extracts the origination-time loan terms from a snapshot.
func (d DebtSnapshot) Terms() LoanTerms {
	return LoanTerms{
		OriginalBalance:   d.OriginalBalance,
		AnnualRatePercent: d.AnnualRatePercent,
		TermMonths:        d.TermMonths,
	}
}

type ScheduleStatus string

const (
	ScheduleAhead   ScheduleStatus = "ahead"
	ScheduleOnTrack ScheduleStatus = "on_track"
	ScheduleBehind  ScheduleStatus = "behind"
)

// AmortizationHealth is the ahead/behind-schedule verdict for one debt.
// Positive Difference means the actual balance is lower than the schedule
// expects, i.e. the borrower is ahead.
type AmortizationHealth struct {
	MonthsElapsed       int             `json:"monthsElapsed"`
	ExpectedBalance     decimal.Decimal `json:"expectedBalance"`
	ActualBalance       decimal.Decimal `json:"actualBalance"`
	Difference          decimal.Decimal `json:"difference"`
	MonthsAheadOrBehind int             `json:"monthsAheadOrBehind"`
	Status              ScheduleStatus  `json:"status"`
	PercentAhead        float64         `json:"percentAhead"`
	ExpectedPayoffDate  time.Time       `json:"expectedPayoffDate"`
	ProjectedPayoffDate *time.Time      `json:"projectedPayoffDate"`
}
