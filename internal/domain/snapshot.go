package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCash       AccountType = "cash"
	AccountInvestment AccountType = "investment"
	AccountCredit     AccountType = "credit"
)

// IsLiquid reports whether the account counts toward emergency-fund
// coverage.
func (t AccountType) IsLiquid() bool {
	return t == AccountChecking || t == AccountSavings || t == AccountCash
}

type DebtType string

const (
	DebtCreditCard   DebtType = "credit_card"
	DebtPersonalLoan DebtType = "personal_loan"
	DebtAutoLoan     DebtType = "auto_loan"
	DebtStudentLoan  DebtType = "student_loan"
	DebtMortgage     DebtType = "mortgage"
)

type Account struct {
	Name    string          `json:"name"`
	Type    AccountType     `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}

type Budget struct {
	Category string          `json:"category"`
	Budgeted decimal.Decimal `json:"budgeted"`
	Spent    decimal.Decimal `json:"spent"`
}

// Transaction amounts are signed: inflows positive, spending negative.
type Transaction struct {
	Amount   decimal.Decimal `json:"amount"`
	Date     time.Time       `json:"date"`
	Category string          `json:"category"`
	Cleared  bool            `json:"cleared"`
}

type DebtPayment struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

type Debt struct {
	Name              string          `json:"name"`
	Type              DebtType        `json:"type"`
	Balance           decimal.Decimal `json:"balance"`
	AnnualRatePercent decimal.Decimal `json:"annualRatePercent"`
	Payments          []DebtPayment   `json:"payments"`
}

// FinancialSnapshot is a fully materialized, point-in-time aggregation of a
// user's finances, assembled by the data-access layer. The scorer never
// queries storage itself; everything it needs is here, and AsOf is the only
// clock it sees.
type FinancialSnapshot struct {
	UserID        uuid.UUID       `json:"userId"`
	AsOf          time.Time       `json:"asOf"`
	MonthlyIncome decimal.Decimal `json:"monthlyIncome"`
	Accounts      []Account       `json:"accounts"`
	Budgets       []Budget        `json:"budgets"`
	Transactions  []Transaction   `json:"transactions"`
	Debts         []Debt          `json:"debts"`
	SavingsGoals  []SavingsGoal   `json:"savingsGoals"`
}

type SavingsGoal struct {
	Name                string          `json:"name"`
	Target              decimal.Decimal `json:"target"`
	Current             decimal.Decimal `json:"current"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution"`
}
