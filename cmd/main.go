package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"finhealth/internal/amortization"
	"finhealth/internal/domain"
	"finhealth/internal/scorer"
	"finhealth/internal/util"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "finhealth",
		Short:         "financial health scoring and amortization analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(scoreCmd(), scheduleCmd(), debtHealthCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func scoreCmd() *cobra.Command {
	var (
		snapshotPath     string
		transactionsPath string
		configPath       string
		asOfStr          string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "compute a financial health score from a snapshot file",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := scorer.DefaultConfig()
			if configPath != "" {
				loaded, err := scorer.LoadConfig(configPath)
				if err != nil {
					return err
				}
				config = *loaded
			}

			contents, err := os.ReadFile(snapshotPath)
			if err != nil {
				return fmt.Errorf("failed to read snapshot: %w", err)
			}
			snapshot := domain.FinancialSnapshot{}
			if err := json.Unmarshal(contents, &snapshot); err != nil {
				return fmt.Errorf("failed to parse snapshot: %w", err)
			}

			if transactionsPath != "" {
				transactions, err := loadTransactionsCsv(transactionsPath)
				if err != nil {
					return err
				}
				snapshot.Transactions = append(snapshot.Transactions, transactions...)
			}

			if asOfStr != "" {
				asOf, err := time.Parse("2006-01-02", asOfStr)
				if err != nil {
					return fmt.Errorf("failed to parse --as-of: %w", err)
				}
				snapshot.AsOf = asOf
			}
			if snapshot.AsOf.IsZero() {
				now := time.Now().UTC()
				snapshot.AsOf = util.NewDate(now.Year(), int(now.Month()), now.Day())
			}

			result, err := scorer.NewScorer(config).CalculateScore(snapshot)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "path to a FinancialSnapshot json file")
	cmd.Flags().StringVar(&transactionsPath, "transactions", "", "optional csv of transactions to merge into the snapshot")
	cmd.Flags().StringVar(&configPath, "config", "", "optional scoring config yaml (defaults to the built-in v2 table)")
	cmd.Flags().StringVar(&asOfStr, "as-of", "", "score as of this date (YYYY-MM-DD)")
	mustMarkRequired(cmd, "snapshot")
	return cmd
}

func scheduleCmd() *cobra.Command {
	var (
		principal float64
		apr       float64
		term      int
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "print the theoretical amortization schedule for a loan",
		RunE: func(cmd *cobra.Command, args []string) error {
			points := amortization.GenerateSchedule(domain.LoanTerms{
				OriginalBalance:   decimal.NewFromFloat(principal),
				AnnualRatePercent: decimal.NewFromFloat(apr),
				TermMonths:        term,
			})
			if len(points) == 0 {
				fmt.Println("no schedule: loan needs a positive principal and term")
				return nil
			}

			fmt.Printf("%5s %12s %12s %12s %14s\n", "month", "payment", "principal", "interest", "balance")
			for _, point := range points {
				fmt.Printf("%5d %12s %12s %12s %14s\n",
					point.Month,
					point.Payment.StringFixed(2),
					point.PrincipalPortion.StringFixed(2),
					point.InterestPortion.StringFixed(2),
					point.BalanceAfter.StringFixed(2),
				)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&principal, "principal", 0, "original loan balance")
	cmd.Flags().Float64Var(&apr, "apr", 0, "nominal annual rate in percent, e.g. 6.5")
	cmd.Flags().IntVar(&term, "term", 0, "term in months")
	mustMarkRequired(cmd, "principal", "term")
	return cmd
}

func debtHealthCmd() *cobra.Command {
	var (
		original   float64
		current    float64
		apr        float64
		term       int
		originated string
	)

	cmd := &cobra.Command{
		Use:   "debt-health",
		Short: "report whether a debt is ahead of or behind its schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			originationDate, err := time.Parse("2006-01-02", originated)
			if err != nil {
				return fmt.Errorf("failed to parse --originated: %w", err)
			}

			health := amortization.Health(domain.DebtSnapshot{
				OriginalBalance:   decimal.NewFromFloat(original),
				CurrentBalance:    decimal.NewFromFloat(current),
				AnnualRatePercent: decimal.NewFromFloat(apr),
				TermMonths:        term,
				OriginationDate:   &originationDate,
			}, time.Now().UTC())
			if health == nil {
				fmt.Println("no verdict: debt has insufficient data for amortization tracking")
				return nil
			}
			return printJSON(health)
		},
	}

	cmd.Flags().Float64Var(&original, "original", 0, "balance at origination")
	cmd.Flags().Float64Var(&current, "current", 0, "balance today")
	cmd.Flags().Float64Var(&apr, "apr", 0, "nominal annual rate in percent")
	cmd.Flags().IntVar(&term, "term", 0, "term in months")
	cmd.Flags().StringVar(&originated, "originated", "", "origination date (YYYY-MM-DD)")
	mustMarkRequired(cmd, "original", "term", "originated")
	return cmd
}

// mustMarkRequired panics on a mistyped flag name, which would otherwise
// silently leave a required flag optional.
func mustMarkRequired(cmd *cobra.Command, flags ...string) {
	for _, flag := range flags {
		if err := cmd.MarkFlagRequired(flag); err != nil {
			panic(err)
		}
	}
}

// csvDate parses bare YYYY-MM-DD cells.
type csvDate struct {
	time.Time
}

func (d *csvDate) UnmarshalCSV(value string) error {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return err
	}
	d.Time = parsed
	return nil
}

type transactionRow struct {
	Date     csvDate         `csv:"date"`
	Amount   decimal.Decimal `csv:"amount"`
	Category string          `csv:"category"`
	Cleared  bool            `csv:"cleared"`
}

func loadTransactionsCsv(path string) ([]domain.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transactions csv: %w", err)
	}
	defer f.Close()

	rows := []transactionRow{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse transactions csv: %w", err)
	}

	transactions := make([]domain.Transaction, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, domain.Transaction{
			Amount:   row.Amount,
			Date:     row.Date.Time,
			Category: row.Category,
			Cleared:  row.Cleared,
		})
	}
	return transactions, nil
}

func printJSON(i interface{}) error {
	bytes, err := json.MarshalIndent(i, "", "    ")
	if err != nil {
		return err
	}
	fmt.Println(string(bytes))
	return nil
}
