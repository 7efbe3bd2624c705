// Package finance recomputes derived fields and runs the payoff projection.
// Monetary arithmetic uses shopspring decimals; results are rounded to cents
// before they are written back.
package finance

import (
	"time"

	"github.com/Attila01/DebtTracker/internal/schema"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Ledger is the store surface the calculators need.
type Ledger interface {
	FetchAll(table schema.Table) ([]schema.Row, error)
	UpdateByID(table schema.Table, id int64, fields schema.Row) error
	Scalar(query string, args ...any) (float64, error)
}

type Calculator struct {
	ledger Ledger
	logger *log.Logger
}

func NewCalculator(ledger Ledger, logger *log.Logger) *Calculator {
	return &Calculator{ledger: ledger, logger: logger}
}

// RecomputeAccountBalances sets every account's balance to the revenue
// allocated to it minus the payments recorded against its id. Always a full
// recompute across all accounts: correctness under arbitrary edit order beats
// incremental bookkeeping at this data volume.
func (c *Calculator) RecomputeAccountBalances() error {
	accounts, _ := schema.Lookup("Accounts")
	rows, err := c.ledger.FetchAll(accounts)
	if err != nil {
		return err
	}
	for _, row := range rows {
		id, ok := row.Int64("AccountID")
		if !ok {
			continue
		}
		deposits, err := c.ledger.Scalar(
			"SELECT COALESCE(SUM(Amount), 0) FROM Revenue WHERE AllocatedTo = ? AND AllocationType = 'Account'", id)
		if err != nil {
			return err
		}
		withdrawals, err := c.ledger.Scalar(
			"SELECT COALESCE(SUM(Amount), 0) FROM Payments WHERE DebtID = ?", id)
		if err != nil {
			return err
		}
		balance := decimal.NewFromFloat(deposits).
			Sub(decimal.NewFromFloat(withdrawals)).
			Round(2)
		err = c.ledger.UpdateByID(accounts, id, schema.Row{
			"Balance": balance.InexactFloat64(),
		})
		if err != nil {
			return err
		}
		c.logger.Debug("account balance recomputed", "account_id", id, "balance", balance)
	}
	return nil
}

// UpdateGoalProgress sets every goal's current amount to the sum of debt
// payments dated up to now and derives its status. A goal left at 'Planned'
// does not survive this: the recompute only distinguishes Completed from
// In Progress, matching the behavior users already rely on.
func (c *Calculator) UpdateGoalProgress(now time.Time) error {
	goals, _ := schema.Lookup("Goals")
	rows, err := c.ledger.FetchAll(goals)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	progress, err := c.ledger.Scalar(
		"SELECT COALESCE(SUM(Amount), 0) FROM Payments WHERE Category = 'Debt Payment' AND PaymentDate <= ?",
		now.Format(dateLayout))
	if err != nil {
		return err
	}
	current := decimal.NewFromFloat(progress).Round(2)
	for _, row := range rows {
		id, ok := row.Int64("GoalID")
		if !ok {
			continue
		}
		target, _ := row.Float64("TargetAmount")
		status := "In Progress"
		if current.GreaterThanOrEqual(decimal.NewFromFloat(target)) {
			status = "Completed"
		}
		err = c.ledger.UpdateByID(goals, id, schema.Row{
			"CurrentAmount": current.InexactFloat64(),
			"Status":        status,
		})
		if err != nil {
			return err
		}
		c.logger.Debug("goal progress updated", "goal_id", id, "current", current, "status", status)
	}
	return nil
}
