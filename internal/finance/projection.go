package finance

import (
	"sort"
	"time"

	"github.com/Attila01/DebtTracker/internal/schema"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
)

// Horizons are the projection windows, in years.
var Horizons = []int{3, 5, 7, 10}

// Policy constants of the projection model. Deliberately not configurable.
var (
	savingsGrowthRate = decimal.NewFromFloat(1.05) // 5% yearly
	incomeSavedShare  = decimal.NewFromFloat(0.20) // 20% of income goes to savings
)

// ProjectionRow is one horizon's outcome.
type ProjectionRow struct {
	Year          int
	DebtRemaining decimal.Decimal
	Savings       decimal.Decimal
	NetWorth      decimal.Decimal
}

type openDebt struct {
	amount     decimal.Decimal
	minPayment decimal.Decimal
}

type Projector struct {
	ledger Ledger
	logger *log.Logger
}

func NewProjector(ledger Ledger, logger *log.Logger) *Projector {
	return &Projector{ledger: ledger, logger: logger}
}

// GenerateProjection runs the debt-snowball simulation and the net-worth
// extrapolation over the fixed horizons. Inputs: total open debt, liquid
// savings, trailing-12-month income, and the open debts ordered smallest
// balance first. Within each horizon every debt receives its minimum payment
// plus the pool freed by debts already retired; payments are capped at the
// debt's remaining amount.
func (p *Projector) GenerateProjection(now time.Time) ([]ProjectionRow, error) {
	totalSavings, err := p.ledger.Scalar(
		"SELECT COALESCE(SUM(Balance), 0) FROM Accounts WHERE Status IN ('Open', 'Current', 'Active')")
	if err != nil {
		return nil, err
	}
	annualIncome, err := p.ledger.Scalar(
		"SELECT COALESCE(SUM(Amount), 0) FROM Revenue WHERE DateReceived >= ?",
		now.AddDate(-1, 0, 0).Format(dateLayout))
	if err != nil {
		return nil, err
	}

	debts, err := p.openDebts()
	if err != nil {
		return nil, err
	}
	// the simulated total and the per-debt list come from the same filter so
	// a payment can never be subtracted from a total its debt is not part of
	totalDebt := decimal.Zero
	for _, d := range debts {
		totalDebt = totalDebt.Add(d.amount)
	}

	rows := make([]ProjectionRow, 0, len(Horizons))
	for _, years := range Horizons {
		remaining := simulateSnowball(totalDebt, debts, years*12)
		savings := projectSavings(
			decimal.NewFromFloat(totalSavings),
			decimal.NewFromFloat(annualIncome),
			years)
		rows = append(rows, ProjectionRow{
			Year:          years,
			DebtRemaining: remaining.Round(2),
			Savings:       savings.Round(2),
			NetWorth:      savings.Sub(remaining).Round(2),
		})
	}
	p.logger.Info("projection generated",
		"horizons", len(rows), "total_debt", totalDebt.InexactFloat64(), "total_savings", totalSavings)
	return rows, nil
}

// openDebts returns active debts ordered ascending by amount, the snowball
// payoff order.
func (p *Projector) openDebts() ([]openDebt, error) {
	table, _ := schema.Lookup("Debts")
	rows, err := p.ledger.FetchAll(table)
	if err != nil {
		return nil, err
	}
	debts := make([]openDebt, 0, len(rows))
	for _, row := range rows {
		status := row.String("Status")
		if status == "Paid Off" || status == "Closed" {
			continue
		}
		amount, _ := row.Float64("Amount")
		minPay, _ := row.Float64("MinimumPayment")
		debts = append(debts, openDebt{
			amount:     decimal.NewFromFloat(amount),
			minPayment: decimal.NewFromFloat(minPay),
		})
	}
	sort.SliceStable(debts, func(i, j int) bool {
		return debts[i].amount.LessThan(debts[j].amount)
	})
	return debts, nil
}

// simulateSnowball pays each debt its minimum plus the pool of minimums freed
// by smaller debts already retired within the horizon. The amount paid toward
// a debt is capped at that debt's balance.
func simulateSnowball(totalDebt decimal.Decimal, debts []openDebt, months int) decimal.Decimal {
	remaining := totalDebt
	pool := decimal.Zero
	m := decimal.NewFromInt(int64(months))
	for _, d := range debts {
		monthly := d.minPayment.Add(pool)
		payable := monthly.Mul(m)
		if payable.GreaterThanOrEqual(d.amount) {
			payable = d.amount
			// retired within the horizon: its minimum joins the pool for
			// every larger debt after it
			pool = pool.Add(d.minPayment)
		}
		remaining = remaining.Sub(payable)
	}
	return remaining
}

// projectSavings compounds current savings at the fixed growth rate and adds
// the fixed share of annual income per year.
func projectSavings(savings, annualIncome decimal.Decimal, years int) decimal.Decimal {
	y := decimal.NewFromInt(int64(years))
	grown := savings.Mul(savingsGrowthRate.Pow(y))
	contributed := annualIncome.Mul(incomeSavedShare).Mul(y)
	return grown.Add(contributed)
}
