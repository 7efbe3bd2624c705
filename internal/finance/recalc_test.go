package finance

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Attila01/DebtTracker/internal/schema"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedUpdate struct {
	table  string
	id     int64
	fields schema.Row
}

type fakeLedger struct {
	rows    map[string][]schema.Row
	scalar  func(query string, args ...any) (float64, error)
	updates []recordedUpdate
}

func (f *fakeLedger) FetchAll(table schema.Table) ([]schema.Row, error) {
	return f.rows[table.Name], nil
}

func (f *fakeLedger) UpdateByID(table schema.Table, id int64, fields schema.Row) error {
	f.updates = append(f.updates, recordedUpdate{table: table.Name, id: id, fields: fields})
	return nil
}

func (f *fakeLedger) Scalar(query string, args ...any) (float64, error) {
	if f.scalar == nil {
		return 0, nil
	}
	return f.scalar(query, args...)
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestRecomputeAccountBalances(t *testing.T) {
	ledger := &fakeLedger{
		rows: map[string][]schema.Row{
			"Accounts": {
				{"AccountID": int64(1), "AccountName": "Main Checking"},
				{"AccountID": int64(2), "AccountName": "Emergency Fund"},
			},
		},
		scalar: func(query string, args ...any) (float64, error) {
			id := args[0].(int64)
			if strings.Contains(query, "AllocatedTo") {
				if id == 1 {
					return 500, nil
				}
				return 200, nil
			}
			// payments against the account id
			if id == 1 {
				return 150.25, nil
			}
			return 0, nil
		},
	}

	calc := NewCalculator(ledger, testLogger())
	require.NoError(t, calc.RecomputeAccountBalances())

	require.Len(t, ledger.updates, 2)
	assert.Equal(t, "Accounts", ledger.updates[0].table)
	assert.Equal(t, int64(1), ledger.updates[0].id)
	assert.Equal(t, 349.75, ledger.updates[0].fields["Balance"])
	assert.Equal(t, int64(2), ledger.updates[1].id)
	assert.Equal(t, 200.0, ledger.updates[1].fields["Balance"])
}

func TestRecomputeAccountBalancesEmptyLedger(t *testing.T) {
	ledger := &fakeLedger{
		rows: map[string][]schema.Row{
			"Accounts": {{"AccountID": int64(7), "AccountName": "Fresh"}},
		},
	}

	calc := NewCalculator(ledger, testLogger())
	require.NoError(t, calc.RecomputeAccountBalances())

	// no revenue and no payments must still produce an explicit zero
	require.Len(t, ledger.updates, 1)
	assert.Equal(t, 0.0, ledger.updates[0].fields["Balance"])
}

func TestUpdateGoalProgress(t *testing.T) {
	ledger := &fakeLedger{
		rows: map[string][]schema.Row{
			"Goals": {
				{"GoalID": int64(1), "GoalName": "Clear card", "TargetAmount": 250.0},
				{"GoalID": int64(2), "GoalName": "Clear loan", "TargetAmount": 500.0},
			},
		},
		scalar: func(query string, args ...any) (float64, error) {
			return 300, nil
		},
	}

	calc := NewCalculator(ledger, testLogger())
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	require.NoError(t, calc.UpdateGoalProgress(now))

	require.Len(t, ledger.updates, 2)
	assert.Equal(t, 300.0, ledger.updates[0].fields["CurrentAmount"])
	assert.Equal(t, "Completed", ledger.updates[0].fields["Status"])
	assert.Equal(t, 300.0, ledger.updates[1].fields["CurrentAmount"])
	assert.Equal(t, "In Progress", ledger.updates[1].fields["Status"])
}

func TestUpdateGoalProgressNoGoals(t *testing.T) {
	scalarCalled := false
	ledger := &fakeLedger{
		rows: map[string][]schema.Row{"Goals": nil},
		scalar: func(query string, args ...any) (float64, error) {
			scalarCalled = true
			return 0, nil
		},
	}

	calc := NewCalculator(ledger, testLogger())
	require.NoError(t, calc.UpdateGoalProgress(time.Now()))
	assert.False(t, scalarCalled, "no goals means no aggregate query")
	assert.Empty(t, ledger.updates)
}
