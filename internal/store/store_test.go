package store

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/Attila01/DebtTracker/internal/apperr"
	"github.com/Attila01/DebtTracker/internal/database"
	"github.com/Attila01/DebtTracker/internal/schema"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return New(db, log.New(io.Discard))
}

func debtsTable(t *testing.T) schema.Table {
	t.Helper()
	table, ok := schema.Lookup("Debts")
	require.True(t, ok)
	return table
}

func TestTableExists(t *testing.T) {
	s := newTestStore(t)
	assert.True(t, s.TableExists("Debts"))
	assert.True(t, s.TableExists("Categories"))
	assert.False(t, s.TableExists("Nonsense"))
}

func TestInsertAndFetch(t *testing.T) {
	s := newTestStore(t)
	debts := debtsTable(t)

	id1, err := s.InsertOne(debts, schema.Row{
		"Creditor": "Card", "Amount": 120.5, "MinimumPayment": 25.0, "Status": "Open",
	})
	require.NoError(t, err)
	id2, err := s.InsertOne(debts, schema.Row{
		"Creditor": "Loan", "Amount": 900.0, "Status": "Current",
	})
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	rows, err := s.FetchAll(debts)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Card", rows[0].String("Creditor"))
	amount, ok := rows[0].Float64("Amount")
	require.True(t, ok)
	assert.Equal(t, 120.5, amount)
}

func TestFetchAllEmptyTable(t *testing.T) {
	s := newTestStore(t)
	rows, err := s.FetchAll(debtsTable(t))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReplaceAll(t *testing.T) {
	s := newTestStore(t)
	debts := debtsTable(t)

	_, err := s.InsertOne(debts, schema.Row{"Creditor": "Old", "Amount": 1.0})
	require.NoError(t, err)

	require.NoError(t, s.ReplaceAll(debts, []schema.Row{
		{"DebtID": int64(10), "Creditor": "New A", "Amount": 50.0},
		{"DebtID": int64(11), "Creditor": "New B", "Amount": 60.0},
	}))

	rows, err := s.FetchAll(debts)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	id, _ := rows[0].Int64("DebtID")
	assert.Equal(t, int64(10), id, "workbook-assigned ids survive the replace")
	assert.Equal(t, "New A", rows[0].String("Creditor"))

	// replacing with nothing empties the table
	require.NoError(t, s.ReplaceAll(debts, nil))
	rows, err = s.FetchAll(debts)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestUpdateByID(t *testing.T) {
	s := newTestStore(t)
	debts := debtsTable(t)

	id, err := s.InsertOne(debts, schema.Row{"Creditor": "Card", "Amount": 120.0})
	require.NoError(t, err)

	require.NoError(t, s.UpdateByID(debts, id, schema.Row{"Amount": 80.0, "Status": "Current"}))

	rows, err := s.FetchAll(debts)
	require.NoError(t, err)
	amount, _ := rows[0].Float64("Amount")
	assert.Equal(t, 80.0, amount)
	assert.Equal(t, "Current", rows[0].String("Status"))
}

func TestUpdateByIDNoFields(t *testing.T) {
	s := newTestStore(t)
	err := s.UpdateByID(debtsTable(t), 1, schema.Row{"NotAColumn": 1})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestDeleteWhere(t *testing.T) {
	s := newTestStore(t)
	debts := debtsTable(t)

	id, err := s.InsertOne(debts, schema.Row{"Creditor": "Card", "Amount": 120.0})
	require.NoError(t, err)
	require.NoError(t, s.DeleteWhere(debts, id))

	rows, err := s.FetchAll(debts)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestScalarCoalescesEmptyToZero(t *testing.T) {
	s := newTestStore(t)

	// SUM over no rows is NULL at the SQL level and must surface as 0
	v, err := s.Scalar("SELECT SUM(Amount) FROM Payments")
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	v, err = s.Scalar("SELECT COALESCE(SUM(Amount), 0) FROM Payments WHERE DebtID = ?", 99)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestScalarSums(t *testing.T) {
	s := newTestStore(t)
	payments, ok := schema.Lookup("Payments")
	require.True(t, ok)

	for _, amount := range []float64{10.5, 20.25} {
		_, err := s.InsertOne(payments, schema.Row{
			"DebtID": int64(1), "Amount": amount, "PaymentDate": "2026-01-15",
		})
		require.NoError(t, err)
	}

	v, err := s.Scalar("SELECT COALESCE(SUM(Amount), 0) FROM Payments WHERE DebtID = ?", 1)
	require.NoError(t, err)
	assert.Equal(t, 30.75, v)
}

func TestInsertIgnoresStrayColumns(t *testing.T) {
	s := newTestStore(t)
	debts := debtsTable(t)

	_, err := s.InsertOne(debts, schema.Row{
		"Creditor": "Card", "Amount": 10.0, "Stray": "ignored",
	})
	require.NoError(t, err)

	rows, err := s.FetchAll(debts)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	_, present := rows[0]["Stray"]
	assert.False(t, present)
}
