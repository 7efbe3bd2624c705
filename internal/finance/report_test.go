package finance

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteProjectionReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	now := time.Date(2026, 8, 25, 14, 30, 5, 0, time.UTC)
	rows := []ProjectionRow{
		{Year: 3, DebtRemaining: dec("0"), Savings: dec("7200"), NetWorth: dec("7200")},
		{Year: 5, DebtRemaining: dec("0"), Savings: dec("12000"), NetWorth: dec("12000")},
	}

	path, err := WriteProjectionReport(dir, rows, now)
	require.NoError(t, err)
	assert.Equal(t, "FinancialProjection_20260825_143005.csv", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Year,DebtRemaining,Savings,NetWorth", lines[0])
	assert.Equal(t, "3,0.00,7200.00,7200.00", lines[1])
	assert.Equal(t, "5,0.00,12000.00,12000.00", lines[2])
}
