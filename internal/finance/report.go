package finance

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// WriteProjectionReport exports projection rows as a timestamped CSV in dir
// and returns the file path. One artifact per generation; a write failure is
// surfaced, not retried.
func WriteProjectionReport(dir string, rows []ProjectionRow, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir,
		fmt.Sprintf("FinancialProjection_%s.csv", now.Format("20060102_150405")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Year", "DebtRemaining", "Savings", "NetWorth"}); err != nil {
		return "", fmt.Errorf("write report header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.Year),
			r.DebtRemaining.StringFixed(2),
			r.Savings.StringFixed(2),
			r.NetWorth.StringFixed(2),
		}
		if err := w.Write(rec); err != nil {
			return "", fmt.Errorf("write report row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush report: %w", err)
	}
	return path, nil
}
