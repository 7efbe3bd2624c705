package schema

import (
	"fmt"
	"strconv"
	"time"
)

// Row is one record as a column-name to value mapping. Values hold what the
// sqlite driver returns: int64, float64, string or nil.
type Row map[string]any

// Int64 reads an integer column, tolerating the numeric types the driver and
// the workbook coercion may hand back. Missing or null yields 0, false.
func (r Row) Int64(col string) (int64, bool) {
	switch v := r[col].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	case uint:
		return int64(v), true
	}
	return 0, false
}

// Float64 reads a numeric column. Missing or null yields 0, false.
func (r Row) Float64(col string) (float64, bool) {
	switch v := r[col].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	}
	return 0, false
}

// String reads a text column; null yields "".
func (r Row) String(col string) string {
	if s, ok := r[col].(string); ok {
		return s
	}
	return ""
}

const dateLayout = "2006-01-02"

// ParseCell coerces a workbook cell (always a string) into the stored value
// for this field. Empty cells become nil for optional fields and an error for
// required ones; the caller treats that as a malformed sheet.
func (f Field) ParseCell(cell string) (any, error) {
	if cell == "" {
		if f.Required {
			return nil, fmt.Errorf("column %s: required value is empty", f.Name)
		}
		return nil, nil
	}
	switch f.Kind {
	case Integer:
		// numeric cells may render with a fractional part
		n, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("column %s: %q is not an integer", f.Name, cell)
		}
		return int64(n), nil
	case Decimal:
		n, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("column %s: %q is not a number", f.Name, cell)
		}
		return n, nil
	case Date:
		if _, err := time.Parse(dateLayout, cell); err != nil {
			return nil, fmt.Errorf("column %s: %q is not a YYYY-MM-DD date", f.Name, cell)
		}
		return cell, nil
	default:
		return cell, nil
	}
}
