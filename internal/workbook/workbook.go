// Package workbook reads and writes the spreadsheet replica. One sheet per
// registry table, row 1 is the header in registry column order, rows 2+ are
// data. Writes are refused while the workbook's host application holds it
// open; the presence check is advisory (a race between check and open is
// accepted), matching how desktop spreadsheet tools lock files.
package workbook

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Attila01/DebtTracker/internal/apperr"
	"github.com/Attila01/DebtTracker/internal/config"
	"github.com/Attila01/DebtTracker/internal/schema"

	"github.com/charmbracelet/log"
	"github.com/xuri/excelize/v2"
)

type Workbook struct {
	path   string
	logger *log.Logger
}

func New(cfg config.WorkbookConfig, logger *log.Logger) *Workbook {
	return &Workbook{path: cfg.Path, logger: logger}
}

func (w *Workbook) Path() string { return w.path }

// Exists reports whether the workbook file is present on disk.
func (w *Workbook) Exists() bool {
	_, err := os.Stat(w.path)
	return err == nil
}

// Busy reports whether the workbook is currently open for editing. Excel and
// compatible applications drop a "~$" owner file beside an open workbook; its
// presence is the mutual-exclusion signal.
func (w *Workbook) Busy() error {
	owner := filepath.Join(filepath.Dir(w.path), "~$"+filepath.Base(w.path))
	if _, err := os.Stat(owner); err == nil {
		w.logger.Warn("workbook is open in its host application", "owner_file", owner)
		return apperr.New(apperr.KindBusy, "the workbook is open in another program; close it and retry")
	}
	return nil
}

// ReadSheet returns all data rows of the table's sheet with cells coerced to
// stored values. The header row must match the registry column order exactly;
// a mismatch is a data-loss risk and aborts with a schema-mismatch error.
func (w *Workbook) ReadSheet(table schema.Table) ([]schema.Row, error) {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		w.logger.Error("open workbook failed", "path", w.path, "err", err)
		return nil, apperr.Wrap(apperr.KindDocument, "could not open the workbook", err)
	}
	defer w.close(f)

	raw, err := f.GetRows(table.Name)
	if err != nil {
		w.logger.Error("read sheet failed", "sheet", table.Name, "err", err)
		return nil, apperr.Wrap(apperr.KindDocument, "could not read sheet "+table.Name, err)
	}
	if err := checkHeader(table, raw); err != nil {
		w.logger.Error("sheet header mismatch", "sheet", table.Name, "err", err)
		return nil, err
	}

	cols := table.Columns()
	rows := make([]schema.Row, 0, len(raw))
	for i, cells := range raw[1:] {
		if blank(cells) {
			continue
		}
		row := make(schema.Row, len(cols))
		for c, col := range cols {
			cell := ""
			if c < len(cells) {
				cell = cells[c]
			}
			v, err := w.parseCell(table, col, cell)
			if err != nil {
				return nil, apperr.Wrap(apperr.KindDocument,
					fmt.Sprintf("sheet %s row %d is malformed", table.Name, i+2), err)
			}
			row[col] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReplaceSheet clears the sheet's data rows (the header stays) and writes the
// given rows in registry column order. Refused while the workbook is busy.
func (w *Workbook) ReplaceSheet(table schema.Table, rows []schema.Row) error {
	if err := w.Busy(); err != nil {
		return err
	}
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		w.logger.Error("open workbook failed", "path", w.path, "err", err)
		return apperr.Wrap(apperr.KindDocument, "could not open the workbook", err)
	}
	defer w.close(f)

	if idx, _ := f.GetSheetIndex(table.Name); idx < 0 {
		return apperr.New(apperr.KindDocument, "sheet "+table.Name+" is missing")
	}

	// clear bottom-up so row indices stay valid
	dims, err := f.GetRows(table.Name)
	if err != nil {
		return apperr.Wrap(apperr.KindDocument, "could not read sheet "+table.Name, err)
	}
	for r := len(dims); r >= 2; r-- {
		if err := f.RemoveRow(table.Name, r); err != nil {
			return apperr.Wrap(apperr.KindDocument, "could not clear sheet "+table.Name, err)
		}
	}

	cols := table.Columns()
	for i, row := range rows {
		cells := make([]any, len(cols))
		for c, col := range cols {
			cells[c] = row[col]
		}
		anchor, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(table.Name, anchor, &cells); err != nil {
			return apperr.Wrap(apperr.KindDocument, "could not write sheet "+table.Name, err)
		}
	}

	if err := f.Save(); err != nil {
		w.logger.Error("save workbook failed", "path", w.path, "err", err)
		return apperr.Wrap(apperr.KindDocument, "could not save the workbook", err)
	}
	return nil
}

// CreateTemplate idempotently ensures one sheet per registry table with a bold
// header row and fitted column widths. Sheets unrelated to the registry are
// removed, but only after every registry sheet exists so the document never
// passes through a zero-sheet state.
func (w *Workbook) CreateTemplate() error {
	if err := w.Busy(); err != nil {
		return err
	}

	var f *excelize.File
	if w.Exists() {
		var err error
		f, err = excelize.OpenFile(w.path)
		if err != nil {
			w.logger.Warn("existing workbook unreadable, recreating", "path", w.path, "err", err)
			f = excelize.NewFile()
		}
	} else {
		if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
			return apperr.Wrap(apperr.KindDocument, "could not create workbook directory", err)
		}
		f = excelize.NewFile()
	}
	defer w.close(f)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return apperr.Wrap(apperr.KindDocument, "could not prepare header style", err)
	}

	wanted := make(map[string]bool)
	for _, table := range schema.Tables() {
		wanted[table.Name] = true
		if idx, _ := f.GetSheetIndex(table.Name); idx < 0 {
			if _, err := f.NewSheet(table.Name); err != nil {
				return apperr.Wrap(apperr.KindDocument, "could not create sheet "+table.Name, err)
			}
		}

		cols := table.Columns()
		headers := make([]any, len(cols))
		for i, c := range cols {
			headers[i] = c
		}
		if err := f.SetSheetRow(table.Name, "A1", &headers); err != nil {
			return apperr.Wrap(apperr.KindDocument, "could not write header for "+table.Name, err)
		}
		hdrEnd, _ := excelize.CoordinatesToCellName(len(cols), 1)
		if err := f.SetCellStyle(table.Name, "A1", hdrEnd, bold); err != nil {
			return apperr.Wrap(apperr.KindDocument, "could not style header for "+table.Name, err)
		}
		for i, c := range cols {
			name, _ := excelize.ColumnNumberToName(i + 1)
			width := float64(len(c) + 2)
			if width < 15 {
				width = 15
			}
			if err := f.SetColWidth(table.Name, name, name, width); err != nil {
				return apperr.Wrap(apperr.KindDocument, "could not size columns for "+table.Name, err)
			}
		}
	}

	// prune foreign sheets, including the default "Sheet1" of a new file
	for _, name := range f.GetSheetList() {
		if !wanted[name] {
			if err := f.DeleteSheet(name); err != nil {
				w.logger.Warn("could not remove foreign sheet", "sheet", name, "err", err)
			}
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		w.logger.Error("save workbook failed", "path", w.path, "err", err)
		return apperr.Wrap(apperr.KindDocument, "could not save the workbook", err)
	}
	w.logger.Info("workbook template ensured", "path", w.path)
	return nil
}

// ValidateHeaders checks every registry sheet's header against the registry
// column order without reading data. Run before trusting sheet content.
func (w *Workbook) ValidateHeaders() error {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return apperr.Wrap(apperr.KindDocument, "could not open the workbook", err)
	}
	defer w.close(f)

	for _, table := range schema.Tables() {
		raw, err := f.GetRows(table.Name)
		if err != nil {
			return apperr.Wrap(apperr.KindDocument, "could not read sheet "+table.Name, err)
		}
		if err := checkHeader(table, raw); err != nil {
			w.logger.Error("sheet header mismatch", "sheet", table.Name, "err", err)
			return err
		}
	}
	return nil
}

func (w *Workbook) close(f *excelize.File) {
	if err := f.Close(); err != nil {
		w.logger.Warn("close workbook failed", "path", w.path, "err", err)
	}
}

// parseCell coerces one cell. The primary-key column is not in the field list
// and is always a positive integer.
func (w *Workbook) parseCell(table schema.Table, col, cell string) (any, error) {
	if col == table.PrimaryKey {
		if cell == "" {
			return nil, fmt.Errorf("column %s: primary key is empty", col)
		}
		n, err := strconv.ParseFloat(cell, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("column %s: %q is not a valid id", col, cell)
		}
		return int64(n), nil
	}
	field, ok := table.FieldByName(col)
	if !ok {
		return nil, fmt.Errorf("column %s is not part of table %s", col, table.Name)
	}
	return field.ParseCell(cell)
}

func checkHeader(table schema.Table, raw [][]string) error {
	cols := table.Columns()
	if len(raw) == 0 {
		return apperr.New(apperr.KindSchemaMismatch,
			"sheet "+table.Name+" has no header row")
	}
	header := raw[0]
	if len(header) < len(cols) {
		return apperr.New(apperr.KindSchemaMismatch,
			fmt.Sprintf("sheet %s header has %d columns, want %d", table.Name, len(header), len(cols)))
	}
	for i, col := range cols {
		if header[i] != col {
			return apperr.New(apperr.KindSchemaMismatch,
				fmt.Sprintf("sheet %s column %d is %q, want %q", table.Name, i+1, header[i], col))
		}
	}
	// a named column past the registry width means the sheet layout diverged;
	// trailing empty cells are just spreadsheet padding
	for i := len(cols); i < len(header); i++ {
		if header[i] != "" {
			return apperr.New(apperr.KindSchemaMismatch,
				fmt.Sprintf("sheet %s has unexpected extra column %q", table.Name, header[i]))
		}
	}
	return nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
