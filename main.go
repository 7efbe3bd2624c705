package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Attila01/DebtTracker/internal/backup"
	"github.com/Attila01/DebtTracker/internal/config"
	"github.com/Attila01/DebtTracker/internal/database"
	"github.com/Attila01/DebtTracker/internal/finance"
	"github.com/Attila01/DebtTracker/internal/schema"
	"github.com/Attila01/DebtTracker/internal/store"
	"github.com/Attila01/DebtTracker/internal/syncer"
	"github.com/Attila01/DebtTracker/internal/tracker"
	"github.com/Attila01/DebtTracker/internal/workbook"

	"github.com/charmbracelet/log"
)

const usage = `debttracker <command> [args]

commands:
  template                     create or repair the workbook template
  sync to-workbook             push the store into the workbook
  sync from-workbook           pull the workbook into the store
  list <table>                 print every record of a table
  add <table> Col=val ...      insert a record
  update <table> <id> Col=val  update fields of a record
  delete <table> <id>          delete a record
  recalc                       recompute account balances
  goals                        recompute goal progress
  project                      run the payoff projection and write the report
  backup                       snapshot the database file
`

func main() {
	cfgPath := flag.String("config", "", "path to config file (default config.yaml)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}

	logger, closeLog := newLogger(cfg.Log)

	db, err := database.Init(cfg.Database)
	if err != nil {
		// without the store nothing below can work
		logger.Fatal("database unreachable", "path", cfg.Database.Path, "err", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("migration failed", "err", err)
	}
	if err := database.SeedCategories(db); err != nil {
		logger.Fatal("category seeding failed", "err", err)
	}

	st := store.New(db, logger)
	wb := workbook.New(cfg.Workbook, logger)
	if !wb.Exists() {
		// first run: a sync against a missing template is refused, so the
		// template is created up front
		if err := wb.CreateTemplate(); err != nil {
			logger.Warn("could not create workbook template", "err", err)
		}
	}
	bk := backup.New(cfg.Backup, cfg.Database.Path, logger)
	sync := syncer.New(st, wb, bk, logger)
	calc := finance.NewCalculator(st, logger)
	proj := finance.NewProjector(st, logger)
	app := tracker.New(st, sync, calc, proj, cfg.Report.Dir, logger)

	code := run(app, wb, bk, flag.Args())
	closeLog()
	os.Exit(code)
}

func run(app *tracker.Tracker, wb *workbook.Workbook, bk *backup.Manager, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	switch args[0] {
	case "template":
		if err := wb.CreateTemplate(); err != nil {
			fmt.Fprintln(os.Stderr, "template:", err)
			return 1
		}
		fmt.Println("workbook template ready at", wb.Path())
		return 0

	case "sync":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "usage: sync to-workbook|from-workbook")
			return 2
		}
		var dir syncer.Direction
		switch args[1] {
		case "to-workbook":
			dir = syncer.StoreToDocument
		case "from-workbook":
			dir = syncer.DocumentToStore
		default:
			fmt.Fprintln(os.Stderr, "usage: sync to-workbook|from-workbook")
			return 2
		}
		return report(app.Sync(dir))

	case "list":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "usage: list <table>")
			return 2
		}
		rows, res := app.List(args[1])
		if !res.OK {
			fmt.Fprintln(os.Stderr, res.Message)
			return 1
		}
		printRows(args[1], rows)
		return 0

	case "add":
		if len(args) < 3 {
			fmt.Fprintln(os.Stderr, "usage: add <table> Col=val ...")
			return 2
		}
		fields, err := parseFields(args[1], args[2:])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		return report(app.Create(args[1], fields))

	case "update":
		if len(args) < 4 {
			fmt.Fprintln(os.Stderr, "usage: update <table> <id> Col=val ...")
			return 2
		}
		id, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			fmt.Fprintln(os.Stderr, "invalid id:", args[2])
			return 2
		}
		fields, err := parseFields(args[1], args[3:])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		return report(app.Update(args[1], id, fields))

	case "delete":
		if len(args) != 3 {
			fmt.Fprintln(os.Stderr, "usage: delete <table> <id>")
			return 2
		}
		id, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			fmt.Fprintln(os.Stderr, "invalid id:", args[2])
			return 2
		}
		return report(app.Delete(args[1], id))

	case "recalc":
		return report(app.RecomputeAccountBalances())

	case "goals":
		return report(app.UpdateGoalProgress())

	case "project":
		rows, res := app.GenerateProjection()
		for _, r := range rows {
			fmt.Printf("%2d years  debt %12s  savings %12s  net worth %12s\n",
				r.Year, r.DebtRemaining.StringFixed(2),
				r.Savings.StringFixed(2), r.NetWorth.StringFixed(2))
		}
		return report(res)

	case "backup":
		path, err := bk.Snapshot("manual")
		if err != nil {
			fmt.Fprintln(os.Stderr, "backup:", err)
			return 1
		}
		fmt.Println("backup written to", path)
		return 0

	default:
		fmt.Fprint(os.Stderr, usage)
		return 2
	}
}

func report(res tracker.Result) int {
	if !res.OK {
		fmt.Fprintln(os.Stderr, res.Message)
		return 1
	}
	fmt.Println(res.Message)
	return 0
}

// parseFields turns Col=val arguments into a typed row using the same cell
// parsing rules the workbook import applies.
func parseFields(tableName string, args []string) (schema.Row, error) {
	table, ok := schema.Lookup(tableName)
	if !ok {
		return nil, fmt.Errorf("unknown table %s", tableName)
	}
	row := schema.Row{}
	for _, a := range args {
		name, raw, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("expected Col=val, got %q", a)
		}
		field, ok := table.FieldByName(name)
		if !ok {
			return nil, fmt.Errorf("%s has no column %s", table.Name, name)
		}
		v, err := field.ParseCell(raw)
		if err != nil {
			return nil, err
		}
		row[name] = v
	}
	return row, nil
}

func printRows(tableName string, rows []schema.Row) {
	table, ok := schema.Lookup(tableName)
	if !ok {
		return
	}
	cols := table.Columns()
	fmt.Println(strings.Join(cols, "\t"))
	for _, row := range rows {
		cells := make([]string, len(cols))
		for i, col := range cols {
			cells[i] = formatCell(row[col])
		}
		fmt.Println(strings.Join(cells, "\t"))
	}
	fmt.Printf("%d records\n", len(rows))
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprint(x)
	}
}

// newLogger writes structured logs to the configured file and mirrors
// warnings and errors to stderr.
func newLogger(cfg config.LogConfig) (*log.Logger, func()) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err == nil {
			if f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				w = io.MultiWriter(f, os.Stderr)
				closer = func() { f.Close() }
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	return logger, closer
}
