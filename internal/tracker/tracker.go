// Package tracker is the command surface the UI shell calls. Every operation
// returns a Result with a user-facing message; failures are logged with full
// detail here and never propagate as panics or raw driver errors.
package tracker

import (
	"fmt"
	"time"

	"github.com/Attila01/DebtTracker/internal/apperr"
	"github.com/Attila01/DebtTracker/internal/finance"
	"github.com/Attila01/DebtTracker/internal/schema"
	"github.com/Attila01/DebtTracker/internal/syncer"

	"github.com/charmbracelet/log"
)

// Result is what the UI layer renders: a success flag plus a human-readable
// message (the failure summary, or a short confirmation).
type Result struct {
	OK      bool
	Message string
}

// Store is the adapter surface the tracker drives for CRUD.
type Store interface {
	TableExists(name string) bool
	FetchAll(table schema.Table) ([]schema.Row, error)
	InsertOne(table schema.Table, fields schema.Row) (int64, error)
	UpdateByID(table schema.Table, id int64, fields schema.Row) error
	DeleteWhere(table schema.Table, id int64) error
}

// Recalculator recomputes derived fields after accepted mutations.
type Recalculator interface {
	RecomputeAccountBalances() error
	UpdateGoalProgress(now time.Time) error
}

// Projection runs the snowball/net-worth simulation.
type Projection interface {
	GenerateProjection(now time.Time) ([]finance.ProjectionRow, error)
}

// Synchronizer replaces one replica with the other.
type Synchronizer interface {
	Sync(direction syncer.Direction) error
}

type Tracker struct {
	store     Store
	sync      Synchronizer
	recalc    Recalculator
	projector Projection
	reportDir string
	logger    *log.Logger
}

func New(store Store, sync Synchronizer, recalc Recalculator, projector Projection,
	reportDir string, logger *log.Logger) *Tracker {
	return &Tracker{
		store:     store,
		sync:      sync,
		recalc:    recalc,
		projector: projector,
		reportDir: reportDir,
		logger:    logger,
	}
}

// Create validates the fields against the registry descriptors and inserts a
// new record. Validation failures are caught before any store mutation.
func (t *Tracker) Create(tableName string, fields schema.Row) (res Result) {
	defer t.guard("create", &res)
	table, ok := schema.Lookup(tableName)
	if !ok {
		return t.fail(apperr.New(apperr.KindValidation, "unknown table "+tableName))
	}
	if err := validateRow(table, fields, true); err != nil {
		return t.fail(err)
	}
	id, err := t.store.InsertOne(table, fields)
	if err != nil {
		return t.fail(err)
	}
	t.afterMutation(table)
	return Result{OK: true, Message: fmt.Sprintf("added record %d to %s", id, table.Name)}
}

// Update validates and applies a grid edit to one record.
func (t *Tracker) Update(tableName string, id int64, fields schema.Row) (res Result) {
	defer t.guard("update", &res)
	table, ok := schema.Lookup(tableName)
	if !ok {
		return t.fail(apperr.New(apperr.KindValidation, "unknown table "+tableName))
	}
	if err := validateRow(table, fields, false); err != nil {
		return t.fail(err)
	}
	if err := t.store.UpdateByID(table, id, fields); err != nil {
		return t.fail(err)
	}
	t.afterMutation(table)
	return Result{OK: true, Message: fmt.Sprintf("updated record %d in %s", id, table.Name)}
}

// Delete removes one record by primary key.
func (t *Tracker) Delete(tableName string, id int64) (res Result) {
	defer t.guard("delete", &res)
	table, ok := schema.Lookup(tableName)
	if !ok {
		return t.fail(apperr.New(apperr.KindValidation, "unknown table "+tableName))
	}
	if err := t.store.DeleteWhere(table, id); err != nil {
		return t.fail(err)
	}
	t.afterMutation(table)
	return Result{OK: true, Message: fmt.Sprintf("deleted record %d from %s", id, table.Name)}
}

// List returns every record of a table for grid rendering.
func (t *Tracker) List(tableName string) (rows []schema.Row, res Result) {
	defer t.guard("list", &res)
	table, ok := schema.Lookup(tableName)
	if !ok {
		return nil, t.fail(apperr.New(apperr.KindValidation, "unknown table "+tableName))
	}
	if !t.store.TableExists(table.Name) {
		return nil, t.fail(apperr.New(apperr.KindStore,
			"the "+table.Name+" table has not been created; run migrations first"))
	}
	rows, err := t.store.FetchAll(table)
	if err != nil {
		return nil, t.fail(err)
	}
	return rows, Result{OK: true, Message: fmt.Sprintf("%d records", len(rows))}
}

// Sync runs a one-directional whole-table replace between the replicas.
func (t *Tracker) Sync(direction syncer.Direction) (res Result) {
	defer t.guard("sync", &res)
	if err := t.sync.Sync(direction); err != nil {
		return t.fail(err)
	}
	return Result{OK: true, Message: "sync completed: " + direction.String()}
}

// RecomputeAccountBalances recomputes every account balance on demand.
func (t *Tracker) RecomputeAccountBalances() (res Result) {
	defer t.guard("recompute balances", &res)
	if err := t.recalc.RecomputeAccountBalances(); err != nil {
		return t.fail(err)
	}
	return Result{OK: true, Message: "account balances recomputed"}
}

// UpdateGoalProgress recomputes goal progress and status on demand.
func (t *Tracker) UpdateGoalProgress() (res Result) {
	defer t.guard("update goal progress", &res)
	if err := t.recalc.UpdateGoalProgress(time.Now()); err != nil {
		return t.fail(err)
	}
	return Result{OK: true, Message: "goal progress updated"}
}

// GenerateProjection runs the simulation and writes the report artifact.
func (t *Tracker) GenerateProjection() (rows []finance.ProjectionRow, res Result) {
	defer t.guard("generate projection", &res)
	now := time.Now()
	rows, err := t.projector.GenerateProjection(now)
	if err != nil {
		return nil, t.fail(err)
	}
	path, err := finance.WriteProjectionReport(t.reportDir, rows, now)
	if err != nil {
		t.logger.Error("report export failed", "err", err)
		return rows, Result{OK: false, Message: "projection computed but the report could not be written"}
	}
	return rows, Result{OK: true, Message: "projection saved to " + path}
}

// afterMutation keeps derived account balances current: any accepted write to
// Accounts, Payments or Revenue triggers a full recompute before the next
// store-to-workbook sync.
func (t *Tracker) afterMutation(table schema.Table) {
	switch table.Name {
	case "Accounts", "Payments", "Revenue":
		if err := t.recalc.RecomputeAccountBalances(); err != nil {
			t.logger.Error("balance recompute after mutation failed", "table", table.Name, "err", err)
		}
	}
}

func (t *Tracker) fail(err error) Result {
	t.logger.Error("operation failed", "err", err)
	return Result{OK: false, Message: apperr.Summary(err)}
}

// guard keeps a panic from crossing the core boundary; the process must
// survive any single operation's failure.
func (t *Tracker) guard(op string, res *Result) {
	if r := recover(); r != nil {
		t.logger.Error("panic recovered", "op", op, "panic", r)
		*res = Result{OK: false, Message: "an unexpected error occurred"}
	}
}
