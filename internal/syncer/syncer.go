// Package syncer keeps the relational store and the workbook consistent by
// whole-table replacement, one direction per invocation. Replacement is never
// row-diffed: data volumes are personal-finance scale and only one replica is
// edited between syncs in normal use.
package syncer

import (
	"github.com/Attila01/DebtTracker/internal/apperr"
	"github.com/Attila01/DebtTracker/internal/schema"

	"github.com/charmbracelet/log"
)

// Direction selects which replica is the source of truth for one sync.
type Direction int

const (
	// StoreToDocument pushes the relational store into the workbook.
	StoreToDocument Direction = iota
	// DocumentToStore pulls workbook content into the relational store.
	DocumentToStore
)

func (d Direction) String() string {
	if d == DocumentToStore {
		return "workbook to store"
	}
	return "store to workbook"
}

// StoreReplica is the store-side surface the engine needs.
type StoreReplica interface {
	FetchAll(table schema.Table) ([]schema.Row, error)
	ReplaceAll(table schema.Table, rows []schema.Row) error
}

// DocumentReplica is the workbook-side surface the engine needs.
type DocumentReplica interface {
	Exists() bool
	Busy() error
	ValidateHeaders() error
	ReadSheet(table schema.Table) ([]schema.Row, error)
	ReplaceSheet(table schema.Table, rows []schema.Row) error
}

// Snapshotter captures a restorable copy of the store before it is
// overwritten wholesale. Optional.
type Snapshotter interface {
	Snapshot(reason string) (string, error)
}

type Syncer struct {
	store  StoreReplica
	doc    DocumentReplica
	backup Snapshotter
	logger *log.Logger
}

func New(store StoreReplica, doc DocumentReplica, backup Snapshotter, logger *log.Logger) *Syncer {
	return &Syncer{store: store, doc: doc, backup: backup, logger: logger}
}

// Sync replaces the destination replica's tables with the source replica's
// content, table by table in registry order. Per-table failures are fail-fast:
// the table in progress is abandoned and remaining tables stay stale;
// already-synced tables are not rolled back. Each adapter operation acquires
// and releases its own store/file handle, so nothing is left held on any exit
// path.
func (s *Syncer) Sync(direction Direction) error {
	if err := s.doc.Busy(); err != nil {
		return err
	}
	if !s.doc.Exists() {
		s.logger.Error("sync refused, workbook template missing")
		return apperr.New(apperr.KindDocument,
			"the workbook template does not exist; create it before syncing")
	}

	if direction == DocumentToStore {
		// A reordered or renamed column would silently corrupt the store,
		// so every header is verified before any table is replaced.
		if err := s.doc.ValidateHeaders(); err != nil {
			return err
		}
		if s.backup != nil {
			if _, err := s.backup.Snapshot("pre-sync"); err != nil {
				return err
			}
		}
	}

	for _, table := range schema.Tables() {
		if err := s.syncTable(direction, table); err != nil {
			s.logger.Error("sync aborted", "direction", direction.String(),
				"table", table.Name, "err", err)
			return err
		}
	}
	s.logger.Info("sync completed", "direction", direction.String())
	return nil
}

func (s *Syncer) syncTable(direction Direction, table schema.Table) error {
	if direction == DocumentToStore {
		rows, err := s.doc.ReadSheet(table)
		if err != nil {
			return err
		}
		return s.store.ReplaceAll(table, rows)
	}
	rows, err := s.store.FetchAll(table)
	if err != nil {
		return err
	}
	return s.doc.ReplaceSheet(table, rows)
}
