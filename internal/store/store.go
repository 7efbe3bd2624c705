// Package store executes parameterized statements against the relational
// replica. Every operation does its work in one scope against the shared
// handle and classifies failures as apperr.KindStore; a raw driver error
// never crosses this boundary.
package store

import (
	"database/sql"

	"github.com/Attila01/DebtTracker/internal/apperr"
	"github.com/Attila01/DebtTracker/internal/schema"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

type Store struct {
	db     *gorm.DB
	logger *log.Logger
}

func New(db *gorm.DB, logger *log.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// TableExists introspects the catalog. Introspection failure is logged and
// reported as absence, not as an error.
func (s *Store) TableExists(name string) bool {
	var count int64
	err := s.db.Raw(
		"SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name,
	).Scan(&count).Error
	if err != nil {
		s.logger.Error("table introspection failed", "table", name, "err", err)
		return false
	}
	return count > 0
}

// FetchAll returns every record of a table ordered by primary key. An empty
// table yields an empty slice, never an error.
func (s *Store) FetchAll(table schema.Table) ([]schema.Row, error) {
	var raw []map[string]any
	err := s.db.Table(table.Name).
		Order(table.PrimaryKey + " ASC").
		Find(&raw).Error
	if err != nil {
		s.logger.Error("fetch all failed", "table", table.Name, "err", err)
		return nil, apperr.Wrap(apperr.KindStore, "could not read "+table.Name, err)
	}
	rows := make([]schema.Row, 0, len(raw))
	for _, m := range raw {
		rows = append(rows, filterColumns(table, schema.Row(m), true))
	}
	return rows, nil
}

// ReplaceAll deletes every existing record and inserts the given rows, each
// insert parameterized. The delete and the inserts are deliberately not one
// transaction: whole-table replace mirrors the sync engine's replica model,
// and a crash mid-operation leaves the table empty rather than merged.
func (s *Store) ReplaceAll(table schema.Table, rows []schema.Row) error {
	if err := s.db.Exec("DELETE FROM " + table.Name).Error; err != nil {
		s.logger.Error("delete all failed", "table", table.Name, "err", err)
		return apperr.Wrap(apperr.KindStore, "could not clear "+table.Name, err)
	}
	for _, row := range rows {
		fields := map[string]any(filterColumns(table, row, true))
		if err := s.db.Table(table.Name).Create(fields).Error; err != nil {
			s.logger.Error("insert during replace failed", "table", table.Name, "err", err)
			return apperr.Wrap(apperr.KindStore, "could not write "+table.Name, err)
		}
	}
	return nil
}

// InsertOne inserts a single record and returns the assigned primary key.
func (s *Store) InsertOne(table schema.Table, fields schema.Row) (int64, error) {
	insert := map[string]any(filterColumns(table, fields, false))
	var id int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(table.Name).Create(insert).Error; err != nil {
			return err
		}
		return tx.Raw("SELECT last_insert_rowid()").Scan(&id).Error
	})
	if err != nil {
		s.logger.Error("insert failed", "table", table.Name, "err", err)
		return 0, apperr.Wrap(apperr.KindStore, "could not add record to "+table.Name, err)
	}
	return id, nil
}

// UpdateByID updates the given columns of one record. The primary key is
// never part of the SET list.
func (s *Store) UpdateByID(table schema.Table, id int64, fields schema.Row) error {
	update := map[string]any(filterColumns(table, fields, false))
	if len(update) == 0 {
		return apperr.New(apperr.KindValidation, "no updatable fields for "+table.Name)
	}
	err := s.db.Table(table.Name).
		Where(table.PrimaryKey+" = ?", id).
		Updates(update).Error
	if err != nil {
		s.logger.Error("update failed", "table", table.Name, "id", id, "err", err)
		return apperr.Wrap(apperr.KindStore, "could not update record in "+table.Name, err)
	}
	return nil
}

// DeleteWhere removes the record whose primary key equals id.
func (s *Store) DeleteWhere(table schema.Table, id int64) error {
	err := s.db.Exec(
		"DELETE FROM "+table.Name+" WHERE "+table.PrimaryKey+" = ?", id,
	).Error
	if err != nil {
		s.logger.Error("delete failed", "table", table.Name, "id", id, "err", err)
		return apperr.Wrap(apperr.KindStore, "could not delete record from "+table.Name, err)
	}
	return nil
}

// Scalar runs an aggregate query and returns its single value. A query with
// no matching rows yields 0, never null; the recalculator depends on this.
func (s *Store) Scalar(query string, args ...any) (float64, error) {
	var v sql.NullFloat64
	if err := s.db.Raw(query, args...).Scan(&v).Error; err != nil {
		s.logger.Error("scalar query failed", "query", query, "err", err)
		return 0, apperr.Wrap(apperr.KindStore, "aggregate query failed", err)
	}
	if !v.Valid {
		return 0, nil
	}
	return v.Float64, nil
}

// filterColumns keeps only columns the registry knows for this table so a
// stray key (a joined display column, a stale sheet header) never reaches a
// statement.
func filterColumns(t schema.Table, row schema.Row, includePK bool) schema.Row {
	out := make(schema.Row, len(row))
	for _, col := range t.Columns() {
		if col == t.PrimaryKey && !includePK {
			continue
		}
		if v, ok := row[col]; ok {
			out[col] = v
		}
	}
	return out
}
