package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Attila01/DebtTracker/internal/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Init opens the sqlite file, creating its directory on first run. WAL and
// foreign-key enforcement are requested through the DSN so every connection
// the pool hands out carries the same pragmas.
func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	dsn := cfg.Path + "?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on"
	level := logger.Silent
	if cfg.LogMode {
		level = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	// single local user, a handful of connections is plenty
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
