// Package backup snapshots the sqlite file. A snapshot is taken automatically
// before a workbook-to-store sync overwrites every table, and on demand.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Attila01/DebtTracker/internal/config"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

type Manager struct {
	dir    string
	dbPath string
	logger *log.Logger
}

func New(cfg config.BackupConfig, dbPath string, logger *log.Logger) *Manager {
	return &Manager{dir: cfg.Dir, dbPath: dbPath, logger: logger}
}

// Snapshot copies the database file into the backup directory and returns the
// copy's path. The name carries a timestamp, the reason and a short unique
// suffix so rapid successive snapshots cannot collide.
func (m *Manager) Snapshot(reason string) (string, error) {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	name := fmt.Sprintf("%s_%s_%s_%s.db",
		trimExt(filepath.Base(m.dbPath)),
		time.Now().Format("20060102_150405"),
		reason,
		uuid.NewString()[:8])
	dst := filepath.Join(m.dir, name)

	if err := copyFile(m.dbPath, dst); err != nil {
		m.logger.Error("backup failed", "src", m.dbPath, "dst", dst, "err", err)
		return "", err
	}
	m.logger.Info("database snapshot written", "path", dst, "reason", reason)
	return dst, nil
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create backup: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	return out.Sync()
}
