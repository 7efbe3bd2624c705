package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database:
  path: /tmp/debts.db
  log_mode: true
workbook:
  path: /tmp/dash.xlsx
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/debts.db", cfg.Database.Path)
	assert.True(t, cfg.Database.LogMode)
	assert.Equal(t, "/tmp/dash.xlsx", cfg.Workbook.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	// unset sections fall back to defaults
	assert.Equal(t, "data/reports", cfg.Report.Dir)
	assert.Equal(t, "data/backups", cfg.Backup.Dir)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "data/debt_manager.db", cfg.Database.Path)
	assert.Equal(t, "data/DebtDashboard.xlsx", cfg.Workbook.Path)
	assert.Equal(t, "info", cfg.Log.Level)
}
