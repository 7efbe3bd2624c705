package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type WorkbookConfig struct {
	Path string `mapstructure:"path"`
}

type ReportConfig struct {
	Dir string `mapstructure:"dir"`
}

type BackupConfig struct {
	Dir string `mapstructure:"dir"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Workbook WorkbookConfig `mapstructure:"workbook"`
	Report   ReportConfig   `mapstructure:"report"`
	Backup   BackupConfig   `mapstructure:"backup"`
	Log      LogConfig      `mapstructure:"log"`
}

// Load reads configuration from the given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in the current working
// directory. The returned value is handed to each component constructor;
// there is no package-level configuration state.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	// environment overrides, e.g. DT_DATABASE_PATH=/tmp/debts.db
	v.SetEnvPrefix("DT")
	v.AutomaticEnv()

	v.SetDefault("database.path", "data/debt_manager.db")
	v.SetDefault("workbook.path", "data/DebtDashboard.xlsx")
	v.SetDefault("report.dir", "data/reports")
	v.SetDefault("backup.dir", "data/backups")
	v.SetDefault("log.file", "data/logs/debug.log")
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		// a missing default config file is fine, the defaults above apply
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
