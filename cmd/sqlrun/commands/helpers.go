package commands

import (
	"fmt"

	"github.com/loykin/sqlrun"
	"github.com/loykin/sqlrun/internal/util"
)

// loadConfig resolves the effective configuration for a command invocation
// and applies the optional [log] table to the global logger.
func loadConfig(path string) (*sqlrun.Config, error) {
	cfg, err := sqlrun.LoadConfig(path, sqlrun.OSEnv())
	if err != nil {
		return nil, err
	}
	if err := setupLogging(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogging(cfg *sqlrun.Config) error {
	lc := cfg.LogConfig()
	if lc.Level == "" && lc.Format == "" {
		// No [log] table: keep the logger already installed.
		return nil
	}

	var level sqlrun.LogLevel
	switch util.TrimAndLower(lc.Level) {
	case "error":
		level = sqlrun.LogLevelError
	case "warn", "warning":
		level = sqlrun.LogLevelWarn
	case "info", "":
		level = sqlrun.LogLevelInfo
	case "debug":
		level = sqlrun.LogLevelDebug
	default:
		return fmt.Errorf("invalid log level: %s (valid: error, warn, info, debug)", lc.Level)
	}

	switch util.TrimAndLower(lc.Format) {
	case "json":
		sqlrun.SetDefaultLogger(sqlrun.NewJSONLogger(level))
	case "text", "":
		sqlrun.SetDefaultLogger(sqlrun.NewLogger(level))
	default:
		return fmt.Errorf("invalid log format: %s (valid: text, json)", lc.Format)
	}
	return nil
}
