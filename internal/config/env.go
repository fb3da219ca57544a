package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// loadFromEnv overrides config from environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	setEnv := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("TASKLIST_FILE"); v != "" {
		cfg.TasksFile = v
		setEnv("tasks_file")
	}
	if v := os.Getenv("TASKLIST_STRICT"); v != "" {
		cfg.SchemaStrict = boolFromString(v)
		setEnv("schema_strict")
	}
	if v := os.Getenv("TASKLIST_TIME_FORMAT"); v != "" {
		cfg.TimeFormat = v
		setEnv("time_format")
	}

	// Logging configuration
	if v := os.Getenv("TASKLIST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		setEnv("log_level")
	}
	if v := os.Getenv("TASKLIST_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		setEnv("log_format")
	}
	if v := os.Getenv("TASKLIST_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		setEnv("log_timestamps")
	}
	if v := os.Getenv("TASKLIST_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		setEnv("log_caller")
	}

	if v := os.Getenv("TASKLIST_TUI_REFRESH"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TASKLIST_TUI_REFRESH: %w", err)
		}
		cfg.TUIRefresh = d
		setEnv("tui_refresh")
	}
	return nil
}

func boolFromString(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}
