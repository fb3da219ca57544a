package config

import "time"

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, user file first.
	Files []string
}

// Default values.
const (
	DefaultTasksFile  = "tasks.json"
	DefaultTimeFormat = "15:04:05"
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "text"
	DefaultTUIRefresh = 2 * time.Second
)

// Config holds the full configuration for tasklist.
type Config struct {
	// Paths
	TasksFile string `toml:"tasks_file"`

	// Validate the task file against the JSON Schema on load
	SchemaStrict bool `toml:"schema_strict"`

	// Layout used for confirmation timestamps
	TimeFormat string `toml:"time_format"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// How often the TUI re-reads the task file
	TUIRefresh time.Duration `toml:"tui_refresh"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"tasks_file",
		"schema_strict",
		"time_format",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"tui_refresh",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.TasksFile = DefaultTasksFile
	cfg.SchemaStrict = false
	cfg.TimeFormat = DefaultTimeFormat
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
	cfg.TUIRefresh = DefaultTUIRefresh
}
