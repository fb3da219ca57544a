package config

import (
	"flag"
)

// parseFlags defines config flags on fs and parses args.
// If sources is non-nil, it tracks the source of each value.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("tasklist", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.TasksFile, "file", cfg.TasksFile, "Path to task file")
	fs.BoolVar(&cfg.SchemaStrict, "strict", cfg.SchemaStrict, "Validate the task file against the JSON Schema on load")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")
	fs.DurationVar(&cfg.TUIRefresh, "tui-refresh", cfg.TUIRefresh, "How often the TUI re-reads the task file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources == nil {
		return nil
	}

	// Map flag names to source field names
	flagToSource := map[string]string{
		"file":           "tasks_file",
		"strict":         "schema_strict",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"log-timestamps": "log_timestamps",
		"log-caller":     "log_caller",
		"tui-refresh":    "tui_refresh",
	}
	fs.Visit(func(f *flag.Flag) {
		if fieldName, ok := flagToSource[f.Name]; ok {
			sources[fieldName] = SourceFlag
		}
	})

	return nil
}
