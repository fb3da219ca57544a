package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasklist configuration file
# Values can be overridden by environment variables or CLI flags

# Task file (relative paths resolve against the working directory,
# supports ~ expansion and $VAR / %VAR% references)
tasks_file = "tasks.json"

# Validate the task file against the built-in JSON Schema on every load
schema_strict = false

# Layout for confirmation timestamps (Go time layout)
time_format = "15:04:05"

# Logging: debug, info, warn, error
log_level = "warn"
# Log format: text, json, logfmt
log_format = "text"
log_timestamps = false
log_caller = false

# How often the TUI re-reads the task file
tui_refresh = "2s"
`
}
