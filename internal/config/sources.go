package config

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
)

const (
	appName        = "tasklist"
	configFileName = "tasklist.toml"
)

// findProjectConfigFile looks for a config file in the current directory.
func findProjectConfigFile() string {
	names := []string{configFileName, "." + configFileName}
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file.
// Checks ~/.tasklist/tasklist.toml first, then falls back to OS-specific
// config directories if ~/.tasklist doesn't exist.
func findUserConfigFile() string {
	home, err := os.UserHomeDir()
	if err == nil {
		userConfigPath := filepath.Join(home, "."+appName, configFileName)
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	if cfgDir := osUserConfigDir(); cfgDir != "" {
		userConfigPath := filepath.Join(cfgDir, appName, configFileName)
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	return ""
}

// osUserConfigDir returns the OS-specific user config directory.
// Returns empty string if the directory cannot be determined.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return appdata
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}

// SourceOf returns where field got its value, or SourceDefault.
func (cws *ConfigWithSources) SourceOf(field string) ConfigSource {
	if cws == nil || cws.Sources == nil {
		return SourceDefault
	}
	if s, ok := cws.Sources[field]; ok {
		return s
	}
	return SourceDefault
}

// Fields returns the tracked field names in sorted order.
func (cws *ConfigWithSources) Fields() []string {
	fields := configFields()
	sort.Strings(fields)
	return fields
}

// Value returns the effective value of field formatted for display.
func (cws *ConfigWithSources) Value(field string) any {
	cfg := cws.Config
	switch field {
	case "tasks_file":
		return cfg.TasksFile
	case "schema_strict":
		return cfg.SchemaStrict
	case "time_format":
		return cfg.TimeFormat
	case "log_level":
		return cfg.LogLevel
	case "log_format":
		return cfg.LogFormat
	case "log_timestamps":
		return cfg.LogTimestamps
	case "log_caller":
		return cfg.LogCaller
	case "tui_refresh":
		return cfg.TUIRefresh
	}
	return nil
}
