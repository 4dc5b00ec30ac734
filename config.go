// FILE: lixenwraith/runlog/config.go
package runlog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/lixenwraith/config"
)

// Config holds all logger configuration values
type Config struct {
	// File naming
	Name      string `toml:"name"` // Prefix of run log file names
	Directory string `toml:"directory"`
	Extension string `toml:"extension"`

	// Crash log discovery, empty directory disables it
	CrashDirectory string `toml:"crash_directory"`
	CrashName      string `toml:"crash_name"`

	// Retention and rotation
	RetentionCount int64 `toml:"retention_count"` // Max run log files kept in directory
	MaxSizeKB      int64 `toml:"max_size_kb"`     // Rotate to a new file past this size (0=disabled)

	// Filtering
	Verbose    bool `toml:"verbose"`    // Persist debug records
	Unfiltered bool `toml:"unfiltered"` // Disable flood suppression

	// Debug channel
	MirrorDebug  bool `toml:"mirror_debug"`   // Mirror records to an attached debugger or console
	BreakOnError bool `toml:"break_on_error"` // Invoke the break hook on error records when attached

	// Formatting
	TimestampFormat string `toml:"timestamp_format"`

	// Timers
	PollIntervalMs     int64 `toml:"poll_interval_ms"`     // Worker idle wake interval
	EnablePeriodicSync bool  `toml:"enable_periodic_sync"` // Sync file on idle wakes after writes
	HeartbeatIntervalS int64 `toml:"heartbeat_interval_s"` // Statistics record interval (0=disabled)

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"` // Write internal errors to stderr
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	// File naming
	Name:      "log",
	Directory: "./logs",
	Extension: "txt",

	// Crash log discovery
	CrashDirectory: "",
	CrashName:      "crash",

	// Retention and rotation
	RetentionCount: 10,
	MaxSizeKB:      0,

	// Filtering
	Verbose:    false,
	Unfiltered: false,

	// Debug channel
	MirrorDebug:  true,
	BreakOnError: false,

	// Formatting
	TimestampFormat: "15:04:05.000",

	// Timers
	PollIntervalMs:     100,
	EnablePeriodicSync: true,
	HeartbeatIntervalS: 0,

	// Internal error handling
	InternalErrorsToStderr: false,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	// Create a copy to prevent modifications to the original
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from a TOML file and returns a validated Config
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Use lixenwraith/config as a loader
	loader := config.New()

	// Register the struct to enable proper unmarshaling
	if err := loader.RegisterStruct("log.", *cfg); err != nil {
		return nil, fmt.Errorf("failed to register config struct: %w", err)
	}

	// Load from file (handles file not found gracefully)
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	// Extract values into our Config struct
	if err := extractConfig(loader, "log.", cfg); err != nil {
		return nil, fmt.Errorf("failed to extract config values: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmt.Errorf("failed to apply overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue // Use default value
		}

		if err := setFieldValue(fieldValue, val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < t.NumField(); i++ {
		tomlTag := t.Field(i).Tag.Get("toml")
		if tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmtErrorf("log name cannot be empty")
	}
	if strings.ContainsAny(c.Name, `/\`) || strings.ContainsAny(c.CrashName, `/\`) {
		return fmtErrorf("log names cannot contain path separators")
	}

	if strings.TrimSpace(c.Directory) == "" {
		return fmtErrorf("directory cannot be empty")
	}

	if strings.HasPrefix(c.Extension, ".") {
		return fmtErrorf("extension should not start with dot: %s", c.Extension)
	}

	if c.CrashDirectory != "" && strings.TrimSpace(c.CrashName) == "" {
		return fmtErrorf("crash_name cannot be empty when crash_directory is set")
	}

	if strings.TrimSpace(c.TimestampFormat) == "" {
		return fmtErrorf("timestamp_format cannot be empty")
	}

	if c.RetentionCount < 1 {
		return fmtErrorf("retention_count must be at least 1: %d", c.RetentionCount)
	}

	if c.MaxSizeKB < 0 {
		return fmtErrorf("max_size_kb cannot be negative: %d", c.MaxSizeKB)
	}

	if c.PollIntervalMs <= 0 {
		return fmtErrorf("poll_interval_ms must be positive: %d", c.PollIntervalMs)
	}

	if c.HeartbeatIntervalS < 0 {
		return fmtErrorf("heartbeat_interval_s cannot be negative: %d", c.HeartbeatIntervalS)
	}

	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}
