// FILE: override.go
package runlog

import (
	"fmt"
	"strconv"
	"strings"
)

// ApplyOverride applies string key-value overrides to the logger's current configuration.
// Each override should be in the format "key=value".
// The configuration is cloned before modification to ensure thread safety.
//
// Example:
//
//	logger := runlog.NewLogger()
//	err := logger.ApplyOverride(
//	    "directory=/var/log/app",
//	    "retention_count=5",
//	    "verbose=true",
//	)
func (l *Logger) ApplyOverride(overrides ...string) error {
	cfg := l.getConfig().Clone()

	var errors []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errors = append(errors, err)
			continue
		}

		if err := applyConfigField(cfg, key, value); err != nil {
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return combineConfigErrors(errors)
	}

	return l.ApplyConfig(cfg)
}

// combineConfigErrors combines multiple configuration errors into a single error.
func combineConfigErrors(errors []error) error {
	if len(errors) == 0 {
		return nil
	}
	if len(errors) == 1 {
		return errors[0]
	}

	var sb strings.Builder
	sb.WriteString("runlog: multiple configuration errors:")
	for i, err := range errors {
		errMsg := strings.TrimPrefix(err.Error(), "runlog: ")
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s", sb.String())
}

// applyConfigField applies a single key-value override to a Config.
func applyConfigField(cfg *Config, key, value string) error {
	switch key {
	// File naming
	case "name":
		cfg.Name = value
	case "directory":
		cfg.Directory = value
	case "extension":
		cfg.Extension = value
	case "crash_directory":
		cfg.CrashDirectory = value
	case "crash_name":
		cfg.CrashName = value

	// Retention and rotation
	case "retention_count":
		return parseIntField(&cfg.RetentionCount, key, value)
	case "max_size_kb":
		return parseIntField(&cfg.MaxSizeKB, key, value)

	// Filtering
	case "verbose":
		return parseBoolField(&cfg.Verbose, key, value)
	case "unfiltered":
		return parseBoolField(&cfg.Unfiltered, key, value)

	// Debug channel
	case "mirror_debug":
		return parseBoolField(&cfg.MirrorDebug, key, value)
	case "break_on_error":
		return parseBoolField(&cfg.BreakOnError, key, value)

	// Formatting
	case "timestamp_format":
		cfg.TimestampFormat = value

	// Timers
	case "poll_interval_ms":
		return parseIntField(&cfg.PollIntervalMs, key, value)
	case "enable_periodic_sync":
		return parseBoolField(&cfg.EnablePeriodicSync, key, value)
	case "heartbeat_interval_s":
		return parseIntField(&cfg.HeartbeatIntervalS, key, value)

	// Internal error handling
	case "internal_errors_to_stderr":
		return parseBoolField(&cfg.InternalErrorsToStderr, key, value)

	default:
		return fmtErrorf("unknown configuration key '%s'", key)
	}

	return nil
}

// parseIntField parses value into an int64 config field
func parseIntField(dst *int64, key, value string) error {
	intVal, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmtErrorf("invalid integer value for %s '%s': %w", key, value, err)
	}
	*dst = intVal
	return nil
}

// parseBoolField parses value into a bool config field
func parseBoolField(dst *bool, key, value string) error {
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return fmtErrorf("invalid boolean value for %s '%s': %w", key, value, err)
	}
	*dst = boolVal
	return nil
}
