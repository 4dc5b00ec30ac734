// --- File: default.go ---
package runlog

import (
	"time"
)

// Global instance for package-level functions
var defaultLogger = NewLogger()

// Default package-level functions that delegate to the default logger

// Default returns the process-wide logger used by the package-level functions
func Default() *Logger {
	return defaultLogger
}

// Init applies cfg to the default logger and starts it
func Init(cfg *Config) error {
	if err := defaultLogger.ApplyConfig(cfg); err != nil {
		return err
	}
	return defaultLogger.Start()
}

// InitFromFile loads a TOML configuration and starts the default logger with it
func InitFromFile(path string) error {
	cfg, err := NewConfigFromFile(path)
	if err != nil {
		return err
	}
	return Init(cfg)
}

// Shutdown stops the default logger and closes its log file
func Shutdown(timeout time.Duration) error {
	return defaultLogger.Shutdown(timeout)
}

// Flush waits until records logged so far are written and synced
func Flush(timeout time.Duration) error {
	return defaultLogger.Flush(timeout)
}

// Log logs a message at the given level
func Log(level int64, template string, args ...any) {
	defaultLogger.Log(level, template, args...)
}

// Debugf logs a message at debug level
func Debugf(template string, args ...any) {
	defaultLogger.Debugf(template, args...)
}

// Infof logs a message at info level
func Infof(template string, args ...any) {
	defaultLogger.Infof(template, args...)
}

// Warnf logs a message at warning level
func Warnf(template string, args ...any) {
	defaultLogger.Warnf(template, args...)
}

// Errorf logs a message at error level
func Errorf(template string, args ...any) {
	defaultLogger.Errorf(template, args...)
}

// AttachViewer installs a viewer on the default logger
func AttachViewer(v Viewer) {
	defaultLogger.AttachViewer(v)
}

// DetachViewer removes the default logger's viewer
func DetachViewer() {
	defaultLogger.DetachViewer()
}

// PreviousLog returns the previous run's log file name of the default logger
func PreviousLog() string {
	return defaultLogger.PreviousLog()
}

// PreviousCrashLog returns the newest crash log name found by the default logger
func PreviousCrashLog() string {
	return defaultLogger.PreviousCrashLog()
}
