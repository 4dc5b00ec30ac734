// FILE: interface.go
package runlog

// Logger instance methods for logging at different levels.
// All of them are safe for concurrent use and never block on I/O.

// Log renders template with args at the given level and queues the record.
// Records sharing a template count as the same message for flood suppression.
func (l *Logger) Log(level int64, template string, args ...any) {
	l.log(level, template, args...)
}

// Debugf logs a message at debug level
func (l *Logger) Debugf(template string, args ...any) {
	l.log(LevelDebug, template, args...)
}

// Infof logs a message at info level
func (l *Logger) Infof(template string, args ...any) {
	l.log(LevelInfo, template, args...)
}

// Warnf logs a message at warning level
func (l *Logger) Warnf(template string, args ...any) {
	l.log(LevelWarn, template, args...)
}

// Errorf logs a message at error level
func (l *Logger) Errorf(template string, args ...any) {
	l.log(LevelError, template, args...)
}
