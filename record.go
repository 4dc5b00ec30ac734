// FILE: lixenwraith/runlog/record.go
package runlog

import (
	"fmt"
	"hash/fnv"
	"os"
	"strings"
	"time"
	"unicode/utf8"
)

// logRecord represents a single queued log entry
type logRecord struct {
	Text      string
	Level     int64
	Site      uint64 // Template identity, equal for calls sharing a template
	TimeStamp time.Time

	flushDone chan struct{} // Non-nil for flush markers
}

// templateSite returns the identity of a message template
func templateSite(template string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(template))
	return h.Sum64()
}

// truncateMessage bounds text to MaxMessageSize bytes without splitting a rune
func truncateMessage(text string) string {
	if len(text) <= MaxMessageSize {
		return text
	}
	cut := MaxMessageSize
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// renderMessage applies args to template with fmt semantics
// A template without args is taken verbatim so literal '%' survives
func renderMessage(template string, args []any) string {
	if len(args) == 0 {
		return template
	}
	return fmt.Sprintf(template, args...)
}

// newRecord renders a record on the caller's goroutine
func newRecord(level int64, template string, args []any) logRecord {
	return logRecord{
		Text:      truncateMessage(renderMessage(template, args)),
		Level:     level,
		Site:      templateSite(template),
		TimeStamp: time.Now(),
	}
}

// log handles the core logging logic on the producer side
func (l *Logger) log(level int64, template string, args ...any) {
	defer func() {
		if r := recover(); r != nil {
			l.internalLog("recovered panic while logging: %v\n", r)
		}
	}()

	record := newRecord(level, template, args)
	l.submit(record)
}

// submit routes a rendered record to the queue or, when the pipeline is not
// running, straight to the fallback handler
func (l *Logger) submit(record logRecord) {
	if !l.state.Started.Load() {
		l.mirrorDebug(record, !l.fallbackToStderr())
		l.callFallback(record.Level, record.Text)
		return
	}

	l.queue.push(record)
}

// internalLog handles writing internal logger diagnostics to stderr, if enabled
func (l *Logger) internalLog(format string, args ...any) {
	cfg := l.getConfig()
	if !cfg.InternalErrorsToStderr {
		return
	}

	// Ensure consistent "runlog: " prefix
	if !strings.HasPrefix(format, "runlog: ") {
		format = "runlog: " + format
	}

	fmt.Fprintf(os.Stderr, format, args...)
}
