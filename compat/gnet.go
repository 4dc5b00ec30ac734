package compat

import (
	"os"
	"time"

	"github.com/panjf2000/gnet/v2/pkg/logging"

	"github.com/lixenwraith/runlog"
)

var _ logging.Logger = (*GnetAdapter)(nil)

// GnetAdapter wraps runlog.Logger to implement the gnet logging.Logger interface.
// gnet format strings are passed through as templates, so a gnet call site
// repeating in a loop is flood suppressed like any other.
type GnetAdapter struct {
	logger       *runlog.Logger
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(logger *runlog.Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// Debugf logs at debug level with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.logger.Log(runlog.LevelDebug, gnetPrefix+format, args...)
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.logger.Log(runlog.LevelInfo, gnetPrefix+format, args...)
}

// Warnf logs at warn level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.logger.Log(runlog.LevelWarn, gnetPrefix+format, args...)
}

// Errorf logs at error level with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.logger.Log(runlog.LevelError, gnetPrefix+format, args...)
}

// Fatalf logs at error level and triggers fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	a.logger.Log(runlog.LevelError, gnetPrefix+"fatal: "+format, args...)

	// Ensure log is written before exit
	_ = a.logger.Flush(500 * time.Millisecond)

	if a.fatalHandler != nil {
		a.fatalHandler(renderMessage(format, args))
	}
}
