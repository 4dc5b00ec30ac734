// FILE: lixenwraith/runlog/logger.go
package runlog

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Logger is the core struct that encapsulates all logger functionality
type Logger struct {
	currentConfig atomic.Value // stores *Config
	state         State
	initMu        sync.Mutex

	queue *recordQueue
	dedup dedupFilter

	// Log file, owned by the lifecycle and written by the worker only
	fileMu    sync.Mutex
	file      *os.File
	fileName  string
	fileSize  int64
	fileDirty bool
	naming    runNaming // Set by Start, read by the worker

	viewer          atomic.Pointer[viewerHolder]
	fallback        atomic.Pointer[FallbackHandler]
	fallbackDefault atomic.Bool
	breakHook       atomic.Pointer[BreakHook]
	debug           debugChannel

	done   chan struct{} // Closed to stop the worker
	exited chan struct{} // Closed by the worker on exit
}

// NewLogger creates a new Logger instance with default settings
func NewLogger() *Logger {
	l := &Logger{
		queue:  newRecordQueue(),
		debug:  newSystemDebugChannel(),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}

	l.currentConfig.Store(DefaultConfig())

	l.state.IsInitialized.Store(false)
	l.state.ShutdownCalled.Store(false)
	l.state.Started.Store(false)
	l.state.ProcessorExited.Store(true)
	l.state.PreviousLog.Store("")
	l.state.PreviousCrashLog.Store("")
	l.state.LoggerStartTime.Store(time.Time{})

	l.SetFallback(nil)
	l.SetBreakHook(nil)

	return l
}

// ApplyConfig validates and applies a configuration to the logger.
// Filtering and debug settings take effect immediately; directory, name and
// extension are captured by Start and hold for the rest of the run.
func (l *Logger) ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return fmtErrorf("configuration cannot be nil")
	}

	if err := cfg.Validate(); err != nil {
		return fmtErrorf("invalid configuration: %w", err)
	}

	l.initMu.Lock()
	defer l.initMu.Unlock()

	if l.state.ShutdownCalled.Load() {
		return fmtErrorf("logger already shut down")
	}

	l.currentConfig.Store(cfg.Clone())
	l.state.IsInitialized.Store(true)
	return nil
}

// GetConfig returns a copy of current configuration
func (l *Logger) GetConfig() *Config {
	return l.getConfig().Clone()
}

// getConfig returns the current configuration (thread-safe)
func (l *Logger) getConfig() *Config {
	return l.currentConfig.Load().(*Config)
}

// Start creates this run's log file and launches the worker.
// If the file cannot be created the failure is reported through the fallback
// handler and returned; records keep flowing to the fallback handler.
// Calling Start on a started logger is a no-op.
func (l *Logger) Start() error {
	l.initMu.Lock()
	defer l.initMu.Unlock()

	if !l.state.IsInitialized.Load() {
		return fmtErrorf("logger not initialized, call ApplyConfig first")
	}
	if l.state.Started.Load() {
		return nil
	}
	if !l.state.ProcessorExited.Load() {
		return fmtErrorf("worker from a previous start is still running")
	}

	if err := l.openRunLog(); err != nil {
		l.callFallback(LevelError, fmt.Sprintf("Failed to open log file: %v", err))
		return err
	}

	l.state.LoggerStartTime.Store(time.Now())
	l.state.ProcessorExited.Store(false)
	l.state.Started.Store(true)
	go l.processLogs()

	return nil
}

// Shutdown stops the worker, waits for queued records to be written and
// closes the log file. If no timeout is provided, a default of 2 seconds is used.
func (l *Logger) Shutdown(timeout ...time.Duration) error {
	if !l.state.ShutdownCalled.CompareAndSwap(false, true) {
		return nil
	}

	l.initMu.Lock()
	defer l.initMu.Unlock()

	if !l.state.IsInitialized.Load() {
		return nil
	}

	effectiveTimeout := 2 * time.Second
	if len(timeout) > 0 && timeout[0] > 0 {
		effectiveTimeout = timeout[0]
	}

	var finalErr error
	if l.state.Started.Swap(false) {
		close(l.done)
		select {
		case <-l.exited:
		case <-time.After(effectiveTimeout):
			finalErr = fmtErrorf("logger worker did not exit within timeout (%v)", effectiveTimeout)
		}
	}

	l.state.IsInitialized.Store(false)

	if err := l.closeLogFile(); err != nil {
		finalErr = combineErrors(finalErr, err)
	}

	return finalErr
}

// Flush waits until every record logged before the call is written and the
// log file is synced, or until timeout
func (l *Logger) Flush(timeout time.Duration) error {
	if !l.state.IsInitialized.Load() || l.state.ShutdownCalled.Load() {
		return fmtErrorf("logger not initialized or already shut down")
	}
	if !l.state.Started.Load() {
		return fmtErrorf("logger not started")
	}

	confirm := make(chan struct{})
	l.queue.push(logRecord{flushDone: confirm})

	select {
	case <-confirm:
		return nil
	case <-time.After(timeout):
		return fmtErrorf("timeout waiting for flush confirmation (%v)", timeout)
	}
}
