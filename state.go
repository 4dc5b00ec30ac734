// FILE: state.go
package runlog

import (
	"sync/atomic"
	"time"
)

// State encapsulates the runtime state of the logger
type State struct {
	IsInitialized   atomic.Bool
	ShutdownCalled  atomic.Bool
	Started         atomic.Bool // Worker running and accepting records
	ProcessorExited atomic.Bool // Tracks if the worker goroutine is running or has exited

	PreviousLog      atomic.Value // stores string, previous run's log file name
	PreviousCrashLog atomic.Value // stores string, newest crash log file name

	// Statistics
	LoggerStartTime    atomic.Value  // stores time.Time for uptime calculation
	HeartbeatSequence  atomic.Uint64 // Counter for heartbeat sequence numbers
	TotalLogsProcessed atomic.Uint64 // Records written to the file
	TotalSuppressed    atomic.Uint64 // Records suppressed as floods
	DroppedLogs        atomic.Uint64 // Lines that could not be written
	TotalRotations     atomic.Uint64 // Size-triggered file switches
	TotalDeletions     atomic.Uint64 // Files deleted by retention
}

// Stats is a snapshot of logger counters
type Stats struct {
	QueueDepth     int
	PeakQueueDepth int64
	Enqueued       uint64
	Processed      uint64
	Suppressed     uint64
	Dropped        uint64
	Rotations      uint64
	Deletions      uint64
	Uptime         time.Duration
}

// Stats returns a snapshot of the logger counters
func (l *Logger) Stats() Stats {
	var uptime time.Duration
	if start, ok := l.state.LoggerStartTime.Load().(time.Time); ok && !start.IsZero() {
		uptime = time.Since(start)
	}

	return Stats{
		QueueDepth:     l.queue.depth(),
		PeakQueueDepth: l.queue.peak.Load(),
		Enqueued:       l.queue.enqueued.Load(),
		Processed:      l.state.TotalLogsProcessed.Load(),
		Suppressed:     l.state.TotalSuppressed.Load(),
		Dropped:        l.state.DroppedLogs.Load(),
		Rotations:      l.state.TotalRotations.Load(),
		Deletions:      l.state.TotalDeletions.Load(),
		Uptime:         uptime,
	}
}

// PreviousLog returns the file name of the newest log of an earlier run,
// empty when none was found
func (l *Logger) PreviousLog() string {
	s, _ := l.state.PreviousLog.Load().(string)
	return s
}

// PreviousCrashLog returns the newest crash log file name, empty when
// crash discovery is disabled or none was found
func (l *Logger) PreviousCrashLog() string {
	s, _ := l.state.PreviousCrashLog.Load().(string)
	return s
}

// CurrentLog returns the full path of the file this run writes to
func (l *Logger) CurrentLog() string {
	l.fileMu.Lock()
	defer l.fileMu.Unlock()
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}
