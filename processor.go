// --- File: processor.go ---
package runlog

import (
	"fmt"
	"time"
)

// processLogs is the worker loop, the only consumer of the queue.
// Each wake handles at most one record; idle wakes run housekeeping.
func (l *Logger) processLogs() {
	defer close(l.exited)
	defer l.state.ProcessorExited.Store(true)

	pollInterval := time.Duration(l.getConfig().PollIntervalMs) * time.Millisecond
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	lastHeartbeat := time.Now()

	for {
		record, ok := l.queue.next(pollInterval, l.done)
		if ok {
			l.processLogRecord(record)
		} else {
			select {
			case <-l.done:
				l.drainOnExit()
				return
			default:
			}
			l.handleIdle()
		}

		lastHeartbeat = l.handleHeartbeat(lastHeartbeat)
	}
}

// processLogRecord runs one record through the debug mirror, the level and
// flood filters and the chunker
func (l *Logger) processLogRecord(r logRecord) {
	if r.flushDone != nil {
		l.performSync()
		close(r.flushDone)
		return
	}

	c := l.getConfig()

	l.mirrorDebug(r, true)

	if r.Level < LevelInfo && !c.Verbose {
		return
	}

	suppress, closed := l.dedup.check(r, c.Unfiltered)
	if closed > 0 {
		l.writeRepeatSummary(closed)
	}
	if suppress {
		l.state.TotalSuppressed.Add(1)
		return
	}

	l.dispatch(r)
}

// writeRepeatSummary records how many lines of a flood were suppressed
func (l *Logger) writeRepeatSummary(count int) {
	prefix := timePrefix(time.Now(), l.getConfig().TimestampFormat)
	l.emitLine(LevelInfo, prefix, fmt.Sprintf("Last log entry repeated for %d more lines", count))
}

// handleIdle performs housekeeping on a wake without a record
func (l *Logger) handleIdle() {
	if l.getConfig().EnablePeriodicSync {
		l.performSync()
	}
}

// drainOnExit writes every record still queued, closes the open flood run
// and syncs the file
func (l *Logger) drainOnExit() {
	for {
		record, ok := l.queue.pop()
		if !ok {
			break
		}
		l.processLogRecord(record)
	}

	if closed := l.dedup.finish(); closed > 0 {
		l.writeRepeatSummary(closed)
	}
	l.performSync()
}
