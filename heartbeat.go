// FILE: lixenwraith/runlog/heartbeat.go
package runlog

import (
	"fmt"
	"runtime"
	"time"
)

// handleHeartbeat writes a statistics record once the heartbeat interval has
// elapsed since last, returning the time of the latest heartbeat
func (l *Logger) handleHeartbeat(last time.Time) time.Time {
	intervalS := l.getConfig().HeartbeatIntervalS
	if intervalS <= 0 {
		return last
	}

	now := time.Now()
	if now.Sub(last) < time.Duration(intervalS)*time.Second {
		return last
	}

	l.logProcHeartbeat(now)
	return now
}

// logProcHeartbeat logs queue and worker statistics.
// Heartbeats bypass the flood filter so they never reset a flood run.
func (l *Logger) logProcHeartbeat(now time.Time) {
	stats := l.Stats()
	sequence := l.state.HeartbeatSequence.Add(1)

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	text := fmt.Sprintf(
		"heartbeat sequence=%d uptime_hours=%.2f queue_depth=%d peak_queue_depth=%d processed_logs=%d suppressed_logs=%d dropped_logs=%d deleted_files=%d num_goroutine=%d alloc_mb=%.2f",
		sequence,
		stats.Uptime.Hours(),
		stats.QueueDepth,
		stats.PeakQueueDepth,
		stats.Processed,
		stats.Suppressed,
		stats.Dropped,
		stats.Deletions,
		runtime.NumGoroutine(),
		float64(memStats.Alloc)/(1000*1000),
	)

	l.dispatch(logRecord{
		Text:      text,
		Level:     LevelInfo,
		TimeStamp: now,
	})
}
