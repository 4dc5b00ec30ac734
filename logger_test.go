// FILE: lixenwraith/runlog/logger_test.go
package runlog

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestLogger creates a started logger writing to a temp directory
func createTestLogger(t *testing.T, overrides ...string) (*Logger, string) {
	t.Helper()
	return startTestLogger(t, nopDebugChannel{}, overrides...)
}

// startTestLogger creates a started logger mirroring to dbg
func startTestLogger(t *testing.T, dbg debugChannel, overrides ...string) (*Logger, string) {
	t.Helper()
	tmpDir := t.TempDir()
	logger := NewLogger()
	logger.debug = dbg

	cfg := DefaultConfig()
	cfg.Directory = tmpDir
	cfg.PollIntervalMs = 10
	cfg.MirrorDebug = false

	require.NoError(t, logger.ApplyConfig(cfg))
	if len(overrides) > 0 {
		require.NoError(t, logger.ApplyOverride(overrides...))
	}

	require.NoError(t, logger.Start())
	return logger, tmpDir
}

// readLogLines flushes the logger and returns the lines of its current file
func readLogLines(t *testing.T, logger *Logger) []string {
	t.Helper()
	require.NoError(t, logger.Flush(time.Second))
	return readFileLines(t, logger.CurrentLog())
}

// readFileLines returns the lines of a log file
func readFileLines(t *testing.T, path string) []string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := strings.TrimSuffix(string(content), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// messageOf strips the timestamp prefix of a line
func messageOf(line string) string {
	_, msg, found := strings.Cut(line, ": ")
	if !found {
		return line
	}
	return msg
}

// fallbackRecorder collects records routed to the fallback handler
type fallbackRecorder struct {
	mu      sync.Mutex
	entries []string
	levels  []int64
}

func (f *fallbackRecorder) handle(level int64, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, text)
	f.levels = append(f.levels, level)
}

func (f *fallbackRecorder) snapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.entries...)
}

// TestNewLogger verifies that a new logger is created with the correct initial state
func TestNewLogger(t *testing.T) {
	logger := NewLogger()

	assert.NotNil(t, logger)
	assert.NotNil(t, logger.queue)
	assert.False(t, logger.state.IsInitialized.Load())
	assert.False(t, logger.state.Started.Load())
	assert.Empty(t, logger.PreviousLog())
	assert.Empty(t, logger.CurrentLog())
}

// TestApplyConfig verifies that starting a configured logger creates a run-named file
func TestApplyConfig(t *testing.T) {
	logger, tmpDir := createTestLogger(t)
	defer logger.Shutdown()

	assert.True(t, logger.state.IsInitialized.Load())
	assert.True(t, logger.state.Started.Load())

	logs, err := listRunLogs(tmpDir, "log", "txt")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, logs[0].name, logger.fileName)
	assert.True(t, strings.HasPrefix(logs[0].name, "log_"))
	assert.True(t, strings.HasSuffix(logs[0].name, ".txt"))
}

func TestApplyConfigInvalid(t *testing.T) {
	logger := NewLogger()

	err := logger.ApplyConfig(nil)
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.RetentionCount = 0
	err = logger.ApplyConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retention_count must be at least 1")
	assert.False(t, logger.state.IsInitialized.Load())
}

func TestLoggerWritesLines(t *testing.T) {
	logger, _ := createTestLogger(t)
	defer logger.Shutdown()

	logger.Infof("service %s started on port %d", "api", 8080)
	logger.Warnf("disk usage at %d%%", 91)
	logger.Errorf("request failed")

	lines := readLogLines(t, logger)
	require.Len(t, lines, 3)
	assert.Equal(t, "service api started on port 8080", messageOf(lines[0]))
	assert.Equal(t, "disk usage at 91%", messageOf(lines[1]))
	assert.Equal(t, "request failed", messageOf(lines[2]))

	// "HH:MM:SS.mmm: " prefix
	for _, line := range lines {
		require.Greater(t, len(line), 14)
		_, err := time.Parse("15:04:05.000", line[:12])
		assert.NoError(t, err, "line %q", line)
		assert.Equal(t, ": ", line[12:14])
	}
}

func TestLoggerTemplateWithoutArgs(t *testing.T) {
	logger, _ := createTestLogger(t)
	defer logger.Shutdown()

	logger.Infof("100% literal %d")

	lines := readLogLines(t, logger)
	require.Len(t, lines, 1)
	assert.Equal(t, "100% literal %d", messageOf(lines[0]))
}

func TestLoggerDebugRequiresVerbose(t *testing.T) {
	t.Run("quiet", func(t *testing.T) {
		logger, _ := createTestLogger(t)
		defer logger.Shutdown()

		logger.Debugf("hidden detail")
		logger.Infof("visible")

		lines := readLogLines(t, logger)
		require.Len(t, lines, 1)
		assert.Equal(t, "visible", messageOf(lines[0]))
	})

	t.Run("verbose", func(t *testing.T) {
		logger, _ := createTestLogger(t, "verbose=true")
		defer logger.Shutdown()

		logger.Debugf("shown detail")

		lines := readLogLines(t, logger)
		require.Len(t, lines, 1)
		assert.Equal(t, "shown detail", messageOf(lines[0]))
	})
}

func TestLoggerTruncatesLongMessages(t *testing.T) {
	logger, _ := createTestLogger(t)
	defer logger.Shutdown()

	logger.Infof("%s", strings.Repeat("x", MaxMessageSize+500))

	lines := readLogLines(t, logger)
	require.Len(t, lines, 1)
	assert.Len(t, messageOf(lines[0]), MaxMessageSize)
}

func TestTruncateMessageRuneBoundary(t *testing.T) {
	text := strings.Repeat("a", MaxMessageSize-1) + "é"
	got := truncateMessage(text)
	assert.Len(t, got, MaxMessageSize-1)
	assert.Equal(t, "short", truncateMessage("short"))
}

// TestLoggerConcurrentOrdering checks that each producer's records keep their order
func TestLoggerConcurrentOrdering(t *testing.T) {
	logger, _ := createTestLogger(t, "unfiltered=true")
	defer logger.Shutdown()

	const producers = 8
	const perProducer = 50

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				logger.Infof("producer %d seq %d", id, i)
			}
		}(p)
	}
	wg.Wait()

	lines := readLogLines(t, logger)
	require.Len(t, lines, producers*perProducer)

	next := make(map[int]int)
	for _, line := range lines {
		var id, seq int
		_, err := fmt.Sscanf(messageOf(line), "producer %d seq %d", &id, &seq)
		require.NoError(t, err)
		assert.Equal(t, next[id], seq, "producer %d out of order", id)
		next[id] = seq + 1
	}
	assert.Equal(t, uint64(producers*perProducer), logger.Stats().Processed)
}

func TestLoggerPreviousLog(t *testing.T) {
	tmpDir := t.TempDir()

	first := NewLogger()
	first.debug = nopDebugChannel{}
	cfg := DefaultConfig()
	cfg.Directory = tmpDir
	cfg.PollIntervalMs = 10
	require.NoError(t, first.ApplyConfig(cfg))
	require.NoError(t, first.Start())
	firstName := first.fileName
	first.Infof("first run")
	require.NoError(t, first.Shutdown())
	assert.Empty(t, first.PreviousLog())

	// Run stamps have millisecond resolution
	time.Sleep(5 * time.Millisecond)

	second := NewLogger()
	second.debug = nopDebugChannel{}
	require.NoError(t, second.ApplyConfig(cfg))
	require.NoError(t, second.Start())
	defer second.Shutdown()

	assert.Equal(t, firstName, second.PreviousLog())
	assert.NotEqual(t, firstName, second.fileName)
}
