package runlog

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single", "hello", []string{"hello"}},
		{"empty", "", []string{""}},
		{"lf", "a\nb", []string{"a", "b"}},
		{"crlf", "a\r\nb\nc", []string{"a", "b", "c"}},
		{"trailing break", "a\n", []string{"a", ""}},
		{"lone cr kept", "a\rb", []string{"a\rb"}},
		{"blank lines", "a\n\nb", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slices.Collect(chunkLines(tt.text)))
		})
	}
}

func TestChunkLinesEarlyStop(t *testing.T) {
	var got []string
	for line := range chunkLines("a\nb\nc") {
		got = append(got, line)
		if line == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestTimePrefix(t *testing.T) {
	ts := time.Date(2024, 3, 5, 14, 7, 9, 42*int(time.Millisecond), time.UTC)
	assert.Equal(t, "14:07:09.042: ", timePrefix(ts, "15:04:05.000"))
}

func TestLoggerMultiLineRecord(t *testing.T) {
	logger, _ := createTestLogger(t)
	defer logger.Shutdown()

	viewer := NewChannelViewer(10)
	logger.AttachViewer(viewer)

	logger.Warnf("a\r\nb\nc")

	lines := readLogLines(t, logger)
	require.Len(t, lines, 3)

	prefix := lines[0][:len(lines[0])-1]
	assert.Equal(t, prefix+"a", lines[0])
	assert.Equal(t, prefix+"b", lines[1])
	assert.Equal(t, prefix+"c", lines[2])

	for _, want := range lines {
		select {
		case got := <-viewer.Lines():
			assert.Equal(t, want, got.Line)
			assert.Equal(t, LevelWarn, got.Level)
		case <-time.After(time.Second):
			t.Fatal("viewer line not delivered")
		}
	}
	assert.Equal(t, uint64(1), logger.Stats().Processed)
}
