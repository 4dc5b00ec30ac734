//go:build !windows

package runlog

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleDebugChannelSanitizes(t *testing.T) {
	var buf bytes.Buffer
	ch := newConsoleDebugChannel(&buf, true)

	assert.True(t, ch.Attached())
	ch.Output("red \x1b[31mtext\r\nnext")

	assert.Equal(t, "red <1b>[31mtext\nnext\n", buf.String())
}

func TestTracerAttached(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   bool
	}{
		{"untraced", "Name:\tapp\nState:\tR (running)\nTracerPid:\t0\nUid:\t0\n", false},
		{"traced", "Name:\tapp\nTracerPid:\t4242\n", true},
		{"missing field", "Name:\tapp\n", false},
		{"malformed", "TracerPid:\tx\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tracerAttached(strings.NewReader(tt.status)))
		})
	}
}

func TestConsoleDebugChannelIsNotDebugger(t *testing.T) {
	var buf bytes.Buffer
	ch := newConsoleDebugChannel(&buf, true)
	if ch.DebuggerAttached() {
		t.Skip("test process is traced")
	}
	assert.False(t, ch.SharesStderr())

	logger, _ := startTestLogger(t, ch, "break_on_error=true", "mirror_debug=true")
	defer logger.Shutdown()

	breaks := breakRecorder(logger)
	logger.Errorf("boom")
	require.NoError(t, logger.Flush(time.Second))

	assert.Empty(t, breaks())
	assert.Equal(t, "boom\n", buf.String())
}

func TestSystemDebugChannelSharesStderr(t *testing.T) {
	ch := newConsoleDebugChannel(os.Stderr, false)
	assert.True(t, ch.SharesStderr())
}
