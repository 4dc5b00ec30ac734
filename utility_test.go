// FILE: lixenwraith/runlog/utility_test.go
package runlog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{"  info  ", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"fatal", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := Level(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, level)
			}
		})
	}
}

func TestLevelToString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelToString(LevelDebug))
	assert.Equal(t, "INFO", LevelToString(LevelInfo))
	assert.Equal(t, "WARN", LevelToString(LevelWarn))
	assert.Equal(t, "ERROR", LevelToString(LevelError))
	assert.Equal(t, "LEVEL(2)", LevelToString(2))
}

func TestParseKeyValue(t *testing.T) {
	key, value, err := parseKeyValue(" directory = /var/log/a=b ")
	require.NoError(t, err)
	assert.Equal(t, "directory", key)
	assert.Equal(t, "/var/log/a=b", value)

	_, _, err = parseKeyValue("novalue")
	assert.Error(t, err)

	_, _, err = parseKeyValue("=x")
	assert.Error(t, err)
}

func TestFmtErrorfPrefix(t *testing.T) {
	assert.Equal(t, "runlog: bad 1", fmtErrorf("bad %d", 1).Error())
	assert.Equal(t, "runlog: once", fmtErrorf("runlog: once").Error())
}

func TestCombineErrors(t *testing.T) {
	e1 := errors.New("first")
	e2 := errors.New("second")

	assert.NoError(t, combineErrors(nil, nil))
	assert.Equal(t, e1, combineErrors(e1, nil))
	assert.Equal(t, e2, combineErrors(nil, e2))

	combined := combineErrors(e1, e2)
	assert.Equal(t, "first; second", combined.Error())
	assert.ErrorIs(t, combined, e2)
}

func TestApplyOverride(t *testing.T) {
	logger := NewLogger()
	require.NoError(t, logger.ApplyConfig(DefaultConfig()))

	err := logger.ApplyOverride(
		"name=svc",
		"retention_count=5",
		"verbose=true",
		"timestamp_format=15:04:05",
		"crash_directory=/tmp/crash",
	)
	require.NoError(t, err)

	cfg := logger.GetConfig()
	assert.Equal(t, "svc", cfg.Name)
	assert.Equal(t, int64(5), cfg.RetentionCount)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "15:04:05", cfg.TimestampFormat)
	assert.Equal(t, "/tmp/crash", cfg.CrashDirectory)
}

func TestApplyOverrideErrors(t *testing.T) {
	logger := NewLogger()
	require.NoError(t, logger.ApplyConfig(DefaultConfig()))

	err := logger.ApplyOverride("bogus=1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown configuration key 'bogus'")

	err = logger.ApplyOverride("retention_count=many", "verbose=maybe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple configuration errors")
	assert.Contains(t, err.Error(), "retention_count")
	assert.Contains(t, err.Error(), "verbose")

	// Failed overrides leave the configuration untouched
	assert.Equal(t, int64(10), logger.GetConfig().RetentionCount)

	err = logger.ApplyOverride("retention_count=0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
