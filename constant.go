// FILE: lixenwraith/runlog/constant.go
package runlog

import (
	"time"
)

// Log level constants, ordered by severity
const (
	LevelDebug int64 = -4
	LevelInfo  int64 = 0
	LevelWarn  int64 = 4
	LevelError int64 = 8
)

// Record limits
const (
	// MaxMessageSize is the upper bound in bytes of a rendered message
	MaxMessageSize = 8192
)

// Flood suppression
const (
	// Occurrences of one message kept before suppression starts
	maxRepeatedLines = 30
	// Checksum delta under which two renderings count as the same message
	maxCharVariation = 255 * 3
)

// Timers
const (
	// Worker wait before an idle wake
	defaultPollInterval = 100 * time.Millisecond
)

// File naming
const (
	// Layout of the run stamp embedded in log file names, without the dot
	runStampLayout = "20060102150405.000"
	// Separator between the name prefix and the run stamp
	runStampSeparator = "_"
)
