package runlog

import (
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
)

// Viewer receives every finished line. Implementations must not block;
// delivery order is the worker's processing order.
type Viewer interface {
	AddLine(level int64, line string)
}

// FallbackHandler receives records that bypass the queue: messages logged
// before Start and every message of a run whose log file failed to open
type FallbackHandler func(level int64, text string)

// BreakHook is invoked for error records when break_on_error is set and a
// debugger is attached
type BreakHook func(level int64, text string)

// defaultFallback writes the record to stderr
func defaultFallback(level int64, text string) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", LevelToString(level), text)
}

// defaultBreakHook traps into an attached debugger
func defaultBreakHook(int64, string) {
	runtime.Breakpoint()
}

// viewerHolder is the atomic value type wrapping the attached viewer
type viewerHolder struct {
	v Viewer
}

// AttachViewer installs v as the line viewer, replacing any previous one
func (l *Logger) AttachViewer(v Viewer) {
	if v == nil {
		l.viewer.Store(nil)
		return
	}
	l.viewer.Store(&viewerHolder{v: v})
}

// DetachViewer removes the attached viewer
func (l *Logger) DetachViewer() {
	l.viewer.Store(nil)
}

// SetFallback replaces the base fallback handler, nil restores the default
func (l *Logger) SetFallback(h FallbackHandler) {
	l.fallbackDefault.Store(h == nil)
	if h == nil {
		h = defaultFallback
	}
	l.fallback.Store(&h)
}

// SetBreakHook replaces the error break hook, nil restores the default
func (l *Logger) SetBreakHook(h BreakHook) {
	if h == nil {
		h = defaultBreakHook
	}
	l.breakHook.Store(&h)
}

// callFallback invokes the fallback handler, shielding the caller from panics
func (l *Logger) callFallback(level int64, text string) {
	defer func() {
		if r := recover(); r != nil {
			l.internalLog("recovered panic in fallback handler: %v\n", r)
		}
	}()
	if h := l.fallback.Load(); h != nil {
		(*h)(level, text)
	}
}

// dispatch writes a record through the chunker to the file and viewer
func (l *Logger) dispatch(r logRecord) {
	prefix := timePrefix(r.TimeStamp, l.getConfig().TimestampFormat)
	for line := range chunkLines(r.Text) {
		l.emitLine(r.Level, prefix, line)
	}
	l.state.TotalLogsProcessed.Add(1)
}

// emitLine writes one line to the log file and forwards it to the viewer
func (l *Logger) emitLine(level int64, prefix, text string) {
	msg := prefix + text
	l.writeLine(msg)

	if vh := l.viewer.Load(); vh != nil {
		l.notifyViewer(vh.v, level, msg)
	}
}

// writeLine appends msg and a newline to the log file under the file lock
func (l *Logger) writeLine(msg string) {
	c := l.getConfig()

	l.fileMu.Lock()
	needsRotation := c.MaxSizeKB > 0 && l.file != nil && l.fileSize > 0 &&
		l.fileSize+int64(len(msg))+1 > c.MaxSizeKB*1000
	l.fileMu.Unlock()

	if needsRotation {
		if err := l.rotateLogFile(); err != nil {
			l.internalLog("failed to rotate log file: %v\n", err)
		}
	}

	l.fileMu.Lock()
	defer l.fileMu.Unlock()

	if l.file == nil {
		l.state.DroppedLogs.Add(1)
		return
	}

	buf := make([]byte, 0, len(msg)+1)
	buf = append(buf, msg...)
	buf = append(buf, '\n')
	n, err := l.file.Write(buf)
	l.fileSize += int64(n)
	if n > 0 {
		l.fileDirty = true
	}
	if err != nil {
		l.state.DroppedLogs.Add(1)
		l.internalLog("failed to write to log file: %v\n", err)
	}
}

// notifyViewer delivers a line to the viewer, isolating the worker from its panics
func (l *Logger) notifyViewer(v Viewer, level int64, line string) {
	defer func() {
		if r := recover(); r != nil {
			l.internalLog("recovered panic in viewer: %v\n", r)
		}
	}()
	v.AddLine(level, line)
}

// mirrorDebug forwards the raw record to the platform debug channel and
// triggers the break hook for errors when a debugger is attached.
// output is false when the text would duplicate a line already bound for stderr.
func (l *Logger) mirrorDebug(r logRecord, output bool) {
	c := l.getConfig()

	if output && c.MirrorDebug && l.debug.Attached() {
		l.debug.Output(r.Text)
	}

	if c.BreakOnError && r.Level >= LevelError && l.debug.DebuggerAttached() {
		if h := l.breakHook.Load(); h != nil {
			(*h)(r.Level, r.Text)
		}
	}
}

// fallbackToStderr reports whether the default fallback and the debug
// channel both write to stderr
func (l *Logger) fallbackToStderr() bool {
	return l.fallbackDefault.Load() && l.debug.SharesStderr()
}

// ChannelViewer is a Viewer that hands lines to a buffered channel without
// blocking; lines arriving while the buffer is full are counted and dropped
type ChannelViewer struct {
	lines   chan ViewerLine
	dropped atomic.Uint64
}

// ViewerLine is a single line delivered to a ChannelViewer
type ViewerLine struct {
	Level int64
	Line  string
}

// NewChannelViewer creates a ChannelViewer with the given buffer size
func NewChannelViewer(buffer int) *ChannelViewer {
	if buffer < 1 {
		buffer = 1
	}
	return &ChannelViewer{lines: make(chan ViewerLine, buffer)}
}

// AddLine implements Viewer
func (cv *ChannelViewer) AddLine(level int64, line string) {
	select {
	case cv.lines <- ViewerLine{Level: level, Line: line}:
	default:
		cv.dropped.Add(1)
	}
}

// Lines returns the channel receiving delivered lines
func (cv *ChannelViewer) Lines() <-chan ViewerLine {
	return cv.lines
}

// Dropped returns the number of lines dropped on a full buffer
func (cv *ChannelViewer) Dropped() uint64 {
	return cv.dropped.Load()
}
