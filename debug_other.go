//go:build !windows

package runlog

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/lixenwraith/runlog/sanitizer"
)

// procStatusPath exposes the tracer of the current process on Linux
const procStatusPath = "/proc/self/status"

// systemDebugChannel mirrors records to stderr when it is an interactive terminal
type systemDebugChannel struct {
	mu       sync.Mutex
	out      io.Writer
	attached bool
	san      *sanitizer.Sanitizer
}

func newSystemDebugChannel() debugChannel {
	return newConsoleDebugChannel(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())))
}

// newConsoleDebugChannel creates a channel writing sanitized lines to out
func newConsoleDebugChannel(out io.Writer, attached bool) *systemDebugChannel {
	return &systemDebugChannel{
		out:      out,
		attached: attached,
		san:      sanitizer.New().Policy(sanitizer.PolicyTxt),
	}
}

// Attached implements debugChannel
func (d *systemDebugChannel) Attached() bool {
	return d.attached
}

// DebuggerAttached reports a non-zero TracerPid. Systems without procfs
// never report a debugger.
func (d *systemDebugChannel) DebuggerAttached() bool {
	f, err := os.Open(procStatusPath)
	if err != nil {
		return false
	}
	defer f.Close()
	return tracerAttached(f)
}

// SharesStderr implements debugChannel
func (d *systemDebugChannel) SharesStderr() bool {
	f, ok := d.out.(*os.File)
	return ok && f == os.Stderr
}

// Output writes each line of text, with control sequences neutralized
func (d *systemDebugChannel) Output(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	buf := make([]byte, 0, len(text)+1)
	for line := range chunkLines(text) {
		buf = append(buf, d.san.Sanitize(line)...)
		buf = append(buf, '\n')
	}
	_, _ = d.out.Write(buf)
}

// tracerAttached scans a proc status file for a non-zero TracerPid
func tracerAttached(status io.Reader) bool {
	scanner := bufio.NewScanner(status)
	for scanner.Scan() {
		value, found := strings.CutPrefix(scanner.Text(), "TracerPid:")
		if !found {
			continue
		}
		pid, err := strconv.Atoi(strings.TrimSpace(value))
		return err == nil && pid != 0
	}
	return false
}
