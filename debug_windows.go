//go:build windows

package runlog

import (
	"strings"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32            = windows.NewLazySystemDLL("kernel32.dll")
	procIsDebuggerPresent  = modkernel32.NewProc("IsDebuggerPresent")
	procOutputDebugStringW = modkernel32.NewProc("OutputDebugStringW")
)

// systemDebugChannel writes to OutputDebugStringW when a debugger is present
type systemDebugChannel struct {
	mu sync.Mutex
}

func newSystemDebugChannel() debugChannel {
	if procIsDebuggerPresent.Find() != nil || procOutputDebugStringW.Find() != nil {
		return nopDebugChannel{}
	}
	return &systemDebugChannel{}
}

// Attached implements debugChannel
func (d *systemDebugChannel) Attached() bool {
	r, _, _ := procIsDebuggerPresent.Call()
	return r != 0
}

// DebuggerAttached implements debugChannel
func (d *systemDebugChannel) DebuggerAttached() bool {
	return d.Attached()
}

// SharesStderr implements debugChannel
func (d *systemDebugChannel) SharesStderr() bool {
	return false
}

// Output converts text to UTF-16 and sends it to the debugger
func (d *systemDebugChannel) Output(text string) {
	// UTF16PtrFromString rejects embedded NULs
	text = strings.ReplaceAll(text, "\x00", "")
	wide, err := windows.UTF16PtrFromString(text + "\n")
	if err != nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	_, _, _ = procOutputDebugStringW.Call(uintptr(unsafe.Pointer(wide)))
}
