package runlog

// debugChannel is the platform debug output mirrored by the worker
type debugChannel interface {
	// Attached reports whether a debugger or interactive console receives Output
	Attached() bool
	// DebuggerAttached reports whether a debugger is tracing the process
	DebuggerAttached() bool
	// SharesStderr reports whether Output lands on the process stderr
	SharesStderr() bool
	// Output writes raw record text to the channel
	Output(text string)
}

// nopDebugChannel is used when no platform channel is available
type nopDebugChannel struct{}

func (nopDebugChannel) Attached() bool { return false }

func (nopDebugChannel) DebuggerAttached() bool { return false }

func (nopDebugChannel) SharesStderr() bool { return false }

func (nopDebugChannel) Output(string) {}
