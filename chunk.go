package runlog

import (
	"iter"
	"strings"
	"time"
)

// chunkLines yields each line of text, splitting on "\n" with an optional
// preceding "\r". The remainder after the last break is always yielded.
func chunkLines(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := text
		for {
			i := strings.IndexByte(rest, '\n')
			if i < 0 {
				break
			}
			line := rest[:i]
			if i > 0 && line[i-1] == '\r' {
				line = line[:i-1]
			}
			if !yield(line) {
				return
			}
			rest = rest[i+1:]
		}
		yield(rest)
	}
}

// timePrefix renders the shared prefix placed before every line of a record
func timePrefix(ts time.Time, layout string) string {
	buf := make([]byte, 0, len(layout)+2)
	buf = ts.AppendFormat(buf, layout)
	buf = append(buf, ':', ' ')
	return string(buf)
}
