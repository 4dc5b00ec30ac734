// FILE: lixenwraith/runlog/format.go
package runlog

import (
	"bytes"

	"github.com/davecgh/go-spew/spew"
)

// dumper renders values for Dump with data structure information
var dumper = &spew.ConfigState{
	Indent:                  " ",
	MaxDepth:                10,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// dumpValue renders v as a multi-line structural dump
func dumpValue(v any) string {
	var b bytes.Buffer
	dumper.Fdump(&b, v)
	return string(bytes.TrimSpace(b.Bytes()))
}

// Dump logs label followed by a structural dump of v, one line per field.
// All lines share the record's timestamp; dumps with the same label count
// as the same message for flood suppression.
func (l *Logger) Dump(level int64, label string, v any) {
	defer func() {
		if r := recover(); r != nil {
			l.internalLog("recovered panic while dumping value: %v\n", r)
		}
	}()

	record := newRecord(level, "dump: "+label, nil)
	record.Text = truncateMessage(label + ":\n" + dumpValue(v))
	l.submit(record)
}
