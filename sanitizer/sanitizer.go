// Package sanitizer neutralizes characters that would corrupt a terminal when
// log text is echoed to it. Rules pair a filter mask with a transform.
package sanitizer

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Filter flags for character matching
const (
	FilterNonPrintable uint64 = 1 << iota // Runes rejected by strconv.IsPrint
	FilterControl                         // Control characters (unicode.IsControl)
)

// Transform applied to a matched character
const (
	TransformStrip     uint64 = 1 << iota // Drop the character
	TransformHexEncode                    // Replace with its UTF-8 bytes as "<xxyy>"
)

// PolicyPreset names a pre-configured rule set
type PolicyPreset string

const (
	PolicyRaw PolicyPreset = "raw" // No rules, text passes through
	PolicyTxt PolicyPreset = "txt" // Hex encode everything not printable
)

type rule struct {
	filter    uint64
	transform uint64
}

// Sanitizer applies its rules in order, the first matching rule wins.
// It reuses an internal buffer and is not safe for concurrent use.
type Sanitizer struct {
	rules []rule
	buf   []byte
}

// New creates a Sanitizer without rules
func New() *Sanitizer {
	return &Sanitizer{buf: make([]byte, 0, 256)}
}

// Rule appends a custom rule
func (s *Sanitizer) Rule(filter, transform uint64) *Sanitizer {
	s.rules = append(s.rules, rule{filter: filter, transform: transform})
	return s
}

// Policy appends the rules of a preset
func (s *Sanitizer) Policy(preset PolicyPreset) *Sanitizer {
	if preset == PolicyTxt {
		s.rules = append(s.rules, rule{filter: FilterNonPrintable, transform: TransformHexEncode})
	}
	return s
}

// Sanitize returns data with every rule applied
func (s *Sanitizer) Sanitize(data string) string {
	if len(s.rules) == 0 {
		return data
	}

	s.buf = s.buf[:0]
	for _, r := range data {
		s.buf = s.appendRune(s.buf, r)
	}
	return string(s.buf)
}

// appendRune appends r, transformed by the first rule whose filter matches
func (s *Sanitizer) appendRune(buf []byte, r rune) []byte {
	for _, rl := range s.rules {
		if !matches(r, rl.filter) {
			continue
		}
		if rl.transform&TransformHexEncode != 0 {
			return appendHex(buf, r)
		}
		return buf
	}
	return utf8.AppendRune(buf, r)
}

func matches(r rune, mask uint64) bool {
	if mask&FilterNonPrintable != 0 && !strconv.IsPrint(r) {
		return true
	}
	return mask&FilterControl != 0 && unicode.IsControl(r)
}

func appendHex(buf []byte, r rune) []byte {
	const digits = "0123456789abcdef"
	var enc [utf8.UTFMax]byte
	n := utf8.EncodeRune(enc[:], r)
	buf = append(buf, '<')
	for _, b := range enc[:n] {
		buf = append(buf, digits[b>>4], digits[b&0x0f])
	}
	return append(buf, '>')
}
