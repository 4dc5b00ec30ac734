// FILE: lixenwraith/runlog/sanitizer/sanitizer_test.go
package sanitizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizerPolicies(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		policy   PolicyPreset
		expected string
	}{
		{
			name:     "raw passes through",
			input:    "hello\x00world\n",
			policy:   PolicyRaw,
			expected: "hello\x00world\n",
		},
		{
			name:     "txt hex encodes null byte",
			input:    "test\x00data",
			policy:   PolicyTxt,
			expected: "test<00>data",
		},
		{
			name:     "txt hex encodes terminal escape",
			input:    "red\x1b[31mtext",
			policy:   PolicyTxt,
			expected: "red<1b>[31mtext",
		},
		{
			name:     "txt preserves printable and UTF-8",
			input:    "Hello 世界 ✓ 123!@#",
			policy:   PolicyTxt,
			expected: "Hello 世界 ✓ 123!@#",
		},
		{
			name:     "txt hex encodes multi-byte control",
			input:    "line1\u0085line2",
			policy:   PolicyTxt,
			expected: "line1<c285>line2",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := New().Policy(tc.policy)
			assert.Equal(t, tc.expected, s.Sanitize(tc.input))
		})
	}
}

func TestSanitizerRuleOrder(t *testing.T) {
	// First matching rule wins
	s := New().
		Rule(FilterControl, TransformStrip).
		Rule(FilterNonPrintable, TransformHexEncode)

	assert.Equal(t, "ab", s.Sanitize("a\x07b"))
	assert.Equal(t, "a<c2a0>b", s.Sanitize("a\u00a0b"))
}

func TestSanitizerReuse(t *testing.T) {
	s := New().Policy(PolicyTxt)

	assert.Equal(t, "first<00>", s.Sanitize("first\x00"))
	assert.Equal(t, "second", s.Sanitize("second"))
}

func BenchmarkSanitizer(b *testing.B) {
	input := strings.Repeat("normal text\x00\n\t", 100)

	for _, policy := range []PolicyPreset{PolicyRaw, PolicyTxt} {
		b.Run(string(policy), func(b *testing.B) {
			s := New().Policy(policy)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = s.Sanitize(input)
			}
		})
	}
}
