package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferDelimiter(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"semicolon", "a;b\n1;2\n", ";", true},
		{"colon", "a:b\n1:2\n", ":", true},
		{"ignores quoted separators", "a|b\n\"x|y\"|2\n", "|", true},
		{"blank lines skipped", "a,b\n\n1,2\n\r\n3,4\r\n", ",", true},
		{"hyphen is never a separator", "555-1234\n555-9999\n", "", false},
		{"inconsistent counts", "a,b\n1,2,3\n", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := inferDelimiter(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSniffDelimiter(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 9; i++ {
		b.WriteString("x;y;z\n")
	}
	b.WriteString("x;y\n")

	got, ok := sniffDelimiter(b.String())
	assert.True(t, ok)
	assert.Equal(t, ";", got)

	_, ok = sniffDelimiter("a;b\nc\nd;e;f\n")
	assert.False(t, ok, "share below threshold")
}

func TestSniffDelimiter_BoundedSample(t *testing.T) {
	var b strings.Builder
	for b.Len() < SniffSampleSize {
		b.WriteString("1|2|3\n")
	}
	// Anything past the sample must not affect the result.
	for i := 0; i < 5000; i++ {
		b.WriteString("1,2\n")
	}

	got, ok := sniffDelimiter(b.String())
	assert.True(t, ok)
	assert.Equal(t, "|", got)
}

func TestDetectDelimiter(t *testing.T) {
	d, how, ok := detectDelimiter("a,b\n1,2\n")
	assert.True(t, ok)
	assert.Equal(t, ",", d)
	assert.Equal(t, DetectionInferred, how)

	d, how, ok = detectDelimiter("telefono\n5551234\n")
	assert.True(t, ok)
	assert.Equal(t, ",", d)
	assert.Equal(t, DetectionSingleColumn, how)

	_, how, ok = detectDelimiter("a,b\nc\nd;e;f\n")
	assert.False(t, ok)
	assert.Equal(t, DetectionNone, how)
}

func TestPickPreferred(t *testing.T) {
	assert.Equal(t, byte(','), pickPreferred(map[byte]int{' ': 3, ',': 1, ';': 1}))
	assert.Equal(t, byte('\t'), pickPreferred(map[byte]int{';': 1, '\t': 1}))
	assert.Equal(t, byte('#'), pickPreferred(map[byte]int{'#': 2, '~': 1}))
	assert.Equal(t, byte('#'), pickPreferred(map[byte]int{'~': 2, '#': 2}))
}
