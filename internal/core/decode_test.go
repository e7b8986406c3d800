package core

import (
	"bytes"
	"testing"
	"testing/iotest"
)

func TestBOMSkipper(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello,world")...),
			expected: "hello,world",
		},
		{
			name:     "file without BOM",
			input:    []byte("hello,world"),
			expected: "hello,world",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "partial BOM at start",
			input:    []byte{0xEF, 0xBB, 'a', 'b', 'c'},
			expected: string([]byte{0xEF, 0xBB, 'a', 'b', 'c'}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if _, err := buf.ReadFrom(newBOMSkipper(bytes.NewReader(tt.input))); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if buf.String() != tt.expected {
				t.Errorf("got %q, want %q", buf.String(), tt.expected)
			}
		})
	}
}

func TestUTF8Sanitizer(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "valid ASCII",
			input:    []byte("hello,world"),
			expected: "hello,world",
		},
		{
			name:     "valid multibyte",
			input:    []byte("José,Müller"),
			expected: "José,Müller",
		},
		{
			name:     "invalid single byte replaced",
			input:    []byte{'h', 'e', 0x80, 'l', 'o'},
			expected: "he?lo",
		},
		{
			name:     "latin-1 byte replaced",
			input:    []byte{'J', 'o', 's', 0xE9},
			expected: "Jos?",
		},
		{
			name:     "truncated sequence at EOF",
			input:    []byte{'h', 0xC3},
			expected: "h?",
		},
		{
			name:     "empty input",
			input:    []byte{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if _, err := buf.ReadFrom(newUTF8Sanitizer(bytes.NewReader(tt.input))); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if buf.String() != tt.expected {
				t.Errorf("got %q, want %q", buf.String(), tt.expected)
			}
		})
	}
}

func TestUTF8Sanitizer_SplitAcrossReads(t *testing.T) {
	input := []byte("héllo")
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(newUTF8Sanitizer(iotest.OneByteReader(bytes.NewReader(input)))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "héllo" {
		t.Errorf("got %q, want %q", buf.String(), "héllo")
	}
}

func TestDecodeText(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("id,name\n1,Jos")...)
	input = append(input, 0xE9, '\n')
	original := append([]byte(nil), input...)

	got := decodeText(input)
	if got != "id,name\n1,Jos?\n" {
		t.Errorf("got %q", got)
	}
	if !bytes.Equal(input, original) {
		t.Error("decodeText modified its input")
	}
}
