package core

import (
	"fmt"
	"strings"
	"testing"
)

// phoneList builds a delimited document with n data rows.
func phoneList(n int, sep string) []byte {
	var b strings.Builder
	b.WriteString("nombre" + sep + "telefono" + sep + "ciudad\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "Cliente %d%s(555) %03d-%04d%sLima\n", i, sep, i%1000, i, sep)
	}
	return []byte(b.String())
}

// ============================================================================
// Normalization Benchmarks
// ============================================================================

// BenchmarkNormalize benchmarks key normalization, called once per cell of
// both chosen columns.
func BenchmarkNormalize(b *testing.B) {
	cells := []Cell{
		StringCell("  555-1234  "),
		ParseCell("5551234"),
		StringCell("(555) 123-4567"),
		NullCell(),
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, c := range cells {
			Normalize(c, false)
		}
	}
}

// BenchmarkNormalize_DigitsOnly benchmarks the digits-only filter.
func BenchmarkNormalize_DigitsOnly(b *testing.B) {
	c := StringCell("+51 (555) 123-4567 ext. 89")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Normalize(c, true)
	}
}

// BenchmarkParseCell benchmarks cell classification for every parsed field.
func BenchmarkParseCell(b *testing.B) {
	raw := []string{"", "Ana", "5551234", "-12.5e3", "555-1234"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, s := range raw {
			ParseCell(s)
		}
	}
}

// ============================================================================
// Delimiter Detection Benchmarks
// ============================================================================

// BenchmarkDetectDelimiter_Inferred benchmarks whole-document inference.
func BenchmarkDetectDelimiter_Inferred(b *testing.B) {
	text := string(phoneList(5000, ";"))
	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		detectDelimiter(text)
	}
}

// BenchmarkDetectDelimiter_Sniffed benchmarks the bounded sniff fallback.
func BenchmarkDetectDelimiter_Sniffed(b *testing.B) {
	text := string(phoneList(5000, ",")) + "x,y,z,extra\n"
	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		detectDelimiter(text)
	}
}

// ============================================================================
// Load and Filter Benchmarks
// ============================================================================

// BenchmarkLoad benchmarks decoding, detection and parsing of a file.
func BenchmarkLoad(b *testing.B) {
	data := phoneList(10000, "|")
	opts := LoadOptions{Format: FormatHint{Mode: FormatAuto}, Header: HeaderInfer}
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Load(data, "a.csv", opts); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkFilter benchmarks filtering 10k rows against 2k values.
func BenchmarkFilter(b *testing.B) {
	opts := LoadOptions{Format: FormatHint{Mode: FormatComma}, Header: HeaderInfer}
	a, err := Load(phoneList(10000, ","), "a.csv", opts)
	if err != nil {
		b.Fatal(err)
	}
	bt, err := Load(phoneList(2000, ","), "b.csv", opts)
	if err != nil {
		b.Fatal(err)
	}
	col := ColumnByName("telefono")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Filter(a, col, bt, col, true); err != nil {
			b.Fatal(err)
		}
	}
}
