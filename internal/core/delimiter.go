package core

// delimiter.go guesses the field separator of delimited text.
//
// Automatic detection runs two strategies in order:
//
//  1. inferDelimiter scans the whole document and accepts a character only
//     if it splits every non-blank line into the same number of fields.
//  2. sniffDelimiter looks at the first SniffSampleSize bytes, restricted to
//     the common separators, and picks the one whose per-line count is the
//     most consistent.
//
// Characters inside double-quoted fields are ignored by both.

import (
	"sort"
	"strings"
)

// SniffSampleSize is the number of leading bytes examined by the fallback sniffer.
const SniffSampleSize = 10000

// sniffThreshold is the minimum share of sample lines that must agree on
// the modal field count for the sniffer to accept a separator.
const sniffThreshold = 0.9

// sniffCandidates is the restricted separator set used by the fallback.
var sniffCandidates = []byte{',', ';', '\t', '|'}

// preferredDelimiters breaks ties between equally consistent separators.
var preferredDelimiters = []byte{',', '\t', ';', '|', ':', ' '}

// isInferCandidate reports whether c may act as a separator during
// whole-document inference. Letters, digits, quotes and the characters
// that commonly appear inside numbers are never separators.
func isInferCandidate(c byte) bool {
	switch {
	case c == '\t' || c == ' ':
		return true
	case c < 0x21 || c > 0x7e:
		return false
	case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return false
	case c == '"' || c == '\'' || c == '.' || c == '-' || c == '+' || c == '_':
		return false
	}
	return true
}

// splitLines returns the non-blank lines of text. A trailing '\r' is dropped.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSuffix(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// countUnquoted tallies every byte of line that appears outside double quotes.
func countUnquoted(line string, counts *[256]int) {
	inQuotes := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes {
			counts[c]++
		}
	}
}

// lineCounts returns, for each line, the unquoted count of every byte.
func lineCounts(lines []string) [][256]int {
	out := make([][256]int, len(lines))
	for i, l := range lines {
		countUnquoted(l, &out[i])
	}
	return out
}

// modeShare returns the most common non-zero per-line count of c and the
// fraction of lines that have exactly that count.
func modeShare(counts [][256]int, c byte) (mode int, share float64) {
	if len(counts) == 0 {
		return 0, 0
	}
	freq := make(map[int]int)
	for _, lc := range counts {
		freq[lc[c]]++
	}
	best, bestN := 0, 0
	for n, f := range freq {
		if n == 0 {
			continue
		}
		if f > bestN || (f == bestN && n > best) {
			best, bestN = n, f
		}
	}
	if best == 0 {
		return 0, 0
	}
	return best, float64(bestN) / float64(len(counts))
}

// pickPreferred returns the first preferred delimiter present in set.
// Otherwise it falls back to the candidate with the largest field count,
// lowest byte value on ties.
func pickPreferred(set map[byte]int) byte {
	for _, d := range preferredDelimiters {
		if _, ok := set[d]; ok {
			return d
		}
	}
	keys := make([]int, 0, len(set))
	for c := range set {
		keys = append(keys, int(c))
	}
	sort.Ints(keys)
	best := byte(keys[0])
	for _, k := range keys[1:] {
		if set[byte(k)] > set[best] {
			best = byte(k)
		}
	}
	return best
}

// inferDelimiter scans every line of text for a separator that splits all
// lines into the same number of fields.
func inferDelimiter(text string) (string, bool) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return "", false
	}
	counts := lineCounts(lines)

	consistent := make(map[byte]int)
	for c := 0; c < 256; c++ {
		b := byte(c)
		if !isInferCandidate(b) {
			continue
		}
		mode, share := modeShare(counts, b)
		if mode > 0 && share == 1 {
			consistent[b] = mode
		}
	}
	if len(consistent) == 0 {
		return "", false
	}
	return string(pickPreferred(consistent)), true
}

// sniffDelimiter examines a bounded sample with the restricted candidate set
// and returns the separator whose split count is the most consistent.
func sniffDelimiter(sample string) (string, bool) {
	if len(sample) > SniffSampleSize {
		sample = sample[:SniffSampleSize]
		// Drop the partial last line.
		if i := strings.LastIndexByte(sample, '\n'); i > 0 {
			sample = sample[:i]
		}
	}
	lines := splitLines(sample)
	if len(lines) == 0 {
		return "", false
	}
	counts := lineCounts(lines)

	bestShare := 0.0
	winners := make(map[byte]int)
	for _, c := range sniffCandidates {
		mode, share := modeShare(counts, c)
		if mode == 0 || share < sniffThreshold {
			continue
		}
		switch {
		case share > bestShare:
			bestShare = share
			winners = map[byte]int{c: mode}
		case share == bestShare:
			winners[c] = mode
		}
	}
	if len(winners) == 0 {
		return "", false
	}
	return string(pickPreferred(winners)), true
}

// containsAny reports whether any sniff candidate appears in text.
func containsAny(text string) bool {
	for _, c := range sniffCandidates {
		if strings.IndexByte(text, c) >= 0 {
			return true
		}
	}
	return false
}

// detectDelimiter runs inference then sniffing. A document that contains
// none of the common separators is a single-column table.
func detectDelimiter(text string) (string, Detection, bool) {
	if d, ok := inferDelimiter(text); ok {
		return d, DetectionInferred, true
	}
	if d, ok := sniffDelimiter(text); ok {
		return d, DetectionSniffed, true
	}
	if strings.TrimSpace(text) != "" && !containsAny(text) {
		return ",", DetectionSingleColumn, true
	}
	return "", DetectionNone, false
}
