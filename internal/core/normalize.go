package core

import "strings"

// Normalize turns a cell into its comparison key: the string form with
// surrounding whitespace removed and, when digitsOnly is set, every
// character other than 0-9 dropped. Null normalizes to "".
func Normalize(c Cell, digitsOnly bool) string {
	return NormalizeString(c.String(), digitsOnly)
}

// NormalizeString applies the normalization rule to raw text.
func NormalizeString(s string, digitsOnly bool) string {
	s = strings.TrimSpace(s)
	if !digitsOnly {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
