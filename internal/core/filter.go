package core

import (
	"sort"
	"strings"
)

// SummaryRow is one line of the duplicate summary: a normalized value that
// removed at least one row of A, with its occurrence counts.
type SummaryRow struct {
	Value    string `json:"numero"`
	CountInA int    `json:"conteo_en_A"`
	CountInB int    `json:"conteo_en_B"`
}

// Counts are the aggregate row counts of a run.
type Counts struct {
	Total     int `json:"total"`
	Excluded  int `json:"excluded"`
	Remaining int `json:"remaining"`
}

// FilterResult is the output of Filter.
type FilterResult struct {
	// Filtered holds the rows of A that were kept, in their original order.
	Filtered *Table
	// Summary is sorted ascending by Value.
	Summary []SummaryRow
	Counts  Counts
}

// Filter removes from a every row whose normalized value in colA appears
// among the normalized non-null values of colB in b. Neither table is
// modified. Errors are always *EngineError.
func Filter(a *Table, colA ColumnRef, b *Table, colB ColumnRef, digitsOnly bool) (*FilterResult, error) {
	switch {
	case a == nil:
		return nil, &EngineError{Kind: ErrMissingInput, Input: "A"}
	case b == nil:
		return nil, &EngineError{Kind: ErrMissingInput, Input: "B"}
	}

	idxA, ok := colA.Resolve(a)
	if !ok {
		return nil, &EngineError{Kind: ErrMissingColumnSelection, Input: "A", Column: colA.String()}
	}
	idxB, ok := colB.Resolve(b)
	if !ok {
		return nil, &EngineError{Kind: ErrMissingColumnSelection, Input: "B", Column: colB.String()}
	}

	// Exclusion set, carrying the B occurrence count per value.
	countB := make(map[string]int)
	for _, row := range b.Rows {
		c := row[idxB]
		// Blank B values never exclude anything.
		if c.IsNull() || strings.TrimSpace(c.String()) == "" {
			continue
		}
		countB[Normalize(c, digitsOnly)]++
	}

	kept := make([][]Cell, 0, len(a.Rows))
	countA := make(map[string]int)
	for _, row := range a.Rows {
		key := Normalize(row[idxA], digitsOnly)
		if _, excluded := countB[key]; excluded {
			countA[key]++
			continue
		}
		kept = append(kept, row)
	}

	summary := make([]SummaryRow, 0, len(countA))
	for v, n := range countA {
		summary = append(summary, SummaryRow{Value: v, CountInA: n, CountInB: countB[v]})
	}
	sort.Slice(summary, func(i, j int) bool { return summary[i].Value < summary[j].Value })

	excluded := len(a.Rows) - len(kept)
	return &FilterResult{
		Filtered: &Table{
			Columns:   append([]string(nil), a.Columns...),
			Rows:      kept,
			Delimiter: a.Delimiter,
			Detection: a.Detection,
		},
		Summary: summary,
		Counts: Counts{
			Total:     len(a.Rows),
			Excluded:  excluded,
			Remaining: len(a.Rows) - excluded,
		},
	}, nil
}
