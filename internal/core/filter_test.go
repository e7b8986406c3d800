package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table(t *testing.T, header []string, rows ...[]string) *Table {
	t.Helper()
	return NewTable(append([][]string{header}, rows...), true)
}

func TestFilter_RemovesMatchingRows(t *testing.T) {
	a := table(t, []string{"id", "tel"},
		[]string{"1", "7"}, []string{"2", "7"}, []string{"3", "9"})
	b := table(t, []string{"tel"},
		[]string{"7"}, []string{"7"}, []string{"8"})

	res, err := Filter(a, ColumnByName("tel"), b, ColumnByName("tel"), false)
	require.NoError(t, err)

	assert.Equal(t, Counts{Total: 3, Excluded: 2, Remaining: 1}, res.Counts)
	assert.Equal(t, []SummaryRow{{Value: "7", CountInA: 2, CountInB: 2}}, res.Summary)
	require.Equal(t, 1, res.Filtered.NumRows())
	assert.Equal(t, []string{"3", "9"}, cellStrings(res.Filtered.Rows[0]))
	assert.Equal(t, a.Columns, res.Filtered.Columns)
}

func TestFilter_NoOverlap(t *testing.T) {
	a := table(t, []string{"v"}, []string{"1"}, []string{"2"})
	b := table(t, []string{"v"}, []string{"3"})

	res, err := Filter(a, ColumnByName("v"), b, ColumnByName("v"), false)
	require.NoError(t, err)

	assert.Empty(t, res.Summary)
	assert.Equal(t, Counts{Total: 2, Excluded: 0, Remaining: 2}, res.Counts)
	assert.Equal(t, a.Rows, res.Filtered.Rows)
}

func TestFilter_DigitsOnly(t *testing.T) {
	a := table(t, []string{"tel"},
		[]string{"(555) 123-4567"}, []string{"555.123.4567"}, []string{"555-000-0000"})
	b := table(t, []string{"numero"}, []string{" 5551234567 "})

	res, err := Filter(a, ColumnByName("tel"), b, ColumnByName("numero"), true)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Counts.Excluded)
	assert.Equal(t, []SummaryRow{{Value: "5551234567", CountInA: 2, CountInB: 1}}, res.Summary)

	res, err = Filter(a, ColumnByName("tel"), b, ColumnByName("numero"), false)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Counts.Excluded, "formatting differences matter without digits-only")
}

func TestFilter_WhitespaceIsTrimmed(t *testing.T) {
	a := table(t, []string{"v"}, []string{"  abc "}, []string{"abd"})
	b := table(t, []string{"v"}, []string{"abc"})

	res, err := Filter(a, ColumnByName("v"), b, ColumnByName("v"), false)
	require.NoError(t, err)
	assert.Equal(t, []SummaryRow{{Value: "abc", CountInA: 1, CountInB: 1}}, res.Summary)
	assert.Equal(t, "abd", res.Filtered.Rows[0][0].String())
}

func TestFilter_NullsInBNeverMatch(t *testing.T) {
	a := table(t, []string{"id", "tel"}, []string{"1", ""}, []string{"2", "5"})
	b := table(t, []string{"tel", "x"}, []string{"", "y"}, []string{"5", "z"})

	res, err := Filter(a, ColumnByName("tel"), b, ColumnByName("tel"), false)
	require.NoError(t, err)

	assert.Equal(t, Counts{Total: 2, Excluded: 1, Remaining: 1}, res.Counts)
	assert.Equal(t, "1", res.Filtered.Rows[0][0].String(), "null A value kept when B has only null blanks")
}

func TestFilter_WhitespaceOnlyBNeverMatches(t *testing.T) {
	a := table(t, []string{"id", "tel"}, []string{"1", "555"}, []string{"2", ""}, []string{"3", "777"})
	b := table(t, []string{"tel", "x"}, []string{"  ", "1"}, []string{"999", "2"})
	require.Equal(t, CellString, b.Rows[0][0].Kind)

	for _, digitsOnly := range []bool{false, true} {
		res, err := Filter(a, ColumnByName("tel"), b, ColumnByName("tel"), digitsOnly)
		require.NoError(t, err)
		assert.Equal(t, Counts{Total: 3, Excluded: 0, Remaining: 3}, res.Counts, "digitsOnly=%v", digitsOnly)
		assert.Empty(t, res.Summary)
	}

	loaded, err := Load([]byte("tel;x\n  ;1\n999;2\n"), "b.csv", LoadOptions{Format: FormatHint{Mode: FormatAuto}, Header: HeaderInfer})
	require.NoError(t, err)
	res, err := Filter(a, ColumnByName("tel"), loaded, ColumnByName("tel"), false)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Counts.Excluded)
}

func TestFilter_DigitsOnlyEmptyKeyMatches(t *testing.T) {
	// A cell with no digits normalizes to "" and matches a B cell that
	// also reduces to "".
	a := table(t, []string{"v"}, []string{"n/a"}, []string{"12"})
	b := table(t, []string{"v"}, []string{"none"})

	res, err := Filter(a, ColumnByName("v"), b, ColumnByName("v"), true)
	require.NoError(t, err)
	assert.Equal(t, []SummaryRow{{Value: "", CountInA: 1, CountInB: 1}}, res.Summary)
	assert.Equal(t, "12", res.Filtered.Rows[0][0].String())
}

func TestFilter_SummarySortedByValue(t *testing.T) {
	a := table(t, []string{"v"}, []string{"b"}, []string{"10"}, []string{"9"}, []string{"a"}, []string{"B"})
	b := table(t, []string{"v"}, []string{"a"}, []string{"b"}, []string{"B"}, []string{"9"}, []string{"10"})

	res, err := Filter(a, ColumnByName("v"), b, ColumnByName("v"), false)
	require.NoError(t, err)

	var got []string
	for _, s := range res.Summary {
		got = append(got, s.Value)
	}
	assert.Equal(t, []string{"10", "9", "B", "a", "b"}, got)
	assert.Equal(t, 0, res.Filtered.NumRows())
}

func TestFilter_PreservesOrderAndInputs(t *testing.T) {
	a := table(t, []string{"v", "n"},
		[]string{"x", "1"}, []string{"y", "2"}, []string{"z", "3"}, []string{"y", "4"}, []string{"w", "5"})
	b := table(t, []string{"v"}, []string{"y"})
	beforeA := a.Records()
	beforeB := b.Records()

	res, err := Filter(a, ColumnByName("v"), b, ColumnByName("v"), false)
	require.NoError(t, err)

	var kept []string
	for _, row := range res.Filtered.Rows {
		kept = append(kept, row[1].String())
	}
	assert.Equal(t, []string{"1", "3", "5"}, kept)
	assert.Equal(t, beforeA, a.Records())
	assert.Equal(t, beforeB, b.Records())

	res.Filtered.Columns[0] = "changed"
	assert.Equal(t, "v", a.Columns[0])
}

func TestFilter_Idempotent(t *testing.T) {
	a := table(t, []string{"v"}, []string{"1"}, []string{"2"}, []string{"1"})
	b := table(t, []string{"v"}, []string{"1"})

	first, err := Filter(a, ColumnByName("v"), b, ColumnByName("v"), false)
	require.NoError(t, err)
	second, err := Filter(first.Filtered, ColumnByName("v"), b, ColumnByName("v"), false)
	require.NoError(t, err)

	assert.Equal(t, first.Filtered.Rows, second.Filtered.Rows)
	assert.Empty(t, second.Summary)
	assert.Equal(t, 0, second.Counts.Excluded)
}

func TestFilter_ByIndex(t *testing.T) {
	a, err := Load([]byte("1,x\n2,y\n"), "a.csv", LoadOptions{Format: FormatHint{Mode: FormatComma}, Header: HeaderNone})
	require.NoError(t, err)
	b, err := Load([]byte("2\n"), "b.csv", LoadOptions{Format: FormatHint{Mode: FormatComma}, Header: HeaderNone})
	require.NoError(t, err)

	res, err := Filter(a, ColumnByIndex(0), b, ColumnByName("0"), false)
	require.NoError(t, err)
	assert.Equal(t, []SummaryRow{{Value: "2", CountInA: 1, CountInB: 1}}, res.Summary)
	assert.Equal(t, "x", res.Filtered.Rows[0][1].String())
}

func TestFilter_Errors(t *testing.T) {
	a := table(t, []string{"v"}, []string{"1"})
	b := table(t, []string{"w"}, []string{"1"})

	tests := []struct {
		name      string
		a, b      *Table
		colA      ColumnRef
		colB      ColumnRef
		wantKind  error
		wantInput string
	}{
		{"missing A", nil, b, ColumnByName("v"), ColumnByName("w"), ErrMissingInput, "A"},
		{"missing B", a, nil, ColumnByName("v"), ColumnByName("w"), ErrMissingInput, "B"},
		{"unset column A", a, b, ColumnRef{}, ColumnByName("w"), ErrMissingColumnSelection, "A"},
		{"unknown column B", a, b, ColumnByName("v"), ColumnByName("v"), ErrMissingColumnSelection, "B"},
		{"index out of range", a, b, ColumnByIndex(3), ColumnByName("w"), ErrMissingColumnSelection, "A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Filter(tt.a, tt.colA, tt.b, tt.colB, false)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantKind))

			var ee *EngineError
			require.True(t, errors.As(err, &ee))
			assert.Equal(t, tt.wantInput, ee.Input)
		})
	}
}
