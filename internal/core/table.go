package core

import (
	"math"
	"strconv"
	"strings"
)

// CellKind tags the scalar held by a Cell.
type CellKind int

const (
	CellNull CellKind = iota
	CellString
	CellNumber
)

// Cell is a single table value. Number cells keep the lexeme they were parsed
// from so that exported tables reproduce the input exactly.
type Cell struct {
	Kind CellKind
	Text string
	Num  float64
}

// NullCell returns an empty cell.
func NullCell() Cell { return Cell{Kind: CellNull} }

// StringCell wraps a text value.
func StringCell(s string) Cell { return Cell{Kind: CellString, Text: s} }

// NumberCell wraps a numeric value with no source lexeme.
func NumberCell(f float64) Cell {
	return Cell{Kind: CellNumber, Num: f, Text: strconv.FormatFloat(f, 'f', -1, 64)}
}

// ParseCell classifies a raw field the way a tabular reader would:
// empty becomes null, finite numbers become Number, everything else String.
func ParseCell(raw string) Cell {
	if raw == "" {
		return NullCell()
	}
	trimmed := strings.TrimSpace(raw)
	if looksNumeric(trimmed) {
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return Cell{Kind: CellNumber, Num: f, Text: raw}
		}
	}
	return StringCell(raw)
}

// looksNumeric rejects inputs ParseFloat would accept but a spreadsheet
// would not treat as numbers ("Inf", "NaN", hex floats, underscores).
func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	digits := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '+' || c == '-' || c == '.' || c == 'e' || c == 'E':
		default:
			return false
		}
	}
	return digits > 0
}

// IsNull reports whether the cell holds no value.
func (c Cell) IsNull() bool { return c.Kind == CellNull }

// String returns the textual form of the cell. Null is the empty string.
func (c Cell) String() string {
	if c.Kind == CellNull {
		return ""
	}
	return c.Text
}

// Table is an immutable in-memory tabular document.
type Table struct {
	Columns []string
	Rows    [][]Cell

	// Delimiter is the separator used for delimited text ("" for spreadsheets).
	Delimiter string
	// Detection records how the delimiter was chosen.
	Detection Detection
}

// Detection describes which strategy produced the delimiter of a text table.
type Detection string

const (
	DetectionNone         Detection = ""
	DetectionExplicit     Detection = "explicit"
	DetectionInferred     Detection = "inferred"
	DetectionSniffed      Detection = "sniffed"
	DetectionSingleColumn Detection = "single-column"
	DetectionSpreadsheet  Detection = "spreadsheet"
)

// NewTable builds a table from raw string records. When header is true the
// first record supplies the column names. Every row is padded to the widest
// record so that all rows have len(Columns) cells.
func NewTable(records [][]string, header bool) *Table {
	t := &Table{}
	if len(records) == 0 {
		return t
	}

	var names []string
	data := records
	if header {
		names = records[0]
		data = records[1:]
	}

	width := len(names)
	for _, rec := range data {
		if len(rec) > width {
			width = len(rec)
		}
	}

	t.Columns = make([]string, width)
	for i := range t.Columns {
		switch {
		case !header:
			t.Columns[i] = strconv.Itoa(i)
		case i < len(names) && strings.TrimSpace(names[i]) != "":
			t.Columns[i] = names[i]
		default:
			t.Columns[i] = "Unnamed: " + strconv.Itoa(i)
		}
	}

	t.Rows = make([][]Cell, 0, len(data))
	for _, rec := range data {
		row := make([]Cell, width)
		for i := range row {
			if i < len(rec) {
				row[i] = ParseCell(rec[i])
			} else {
				row[i] = NullCell()
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return len(t.Rows) }

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int { return len(t.Columns) }

// Column returns the values of column i in row order.
func (t *Table) Column(i int) []Cell {
	out := make([]Cell, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out
}

// Head returns a table sharing column metadata with at most n rows.
func (t *Table) Head(n int) *Table {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return &Table{
		Columns:   t.Columns,
		Rows:      t.Rows[:n],
		Delimiter: t.Delimiter,
		Detection: t.Detection,
	}
}

// Records renders the table as strings, header row first.
func (t *Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, append([]string(nil), t.Columns...))
	for _, row := range t.Rows {
		rec := make([]string, len(row))
		for i, c := range row {
			rec[i] = c.String()
		}
		out = append(out, rec)
	}
	return out
}

// ColumnRef identifies a column either by name or by position.
// The zero value is an unset selection.
type ColumnRef struct {
	Name    string
	Index   int
	byIndex bool
	set     bool
}

// ColumnByName selects the first column with the given name.
func ColumnByName(name string) ColumnRef {
	return ColumnRef{Name: name, set: name != ""}
}

// ColumnByIndex selects a column by its zero-based position.
func ColumnByIndex(i int) ColumnRef {
	return ColumnRef{Index: i, byIndex: true, set: true}
}

// ParseColumnRef reads a selection as written by forms and the CLI:
// "#<n>" selects position n, anything else is a column name.
func ParseColumnRef(s string) ColumnRef {
	if rest, ok := strings.CutPrefix(s, "#"); ok {
		if i, err := strconv.Atoi(rest); err == nil && i >= 0 {
			return ColumnByIndex(i)
		}
	}
	return ColumnByName(s)
}

// IsSet reports whether a column was chosen.
func (c ColumnRef) IsSet() bool { return c.set }

func (c ColumnRef) String() string {
	if c.byIndex {
		return "#" + strconv.Itoa(c.Index)
	}
	return c.Name
}

// Resolve returns the column position in t, or false when it does not exist.
func (c ColumnRef) Resolve(t *Table) (int, bool) {
	if !c.set || t == nil {
		return 0, false
	}
	if c.byIndex {
		if c.Index < 0 || c.Index >= len(t.Columns) {
			return 0, false
		}
		return c.Index, true
	}
	for i, name := range t.Columns {
		if name == c.Name {
			return i, true
		}
	}
	return 0, false
}
