package cli

import (
	"fmt"
	"io"

	"github.com/JonMunkholm/limpiador/internal/core"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderInput(w io.Writer, label, name string, t *core.Table) {
	_, _ = fmt.Fprintf(w, "%s: %s, %s filas × %d columnas, separador %q (%s)\n",
		label, name, humanize.Comma(int64(t.NumRows())), t.NumColumns(), t.Delimiter, t.Detection)
}

func renderCounts(w io.Writer, c core.Counts) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Filas en A (total)", "Filas eliminadas", "Filas finales"})
	t.AppendRow(table.Row{humanize.Comma(int64(c.Total)), humanize.Comma(int64(c.Excluded)), humanize.Comma(int64(c.Remaining))})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.Render()
}

func renderSummary(w io.Writer, summary []core.SummaryRow) {
	if len(summary) == 0 {
		_, _ = fmt.Fprintln(w, "(sin números repetidos)")
		return
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"numero", "conteo_en_A", "conteo_en_B"})
	for _, s := range summary {
		t.AppendRow(table.Row{s.Value, humanize.Comma(int64(s.CountInA)), humanize.Comma(int64(s.CountInB))})
	}
	t.Render()
}

// renderRecords prints a header row followed by data rows.
func renderRecords(w io.Writer, records [][]string) {
	if len(records) == 0 {
		return
	}
	t := newTable(w)
	t.AppendHeader(toRow(records[0]))
	for _, rec := range records[1:] {
		t.AppendRow(toRow(rec))
	}
	t.Render()
}

func toRow(rec []string) table.Row {
	row := make(table.Row, len(rec))
	for i, v := range rec {
		row[i] = v
	}
	return row
}
