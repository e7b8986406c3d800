// Package export writes run results as downloadable files: an xlsx workbook
// with the filtered rows and the duplicate summary, or a CSV of the filtered
// rows that opens correctly in Excel.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/JonMunkholm/limpiador/internal/core"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Sheet names and file names of the downloads.
const (
	ResultSheet     = "resultado"
	DuplicatesSheet = "numeros_repetidos"

	WorkbookFilename = "resultado_filtrado.xlsx"
	CSVFilename      = "resultado_filtrado.csv"

	WorkbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	CSVContentType      = "text/csv; charset=utf-8"
)

// SummaryHeader is the header row of the duplicates sheet.
var SummaryHeader = []string{"numero", "conteo_en_A", "conteo_en_B"}

// WriteWorkbook writes the filtered table to the "resultado" sheet and the
// summary to "numeros_repetidos". No index column is added.
func WriteWorkbook(w io.Writer, res *core.FilterResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ResultSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(DuplicatesSheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", DuplicatesSheet, err)
	}

	if err := writeSheet(f, ResultSheet, resultRows(res.Filtered)); err != nil {
		return err
	}
	if err := writeSheet(f, DuplicatesSheet, summaryRows(res.Summary)); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// writeSheet streams rows into sheet starting at A1.
func writeSheet(f *excelize.File, sheet string, rows [][]interface{}) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("open sheet %s: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, i+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet %s: %w", sheet, err)
	}
	return nil
}

func resultRows(t *core.Table) [][]interface{} {
	rows := make([][]interface{}, 0, t.NumRows()+1)
	header := make([]interface{}, len(t.Columns))
	for i, name := range t.Columns {
		header[i] = name
	}
	rows = append(rows, header)

	for _, r := range t.Rows {
		row := make([]interface{}, len(r))
		for i, c := range r {
			row[i] = cellValue(c)
		}
		rows = append(rows, row)
	}
	return rows
}

func summaryRows(summary []core.SummaryRow) [][]interface{} {
	rows := make([][]interface{}, 0, len(summary)+1)
	rows = append(rows, []interface{}{SummaryHeader[0], SummaryHeader[1], SummaryHeader[2]})
	for _, s := range summary {
		rows = append(rows, []interface{}{s.Value, s.CountInA, s.CountInB})
	}
	return rows
}

// cellValue maps a cell to an excelize value. Numbers are written as numbers
// unless that would change how they read ("007", "1.50"), in which case the
// original text is kept.
func cellValue(c core.Cell) interface{} {
	switch c.Kind {
	case core.CellNull:
		return nil
	case core.CellNumber:
		if strconv.FormatFloat(c.Num, 'f', -1, 64) == strings.TrimSpace(c.Text) {
			return c.Num
		}
		return c.Text
	default:
		return c.Text
	}
}

// WriteCSV writes the filtered table as comma-separated UTF-8 with a byte
// order mark and a header row.
func WriteCSV(w io.Writer, t *core.Table) error {
	bw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(bw)

	if err := cw.WriteAll(t.Records()); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	if err := bw.Close(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
