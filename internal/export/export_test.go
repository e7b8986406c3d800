package export

import (
	"bytes"
	"testing"

	"github.com/JonMunkholm/limpiador/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleResult(t *testing.T) *core.FilterResult {
	t.Helper()
	a := core.NewTable([][]string{
		{"nombre", "tel", "codigo"},
		{"Ana", "7", "007"},
		{"Luis", "9", "1.50"},
		{"Eva", "", "x"},
	}, true)
	b := core.NewTable([][]string{{"tel"}, {"7"}, {"7"}}, true)

	res, err := core.Filter(a, core.ColumnByName("tel"), b, core.ColumnByName("tel"), false)
	require.NoError(t, err)
	return res
}

func TestWriteWorkbook(t *testing.T) {
	res := sampleResult(t)

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, res))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ResultSheet, DuplicatesSheet}, f.GetSheetList())

	rows, err := f.GetRows(ResultSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"nombre", "tel", "codigo"},
		{"Luis", "9", "1.50"},
		{"Eva", "", "x"},
	}, rows)

	typ, err := f.GetCellType(ResultSheet, "B2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ, "plain numbers are stored as numbers")
	assert.NotEqual(t, excelize.CellTypeInlineString, typ, "plain numbers are stored as numbers")

	summary, err := f.GetRows(DuplicatesSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"numero", "conteo_en_A", "conteo_en_B"},
		{"7", "1", "2"},
	}, summary)
}

func TestWriteWorkbook_RoundTripsThroughLoad(t *testing.T) {
	res := sampleResult(t)

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, res))

	tbl, err := core.Load(buf.Bytes(), WorkbookFilename, core.LoadOptions{Header: core.HeaderInfer})
	require.NoError(t, err)
	assert.Equal(t, res.Filtered.Columns, tbl.Columns)
	assert.Equal(t, res.Filtered.Records(), tbl.Records())
}

func TestWriteWorkbook_EmptyResult(t *testing.T) {
	a := core.NewTable([][]string{{"v"}, {"1"}}, true)
	res, err := core.Filter(a, core.ColumnByName("v"), a, core.ColumnByName("v"), false)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, res))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ResultSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"v"}}, rows)
}

func TestWriteCSV(t *testing.T) {
	res := sampleResult(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, res.Filtered))

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}), "output starts with a BOM")
	assert.Equal(t, "nombre,tel,codigo\nLuis,9,1.50\nEva,,x\n", string(out[3:]))

	tbl, err := core.Load(out, CSVFilename, core.LoadOptions{Header: core.HeaderInfer})
	require.NoError(t, err)
	assert.Equal(t, res.Filtered.Records(), tbl.Records())
}

func TestCellValue(t *testing.T) {
	assert.Nil(t, cellValue(core.NullCell()))
	assert.Equal(t, 42.0, cellValue(core.ParseCell("42")))
	assert.Equal(t, "007", cellValue(core.ParseCell("007")))
	assert.Equal(t, "1.50", cellValue(core.ParseCell("1.50")))
	assert.Equal(t, "abc", cellValue(core.StringCell("abc")))
}
