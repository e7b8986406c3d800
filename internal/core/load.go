package core

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// FormatMode selects how the field separator of delimited text is chosen.
type FormatMode string

const (
	FormatAuto      FormatMode = "auto"
	FormatComma     FormatMode = "comma"
	FormatSemicolon FormatMode = "semicolon"
	FormatTab       FormatMode = "tab"
	FormatPipe      FormatMode = "pipe"
	FormatCustom    FormatMode = "custom"
)

// FormatHint is a delimiter mode plus the literal used by FormatCustom.
type FormatHint struct {
	Mode   FormatMode
	Custom string
}

// Delimiter returns the explicit separator for the hint. Auto has none.
func (h FormatHint) Delimiter() string {
	switch h.Mode {
	case FormatComma:
		return ","
	case FormatSemicolon:
		return ";"
	case FormatTab:
		return "\t"
	case FormatPipe:
		return "|"
	case FormatCustom:
		if h.Custom == "" {
			return ","
		}
		return h.Custom
	}
	return ""
}

func (h FormatHint) String() string {
	if h.Mode == FormatCustom {
		return "custom:" + h.Custom
	}
	if h.Mode == "" {
		return string(FormatAuto)
	}
	return string(h.Mode)
}

// ParseFormatHint accepts "auto", "comma", "semicolon", "tab", "pipe" and
// "custom:<literal>", plus the Spanish ids used by the web form
// ("coma", "punto_y_coma", "otro"). custom is the literal for "custom"/"otro"
// given without an inline value.
func ParseFormatHint(mode, custom string) (FormatHint, error) {
	if lit, ok := strings.CutPrefix(mode, "custom:"); ok {
		return FormatHint{Mode: FormatCustom, Custom: lit}, nil
	}
	if mode == "\t" {
		return FormatHint{Mode: FormatTab}, nil
	}
	m := strings.ToLower(strings.TrimSpace(mode))
	switch m {
	case "", "auto":
		return FormatHint{Mode: FormatAuto}, nil
	case "comma", "coma", ",":
		return FormatHint{Mode: FormatComma}, nil
	case "semicolon", "punto_y_coma", ";":
		return FormatHint{Mode: FormatSemicolon}, nil
	case "tab", "\\t":
		return FormatHint{Mode: FormatTab}, nil
	case "pipe", "|":
		return FormatHint{Mode: FormatPipe}, nil
	case "custom", "otro":
		return FormatHint{Mode: FormatCustom, Custom: custom}, nil
	}
	return FormatHint{}, fmt.Errorf("unknown delimiter mode %q", mode)
}

// HeaderMode controls whether the first row names the columns.
type HeaderMode string

const (
	HeaderInfer HeaderMode = "infer"
	HeaderNone  HeaderMode = "none"
)

// ParseHeaderMode accepts "infer"/"none" and the Spanish "sin encabezados".
func ParseHeaderMode(s string) (HeaderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "infer":
		return HeaderInfer, nil
	case "none", "sin encabezados", "sin_encabezados":
		return HeaderNone, nil
	}
	return "", fmt.Errorf("unknown header mode %q", s)
}

// LoadOptions are the format hints for Load.
type LoadOptions struct {
	Format FormatHint
	Header HeaderMode
}

// IsSpreadsheet reports whether filename selects the spreadsheet parser.
func IsSpreadsheet(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return true
	}
	return false
}

// Load parses an uploaded file into a Table. data is only read, so the
// same bytes can be loaded again with different options. Errors are
// always *LoadError.
func Load(data []byte, filename string, opts LoadOptions) (*Table, error) {
	header := opts.Header != HeaderNone

	if IsSpreadsheet(filename) {
		t, err := loadSpreadsheet(data, header)
		if err != nil {
			return nil, &LoadError{Kind: ErrUnreadableSpreadsheet, File: filename, Err: err}
		}
		return t, nil
	}

	text := decodeText(data)

	if opts.Format.Mode == FormatAuto || opts.Format.Mode == "" {
		delim, how, ok := detectDelimiter(text)
		if !ok {
			return nil, &LoadError{Kind: ErrAmbiguousDelimiter, File: filename}
		}
		t, err := parseDelimited(text, delim, header)
		if err != nil {
			return nil, &LoadError{Kind: ErrParseFailure, File: filename, Delimiter: delim, Err: err}
		}
		t.Detection = how
		return t, nil
	}

	delim := opts.Format.Delimiter()
	t, err := parseDelimited(text, delim, header)
	if err != nil {
		return nil, &LoadError{Kind: ErrParseFailure, File: filename, Delimiter: delim, Err: err}
	}
	t.Detection = DetectionExplicit
	return t, nil
}

var errNoColumns = errors.New("no columns to parse from file")

// parseDelimited splits text on delim. Single-rune separators use
// encoding/csv with quoting; longer literals split each line verbatim.
// Ragged rows are padded rather than rejected.
func parseDelimited(text, delim string, header bool) (*Table, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errNoColumns
	}

	var records [][]string
	if utf8.RuneCountInString(delim) == 1 {
		comma, _ := utf8.DecodeRuneInString(delim)
		r := csv.NewReader(strings.NewReader(text))
		r.Comma = comma
		r.FieldsPerRecord = -1
		r.LazyQuotes = true
		for {
			rec, err := r.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
			if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
				continue
			}
			records = append(records, rec)
		}
	} else {
		for _, line := range splitLines(text) {
			records = append(records, strings.Split(line, delim))
		}
	}

	if len(records) == 0 {
		return nil, errNoColumns
	}

	t := NewTable(records, header)
	t.Delimiter = delim
	return t, nil
}

func isBlankRecord(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// loadSpreadsheet reads the grid of the first sheet.
func loadSpreadsheet(data []byte, header bool) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in workbook")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		if isBlankRecord(row) {
			continue
		}
		records = append(records, row)
	}

	t := NewTable(records, header)
	t.Detection = DetectionSpreadsheet
	return t, nil
}
