// Package templates renders the HTML views of the web UI as templ components.
package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/limpiador/internal/core"
	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"
)

// PageParams feeds the upload page.
type PageParams struct {
	MaxFileSize int64
	// Result and Error are set when the page is rendered after a plain form post.
	Result *ResultView
	Error  *ErrorView
}

// ErrorView is a mapped user error.
type ErrorView struct {
	Message string
	Action  string
	Code    string
	Detail  string
}

// ResultView is what the result panel shows for one run.
type ResultView struct {
	RunID      string
	Counts     core.Counts
	Columns    []string
	Preview    [][]string
	PreviewMax int
	Summary    []core.SummaryRow
	InputA     InputInfo
	InputB     InputInfo
	DurationMS int64
}

// InputInfo describes how one input file was read.
type InputInfo struct {
	Name      string
	Rows      int
	Columns   int
	Delimiter string
	Detection core.Detection
}

// SeparatorOptions are the choices of the separator selects, value then label.
var SeparatorOptions = [][2]string{
	{"auto", "auto"},
	{"comma", "coma ( , )"},
	{"semicolon", "punto y coma ( ; )"},
	{"tab", "tab"},
	{"pipe", "pipe ( | )"},
	{"custom", "otro"},
}

type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(s string) {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
}

func (w *writer) text(s string) { w.raw(templ.EscapeString(s)) }

func (w *writer) rawf(format string, args ...any) { w.raw(fmt.Sprintf(format, args...)) }

func (w *writer) component(ctx context.Context, c templ.Component) {
	if w.err == nil {
		w.err = c.Render(ctx, w.w)
	}
}

// Page renders the full upload page.
func Page(p PageParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8">`)
		w.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.raw(`<title>Filtrar CSV por lista</title><style>`)
		w.raw(pageCSS)
		w.raw(`</style></head><body><main>`)
		w.raw(`<h1>Limpiador de Duplicados</h1>`)
		w.raw(`<p class="caption">Sube tu Archivo A, elige la columna a limpiar, luego sube el Archivo B con los números a eliminar. `)
		w.raw(`El resultado excluye esas filas y genera una hoja con los números detectados como repetidos.</p>`)

		w.raw(`<form id="run-form" method="post" action="/run" enctype="multipart/form-data">`)
		fileSection(w, "a", "1) Sube el Archivo A", "Archivo A (CSV, TXT o Excel)",
			"¿Qué columna de A quieres usar para comparar/eliminar?")
		fileSection(w, "b", "2) Sube el Archivo B (contiene los números a eliminar)",
			"Archivo B (CSV, TXT o Excel), una columna con los números",
			"¿Qué columna de B contiene los números?")

		w.raw(`<section><h2>3) Procesar y descargar</h2>`)
		w.raw(`<label class="check"><input type="checkbox" name="digits_only" value="true"> Normalizar: conservar solo dígitos</label>`)
		w.raw(`<p class="hint">Tamaño máximo por archivo: `)
		w.text(humanize.Bytes(uint64(p.MaxFileSize)))
		w.raw(`</p><div class="actions">`)
		w.raw(`<button type="submit" class="primary">Ejecutar limpieza</button>`)
		w.raw(`<button type="submit" formaction="/run/export.xlsx">Descargar Excel (resultado + numeros_repetidos)</button>`)
		w.raw(`<button type="submit" formaction="/run/export.csv">Descargar solo resultado (CSV)</button>`)
		w.raw(`</div></section></form>`)

		w.raw(`<div id="result">`)
		if p.Error != nil {
			w.component(ctx, ErrorAlert(p.Error.Message, p.Error.Action, p.Error.Code, p.Error.Detail))
		}
		if p.Result != nil {
			w.component(ctx, Result(*p.Result))
		}
		w.raw(`</div>`)

		w.raw(`<aside class="notes"><strong>Notas:</strong><ul>`)
		w.raw(`<li>Si ves el error <em>No se pudo inferir el delimitador automáticamente</em> (LOAD002), usa el selector de separador manual o carga el archivo como Excel.</li>`)
		w.raw(`<li>La opción <em>Normalizar: conservar solo dígitos</em> ayuda si tus números tienen guiones, espacios o paréntesis.</li>`)
		w.raw(`<li>Si tu Archivo B trae más de una columna, asegúrate de elegir la que contiene los números a eliminar.</li>`)
		w.raw(`</ul></aside></main><script>`)
		w.raw(pageJS)
		w.raw(`</script></body></html>`)
		return w.err
	})
}

func fileSection(w *writer, side, title, fileLabel, columnLabel string) {
	w.rawf(`<section data-side="%s"><h2>`, side)
	w.text(title)
	w.raw(`</h2><div class="grid">`)
	w.rawf(`<label>%s<input type="file" name="file_%s" accept=".csv,.txt,.xlsx,.xls"></label>`, templ.EscapeString(fileLabel), side)
	w.rawf(`<label>Separador (%s)<select name="sep_%s">`, strings.ToUpper(side), side)
	for _, opt := range SeparatorOptions {
		w.rawf(`<option value="%s">%s</option>`, opt[0], templ.EscapeString(opt[1]))
	}
	w.raw(`</select></label>`)
	w.rawf(`<label>Especifica el separador<input type="text" name="custom_sep_%s" value="," maxlength="8"></label>`, side)
	w.rawf(`<label>Encabezados (%s)<select name="header_%s">`, strings.ToUpper(side), side)
	w.raw(`<option value="infer">infer</option><option value="none">sin encabezados</option></select></label>`)
	w.raw(`</div>`)
	w.rawf(`<p class="status" id="status_%s"></p>`, side)
	w.rawf(`<label>%s<select name="col_%s" id="col_%s"></select></label>`, templ.EscapeString(columnLabel), side, side)
	w.raw(`</section>`)
}

// Result renders counts, the preview of kept rows and the duplicate summary.
func Result(r ResultView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.rawf(`<section class="result" data-run-id="%s">`, templ.EscapeString(r.RunID))
		w.raw(`<div class="metrics">`)
		metric(w, "Filas en A (total)", r.Counts.Total)
		metric(w, "Filas eliminadas (coinciden con B)", r.Counts.Excluded)
		metric(w, "Filas finales", r.Counts.Remaining)
		w.raw(`</div>`)

		w.raw(`<p class="hint">`)
		inputLine(w, "A", r.InputA)
		w.raw(`<br>`)
		inputLine(w, "B", r.InputB)
		w.raw(`</p>`)

		w.rawf(`<h3>Vista previa del resultado (primeras %d filas)</h3>`, r.PreviewMax)
		table(w, r.Columns, r.Preview)

		w.raw(`<h3>Vista previa, hoja 'numeros_repetidos'</h3>`)
		rows := make([][]string, len(r.Summary))
		for i, s := range r.Summary {
			rows[i] = []string{s.Value, humanize.Comma(int64(s.CountInA)), humanize.Comma(int64(s.CountInB))}
		}
		table(w, []string{"numero", "conteo_en_A", "conteo_en_B"}, rows)
		w.raw(`</section>`)
		return w.err
	})
}

func metric(w *writer, label string, n int) {
	w.raw(`<div class="metric"><span>`)
	w.text(label)
	w.raw(`</span><strong>`)
	w.text(humanize.Comma(int64(n)))
	w.raw(`</strong></div>`)
}

func inputLine(w *writer, side string, in InputInfo) {
	w.rawf("Archivo %s cargado: ", side)
	w.text(in.Name)
	w.text(fmt.Sprintf(", %s filas × %d columnas", humanize.Comma(int64(in.Rows)), in.Columns))
	switch {
	case in.Detection == core.DetectionSpreadsheet:
		w.raw(", Excel")
	case in.Delimiter != "":
		w.text(fmt.Sprintf(", separador %q (%s)", in.Delimiter, in.Detection))
	}
}

func table(w *writer, header []string, rows [][]string) {
	w.raw(`<div class="table-wrap"><table><thead><tr>`)
	for _, h := range header {
		w.raw(`<th>`)
		w.text(h)
		w.raw(`</th>`)
	}
	w.raw(`</tr></thead><tbody>`)
	for _, row := range rows {
		w.raw(`<tr>`)
		for _, c := range row {
			w.raw(`<td>`)
			w.text(c)
			w.raw(`</td>`)
		}
		w.raw(`</tr>`)
	}
	if len(rows) == 0 {
		w.rawf(`<tr><td colspan="%d" class="empty">Sin filas</td></tr>`, max(len(header), 1))
	}
	w.raw(`</tbody></table></div>`)
}

// ErrorAlert renders a user error with its code and suggested action.
func ErrorAlert(message, action, code, detail string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<div class="alert" role="alert"><strong>`)
		w.text(message)
		w.raw(`</strong>`)
		if action != "" {
			w.raw(`<p>`)
			w.text(action)
			w.raw(`</p>`)
		}
		if detail != "" {
			w.raw(`<p class="detail">`)
			w.text(detail)
			w.raw(`</p>`)
		}
		w.raw(`<small>Código: `)
		w.text(code)
		w.raw(`</small></div>`)
		return w.err
	})
}
