package web

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/limpiador/internal/core"
	"github.com/JonMunkholm/limpiador/internal/export"
	"github.com/JonMunkholm/limpiador/internal/logging"
	"github.com/JonMunkholm/limpiador/internal/web/templates"
)

// ColumnsPreviewRows is the number of rows returned by /api/columns.
const ColumnsPreviewRows = 50

// ColumnsResponse is returned by POST /api/columns.
type ColumnsResponse struct {
	File      string         `json:"file"`
	Columns   []string       `json:"columns"`
	Rows      int            `json:"rows"`
	Delimiter string         `json:"delimiter"`
	Detection core.Detection `json:"detection"`
	Preview   [][]string     `json:"preview"`
}

// InputResponse describes how one input was read.
type InputResponse struct {
	File      string         `json:"file"`
	Rows      int            `json:"rows"`
	Columns   int            `json:"columns"`
	Delimiter string         `json:"delimiter"`
	Detection core.Detection `json:"detection"`
}

// RunResponse is the JSON form of POST /run.
type RunResponse struct {
	RunID      string            `json:"run_id"`
	Counts     core.Counts       `json:"counts"`
	Summary    []core.SummaryRow `json:"summary"`
	Columns    []string          `json:"columns"`
	Preview    [][]string        `json:"preview"`
	InputA     InputResponse     `json:"input_a"`
	InputB     InputResponse     `json:"input_b"`
	DurationMS int64             `json:"duration_ms"`
}

// handleIndex renders the upload page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.Page(templates.PageParams{MaxFileSize: s.cfg.Limits.MaxFileSize}).Render(r.Context(), w)
}

// handleHealth reports liveness and the run limiter state.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"runs":   s.service.LimiterStatus(),
	})
}

// handleColumns loads one file and lists its columns so the page can offer
// them before a run.
func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	if err := s.parseForm(w, r, 1); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	upload, err := s.readUpload(r, "file")
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	if upload == nil {
		s.respondError(w, r, errNoFile, http.StatusBadRequest)
		return
	}
	opts, err := loadOptions(r, "")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	t, err := s.service.Inspect(r.Context(), upload, opts)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	preview := t.Head(ColumnsPreviewRows).Records()
	writeJSON(w, http.StatusOK, ColumnsResponse{
		File:      upload.Name,
		Columns:   t.Columns,
		Rows:      t.NumRows(),
		Delimiter: t.Delimiter,
		Detection: t.Detection,
		Preview:   preview[1:],
	})
}

// run parses the form and runs the filter, reporting any error itself.
// It returns nil when a response was already written.
func (s *Server) run(w http.ResponseWriter, r *http.Request) *core.RunResult {
	req, err := s.parseRunRequest(w, r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return nil
	}
	res, err := s.service.Run(r.Context(), req)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return nil
	}
	return res
}

// handleRun runs the filter and shows counts, a preview and the summary.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	res := s.run(w, r)
	if res == nil {
		return
	}

	previewRows := s.cfg.Limits.PreviewRows
	preview := res.Filtered.Head(previewRows).Records()[1:]

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, RunResponse{
			RunID:      res.RunID,
			Counts:     res.Counts,
			Summary:    res.Summary,
			Columns:    res.Filtered.Columns,
			Preview:    preview,
			InputA:     inputResponse(uploadName(r, "file_a"), res.TableA),
			InputB:     inputResponse(uploadName(r, "file_b"), res.TableB),
			DurationMS: res.Duration.Milliseconds(),
		})
		return
	}

	view := templates.ResultView{
		RunID:      res.RunID,
		Counts:     res.Counts,
		Columns:    res.Filtered.Columns,
		Preview:    preview,
		PreviewMax: previewRows,
		Summary:    res.Summary,
		InputA:     inputInfo(uploadName(r, "file_a"), res.TableA),
		InputB:     inputInfo(uploadName(r, "file_b"), res.TableB),
		DurationMS: res.Duration.Milliseconds(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if isPartial(r) {
		templates.Result(view).Render(r.Context(), w)
		return
	}
	templates.Page(templates.PageParams{
		MaxFileSize: s.cfg.Limits.MaxFileSize,
		Result:      &view,
	}).Render(r.Context(), w)
}

// handleExportWorkbook re-runs the filter and downloads both sheets.
func (s *Server) handleExportWorkbook(w http.ResponseWriter, r *http.Request) {
	res := s.run(w, r)
	if res == nil {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, res.FilterResult); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.sendFile(w, r, res.RunID, export.WorkbookFilename, export.WorkbookContentType, &buf)
}

// handleExportCSV re-runs the filter and downloads the kept rows as CSV.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	res := s.run(w, r)
	if res == nil {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, res.Filtered); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.sendFile(w, r, res.RunID, export.CSVFilename, export.CSVContentType, &buf)
}

func (s *Server) sendFile(w http.ResponseWriter, r *http.Request, runID, name, contentType string, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	size := buf.Len()
	w.Header().Set("Content-Length", strconv.Itoa(size))
	w.Header().Set("X-Run-ID", runID)
	if _, err := buf.WriteTo(w); err != nil {
		logging.WithFields(r.Context(), "run_id", runID).Warn("export write failed", "file", name, "error", err)
		return
	}
	logging.WithFields(r.Context(), "run_id", runID).Debug("export sent", "file", name, "bytes", size)
}

func uploadName(r *http.Request, field string) string {
	if r.MultipartForm == nil {
		return ""
	}
	if fh := r.MultipartForm.File[field]; len(fh) > 0 {
		return fh[0].Filename
	}
	return ""
}

func inputInfo(name string, t *core.Table) templates.InputInfo {
	return templates.InputInfo{
		Name:      name,
		Rows:      t.NumRows(),
		Columns:   t.NumColumns(),
		Delimiter: t.Delimiter,
		Detection: t.Detection,
	}
}

func inputResponse(name string, t *core.Table) InputResponse {
	return InputResponse{
		File:      name,
		Rows:      t.NumRows(),
		Columns:   t.NumColumns(),
		Delimiter: t.Delimiter,
		Detection: t.Detection,
	}
}
