package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/limpiador/internal/core"
)

var (
	errFileTooLarge = errors.New("file too large")
	errNoFile       = errors.New("no file provided")
)

// multipartMemory is how much of a multipart body is kept in memory before
// spilling to temp files.
const multipartMemory = 32 << 20

// parseForm bounds the request body to the given number of uploads plus
// form overhead.
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request, files int) error {
	limit := int64(files)*s.cfg.Limits.MaxFileSize + 1<<20
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w: %w", errFileTooLarge, err)
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return errNoFile
		}
		return fmt.Errorf("parse form: %w", err)
	}
	return nil
}

// readUpload reads one file field completely. A missing field returns nil
// without error so the caller can report which input is absent.
func (s *Server) readUpload(r *http.Request, field string) (*core.Upload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	defer file.Close()

	limit := s.cfg.Limits.MaxFileSize
	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s", errFileTooLarge, header.Filename)
	}
	return &core.Upload{Name: header.Filename, Data: data}, nil
}

// loadOptions reads the separator and header fields with the given suffix
// ("_a", "_b" or "").
func loadOptions(r *http.Request, suffix string) (core.LoadOptions, error) {
	format, err := core.ParseFormatHint(r.FormValue("sep"+suffix), r.FormValue("custom_sep"+suffix))
	if err != nil {
		return core.LoadOptions{}, fmt.Errorf("%w: sep%s: %w", core.ErrInvalidOption, suffix, err)
	}
	header, err := core.ParseHeaderMode(r.FormValue("header" + suffix))
	if err != nil {
		return core.LoadOptions{}, fmt.Errorf("%w: header%s: %w", core.ErrInvalidOption, suffix, err)
	}
	return core.LoadOptions{Format: format, Header: header}, nil
}

// formBool accepts the usual checkbox and boolean spellings.
func formBool(r *http.Request, name string) bool {
	v := r.FormValue(name)
	if v == "on" {
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}

// parseRunRequest builds a RunRequest from the run form.
func (s *Server) parseRunRequest(w http.ResponseWriter, r *http.Request) (core.RunRequest, error) {
	var req core.RunRequest
	if err := s.parseForm(w, r, 2); err != nil {
		return req, err
	}

	var err error
	if req.FileA, err = s.readUpload(r, "file_a"); err != nil {
		return req, err
	}
	if req.FileB, err = s.readUpload(r, "file_b"); err != nil {
		return req, err
	}
	if req.OptionsA, err = loadOptions(r, "_a"); err != nil {
		return req, err
	}
	if req.OptionsB, err = loadOptions(r, "_b"); err != nil {
		return req, err
	}
	req.ColumnA = core.ParseColumnRef(r.FormValue("col_a"))
	req.ColumnB = core.ParseColumnRef(r.FormValue("col_b"))
	req.DigitsOnly = formBool(r, "digits_only")
	return req, nil
}
