package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JonMunkholm/limpiador/internal/logging"
	"github.com/google/uuid"
)

// DefaultRunTimeout bounds a single run.
const DefaultRunTimeout = 2 * time.Minute

// Upload is one uploaded file: its name and full contents.
type Upload struct {
	Name string
	Data []byte
}

// Present reports whether a file was provided.
func (u *Upload) Present() bool { return u != nil && len(u.Data) > 0 }

// RunRequest carries every input of a run. Nothing is kept between runs.
type RunRequest struct {
	FileA    *Upload
	OptionsA LoadOptions
	ColumnA  ColumnRef

	FileB    *Upload
	OptionsB LoadOptions
	ColumnB  ColumnRef

	DigitsOnly bool
}

// RunResult is the output of Service.Run.
type RunResult struct {
	RunID string
	*FilterResult
	// TableA and TableB are the loaded inputs, for previews.
	TableA   *Table
	TableB   *Table
	Duration time.Duration
}

// Recorder receives run outcomes. The metrics package implements it.
type Recorder interface {
	FileLoaded(d Detection)
	RunCompleted(c Counts, elapsed time.Duration)
	RunFailed(code string)
}

type nopRecorder struct{}

func (nopRecorder) FileLoaded(Detection)               {}
func (nopRecorder) RunCompleted(Counts, time.Duration) {}
func (nopRecorder) RunFailed(string)                   {}

// ServiceConfig holds Service settings.
type ServiceConfig struct {
	MaxConcurrent int
	MaxWait       time.Duration
	RunTimeout    time.Duration
	Recorder      Recorder
}

// Service runs the load → filter pipeline with bounded concurrency.
type Service struct {
	limiter    *RunLimiter
	runTimeout time.Duration
	rec        Recorder
}

// NewService creates a Service.
func NewService(cfg ServiceConfig) *Service {
	rec := cfg.Recorder
	if rec == nil {
		rec = nopRecorder{}
	}
	timeout := cfg.RunTimeout
	if timeout <= 0 {
		timeout = DefaultRunTimeout
	}
	return &Service{
		limiter:    NewRunLimiter(cfg.MaxConcurrent, cfg.MaxWait),
		runTimeout: timeout,
		rec:        rec,
	}
}

// Run loads both files and filters A against B. Every failure is returned
// as an error for the caller to report; nothing is retried.
func (s *Service) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	runID := uuid.New().String()
	logger := logging.WithFields(ctx, "run_id", runID)

	res, err := s.run(ctx, logger, req)
	if err != nil {
		code := MapError(err).Code
		s.rec.RunFailed(code)
		logger.Warn("run failed", "code", code, "error", err)
		return nil, err
	}
	res.RunID = runID
	s.rec.RunCompleted(res.Counts, res.Duration)
	logger.Info("run completed",
		"total", res.Counts.Total,
		"excluded", res.Counts.Excluded,
		"remaining", res.Counts.Remaining,
		"summary_values", len(res.Summary),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func (s *Service) run(ctx context.Context, logger *slog.Logger, req RunRequest) (*RunResult, error) {
	switch {
	case !req.FileA.Present():
		return nil, &EngineError{Kind: ErrMissingInput, Input: "A"}
	case !req.FileB.Present():
		return nil, &EngineError{Kind: ErrMissingInput, Input: "B"}
	case !req.ColumnA.IsSet():
		return nil, &EngineError{Kind: ErrMissingColumnSelection, Input: "A"}
	case !req.ColumnB.IsSet():
		return nil, &EngineError{Kind: ErrMissingColumnSelection, Input: "B"}
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	ctx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	start := time.Now()
	logger.Debug("run started",
		"file_a", req.FileA.Name, "bytes_a", len(req.FileA.Data),
		"file_b", req.FileB.Name, "bytes_b", len(req.FileB.Data),
		"digits_only", req.DigitsOnly,
	)

	a, err := s.load(logger, req.FileA, req.OptionsA)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := s.load(logger, req.FileB, req.OptionsB)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fr, err := Filter(a, req.ColumnA, b, req.ColumnB, req.DigitsOnly)
	if err != nil {
		return nil, err
	}

	return &RunResult{
		FilterResult: fr,
		TableA:       a,
		TableB:       b,
		Duration:     time.Since(start),
	}, nil
}

// Inspect loads a single file, used to list its columns before a run.
func (s *Service) Inspect(ctx context.Context, f *Upload, opts LoadOptions) (*Table, error) {
	if !f.Present() {
		return nil, errors.New("no file provided")
	}
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	return s.load(logging.FromContext(ctx), f, opts)
}

func (s *Service) load(logger *slog.Logger, f *Upload, opts LoadOptions) (*Table, error) {
	t, err := Load(f.Data, f.Name, opts)
	if err != nil {
		return nil, err
	}
	s.rec.FileLoaded(t.Detection)
	logger.Debug("file loaded",
		"file", f.Name,
		"rows", t.NumRows(),
		"columns", t.NumColumns(),
		"delimiter", fmt.Sprintf("%q", t.Delimiter),
		"detection", t.Detection,
		"format", opts.Format.String(),
	)
	return t, nil
}

// LimiterStatus returns the run limiter state.
func (s *Service) LimiterStatus() RunLimiterStatus { return s.limiter.Status() }

// WaitForRuns blocks until in-flight runs finish or ctx ends.
func (s *Service) WaitForRuns(ctx context.Context) error { return s.limiter.WaitForDrain(ctx) }
