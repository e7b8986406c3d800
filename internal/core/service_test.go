package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	mu        sync.Mutex
	loaded    []Detection
	completed []Counts
	failed    []string
}

func (f *fakeRecorder) FileLoaded(d Detection) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loaded = append(f.loaded, d)
}

func (f *fakeRecorder) RunCompleted(c Counts, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completed = append(f.completed, c)
}

func (f *fakeRecorder) RunFailed(code string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failed = append(f.failed, code)
}

func validRequest() RunRequest {
	return RunRequest{
		FileA:    &Upload{Name: "a.csv", Data: []byte("id;tel\n1;7\n2;7\n3;9\n")},
		OptionsA: LoadOptions{Format: FormatHint{Mode: FormatAuto}, Header: HeaderInfer},
		ColumnA:  ColumnByName("tel"),
		FileB:    &Upload{Name: "b.txt", Data: []byte("tel\n7\n7\n8\n")},
		OptionsB: LoadOptions{Format: FormatHint{Mode: FormatAuto}, Header: HeaderInfer},
		ColumnB:  ColumnByName("tel"),
	}
}

func TestService_Run(t *testing.T) {
	rec := &fakeRecorder{}
	svc := NewService(ServiceConfig{Recorder: rec})

	res, err := svc.Run(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, Counts{Total: 3, Excluded: 2, Remaining: 1}, res.Counts)
	assert.Equal(t, []SummaryRow{{Value: "7", CountInA: 2, CountInB: 2}}, res.Summary)
	assert.Equal(t, ";", res.TableA.Delimiter)
	assert.Equal(t, DetectionSingleColumn, res.TableB.Detection)

	assert.Equal(t, []Detection{DetectionInferred, DetectionSingleColumn}, rec.loaded)
	assert.Equal(t, []Counts{res.Counts}, rec.completed)
	assert.Empty(t, rec.failed)
	assert.Equal(t, 0, svc.LimiterStatus().Active)
}

func TestService_RunIDsDiffer(t *testing.T) {
	svc := NewService(ServiceConfig{})
	r1, err := svc.Run(context.Background(), validRequest())
	require.NoError(t, err)
	r2, err := svc.Run(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEqual(t, r1.RunID, r2.RunID)
}

func TestService_RunValidation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*RunRequest)
		wantKind error
		wantCode string
	}{
		{"missing file A", func(r *RunRequest) { r.FileA = nil }, ErrMissingInput, "RUN001"},
		{"empty file B", func(r *RunRequest) { r.FileB = &Upload{Name: "b.csv"} }, ErrMissingInput, "RUN001"},
		{"no column A", func(r *RunRequest) { r.ColumnA = ColumnRef{} }, ErrMissingColumnSelection, "RUN002"},
		{"unknown column B", func(r *RunRequest) { r.ColumnB = ColumnByName("nope") }, ErrMissingColumnSelection, "RUN002"},
		{"ambiguous A", func(r *RunRequest) { r.FileA.Data = []byte("a,b\nc\nd;e;f\n") }, ErrAmbiguousDelimiter, "LOAD002"},
		{"bad spreadsheet B", func(r *RunRequest) { r.FileB.Name = "b.xlsx" }, ErrUnreadableSpreadsheet, "LOAD001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fakeRecorder{}
			svc := NewService(ServiceConfig{Recorder: rec})
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.Run(context.Background(), req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantKind), "got %v", err)
			assert.Equal(t, []string{tt.wantCode}, rec.failed)
			assert.Empty(t, rec.completed)
		})
	}
}

func TestService_Busy(t *testing.T) {
	rec := &fakeRecorder{}
	svc := NewService(ServiceConfig{MaxConcurrent: 1, MaxWait: 10 * time.Millisecond, Recorder: rec})
	require.NoError(t, svc.limiter.Acquire(context.Background()))
	defer svc.limiter.Release()

	_, err := svc.Run(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTooManyRuns)
	assert.Equal(t, []string{"UPL002"}, rec.failed)
}

func TestService_Inspect(t *testing.T) {
	svc := NewService(ServiceConfig{})

	tbl, err := svc.Inspect(context.Background(), &Upload{Name: "a.csv", Data: []byte("x|y\n1|2\n")},
		LoadOptions{Format: FormatHint{Mode: FormatAuto}})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, tbl.Columns)

	_, err = svc.Inspect(context.Background(), nil, LoadOptions{})
	require.Error(t, err)
	assert.Equal(t, "FILE004", MapError(err).Code)
}

func TestService_WaitForRuns(t *testing.T) {
	svc := NewService(ServiceConfig{})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, svc.WaitForRuns(ctx))
}
