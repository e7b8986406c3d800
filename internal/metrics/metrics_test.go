package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/limpiador/internal/core"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	m := New()

	m.FileLoaded(core.DetectionInferred)
	m.FileLoaded(core.DetectionInferred)
	m.FileLoaded(core.DetectionNone)
	m.RunCompleted(core.Counts{Total: 10, Excluded: 3, Remaining: 7}, 20*time.Millisecond)
	m.RunFailed("LOAD002")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.filesLoaded.WithLabelValues("inferred")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.filesLoaded.WithLabelValues("none")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("LOAD002")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.rows.WithLabelValues("excluded")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.rows.WithLabelValues("remaining")))
}

func TestHandlerAndMiddleware(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Handle("/metrics", m.Handler())

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/items/{id}", "418")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "limpiador_http_requests_total"), "exposes request counter")
	assert.True(t, strings.Contains(body, "go_goroutines"), "exposes runtime metrics")
}
