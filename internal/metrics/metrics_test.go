package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordConversion(t *testing.T) {
	okBefore := testutil.ToFloat64(ConversionsTotal.WithLabelValues(KindQuery, OutcomeOK))
	badBefore := testutil.ToFloat64(ConversionsTotal.WithLabelValues(KindQuery, OutcomeUnparseable))

	RecordConversion(KindQuery, true)
	RecordConversion(KindQuery, false)
	RecordConversion(KindQuery, false)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ConversionsTotal.WithLabelValues(KindQuery, OutcomeOK)))
	assert.Equal(t, badBefore+2, testutil.ToFloat64(ConversionsTotal.WithLabelValues(KindQuery, OutcomeUnparseable)))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/years/{year}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/years/{year}", "418")
	before := testutil.ToFloat64(counter)

	for _, path := range []string{"/years/1", "/years/2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
	assert.Equal(t, float64(0), testutil.ToFloat64(HTTPRequestsInFlight))
}

func TestMiddlewareCollapsesUnmatchedPaths(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {})

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, PathUnmatched, "404")
	before := testutil.ToFloat64(counter)
	series := testutil.CollectAndCount(HTTPRequestsTotal, MetricNameHTTPRequestsTotal)

	for _, path := range []string{"/nope", "/wp-admin/setup.php", "/a/b/c"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	assert.Equal(t, before+3, testutil.ToFloat64(counter))
	// Three distinct raw paths add no series beyond the shared label
	assert.Equal(t, series, testutil.CollectAndCount(HTTPRequestsTotal, MetricNameHTTPRequestsTotal))
}
