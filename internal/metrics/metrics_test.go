package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentHandlerCountsByPathAndCode(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	ok := m.InstrumentHandler("/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	notFound := m.InstrumentHandler("/missing", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		ok.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	rec := httptest.NewRecorder()
	notFound.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.InDelta(t, 3.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/health", "200")), 0.001)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/missing", "404")), 0.001)
}

func TestInstrumentHandlerDefaultsToOK(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	// Handler that writes a body without an explicit WriteHeader.
	h := m.InstrumentHandler("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte("hi"))
		require.NoError(t, err)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.InDelta(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/", "200")), 0.001)
}
