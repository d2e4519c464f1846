package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IndependentRegistries(t *testing.T) {
	t.Parallel()

	a := New()
	b := New()

	a.ReloadsTotal.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.ReloadsTotal))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ReloadsTotal))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	t.Parallel()

	m := New()
	m.HTTPRequestsTotal.WithLabelValues("GET", "/", "200").Inc()
	m.HTTPRequestDuration.WithLabelValues("GET", "/", "200").Observe(0.01)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `http_requests_total{method="GET",route="/",status="200"} 1`)
	assert.Contains(t, string(body), "http_request_duration_seconds_bucket")
	assert.Contains(t, string(body), "wifi_api_reloads_total 0")
	assert.Contains(t, string(body), "go_goroutines")
}
