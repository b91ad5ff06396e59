package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Init(t *testing.T) {
	m := NewMetricsWithRegisterer("test", prometheus.NewRegistry())
	m.Init()
	m.Init() // idempotent

	for _, outcome := range []string{"allowed", "missing", "invalid", "deactivated", "expired", "error"} {
		assert.Equal(t, 0.0, testutil.ToFloat64(m.verificationTotal.WithLabelValues(outcome)))
	}
}

func TestMetrics_RecordVerification(t *testing.T) {
	m := NewMetricsWithRegisterer("test", prometheus.NewRegistry())

	m.RecordVerification("allowed", 2*time.Millisecond)
	m.RecordVerification("allowed", time.Millisecond)
	m.RecordVerification("invalid", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.verificationTotal.WithLabelValues("allowed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.verificationTotal.WithLabelValues("invalid")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.Init()
	m.RecordVerification("allowed", time.Millisecond)
	m.RecordRequest(http.MethodGet, "/x", http.StatusOK, time.Millisecond)
}

func TestMetricsMiddleware_RecordsRouteTemplate(t *testing.T) {
	m := NewMetricsWithRegisterer("test", prometheus.NewRegistry())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(MetricsMiddleware(m))
	r.GET("/warranties/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/warranties/42", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestTotal.WithLabelValues(http.MethodGet, "/warranties/:id", "200")))

	// unmatched routes collapse into a single label
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestTotal.WithLabelValues(http.MethodGet, "unmatched", "404")))
}
