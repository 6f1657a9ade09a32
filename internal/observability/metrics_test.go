package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordAuthz(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordAuthz("MEMBER", "denied")
	m.RecordAuthz("MEMBER", "denied")
	m.RecordAuthz("OWNER", "allowed")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuthzDecisionsTotal.WithLabelValues("MEMBER", "denied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthzDecisionsTotal.WithLabelValues("OWNER", "allowed")))
}

func TestMetrics_ObserveProtocol(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveProtocol("cascade_delete", time.Now(), nil)
	m.ObserveProtocol("cascade_delete", time.Now(), errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProtocolTotal.WithLabelValues("cascade_delete", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProtocolTotal.WithLabelValues("cascade_delete", "error")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordAuthz("OWNER", "allowed")
		m.ObserveProtocol("bootstrap", time.Now(), nil)
		m.RecordRoleCache(true)
	})
}

func TestHandler_ServesRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)
	m.RecordRoleCache(false)

	rec := httptest.NewRecorder()
	Handler(registry).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "teamsync_role_cache_lookups_total")
}
