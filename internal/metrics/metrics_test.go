package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.AccessDecision("project", "allow")
	m.AccessDecision("project", "allow")
	m.AccessDecision("team", "NOT_A_MEMBER")
	m.MembershipChange("team", "remove", "LAST_ADMIN_VIOLATION")
	m.Notification("MENTION", nil)
	m.Notification("MENTION", errors.New("db down"))
	m.Email("MENTION", errors.New("smtp down"))
	m.MentionsResolved(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AccessDecisionsTotal.WithLabelValues("project", "allow")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AccessDecisionsTotal.WithLabelValues("team", "NOT_A_MEMBER")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MembershipChangesTotal.WithLabelValues("team", "remove", "LAST_ADMIN_VIOLATION")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsTotal.WithLabelValues("MENTION", StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsTotal.WithLabelValues("MENTION", StatusFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmailsTotal.WithLabelValues("MENTION", StatusFailed)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.MentionsResolvedTotal))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.AccessDecision("team", "allow")
		m.MembershipChange("team", "add", "ok")
		m.Notification("MENTION", nil)
		m.Email("MENTION", nil)
		m.MentionsResolved(1)
	})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	assert.NotNil(t, m.Middleware(next))
}

func TestMetrics_Middleware(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	handler := m.Middleware(mux)

	for _, id := range []string{"p1", "p2"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects/"+id, nil))
		require.Equal(t, http.StatusForbidden, rec.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "GET /projects/{id}", "403")))
}

func TestHandler(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)
	m.AccessDecision("team", "allow")

	server := httptest.NewServer(Handler(registry))
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `docspace_access_decisions_total{outcome="allow",scope="team"} 1`))
}
