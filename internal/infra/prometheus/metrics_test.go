package prometheus

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cdentertainment/site-api/config"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveCounters(t *testing.T) {
	before := testutil.ToFloat64(songRequestsSubmitted)
	ObserveSongRequestSubmitted()
	assert.Equal(t, before+1, testutil.ToFloat64(songRequestsSubmitted))

	closed := songRequestsRejected.WithLabelValues("closed")
	before = testutil.ToFloat64(closed)
	ObserveSongRequestRejected("closed")
	assert.Equal(t, before+1, testutil.ToFloat64(closed))

	bulk := songRequestsArchived.WithLabelValues("bulk")
	before = testutil.ToFloat64(bulk)
	ObserveSongRequestsArchived("bulk", 3)
	ObserveSongRequestsArchived("bulk", 0)
	assert.Equal(t, before+3, testutil.ToFloat64(bulk))
}

func TestRegisterIsIdempotentAndServed(t *testing.T) {
	Register()
	Register()
	ObserveSearch("ok")
	ObserveLead("contact")

	srv := NewServer(config.PrometheusConfig{})
	assert.Equal(t, ":9090", srv.Addr)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `site_song_search_total{outcome="ok"}`))
	assert.True(t, strings.Contains(body, `site_leads_total{kind="contact"}`))
}
