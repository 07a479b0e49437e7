package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashpect/cachemgr/pkg/cache"
)

func TestCollector_ReportsStats(t *testing.T) {
	mock := clock.NewMock()
	c := cache.New[int](cache.WithClock[int](mock), cache.WithCleanupStart[int](false))
	c.SetWithTTL("a", 1, time.Second)
	c.SetWithTTL("b", 2, time.Minute)
	c.SetWithTTL("c", 3, time.Minute)
	mock.Add(2 * time.Second)

	col := NewCollector("billing", c)

	expected := `
# HELP billing_cache_entries Number of cache entries by expiry state
# TYPE billing_cache_entries gauge
billing_cache_entries{state="active"} 2
billing_cache_entries{state="expired"} 1
# HELP billing_cache_entries_total Number of stored cache entries, including expired ones not yet removed
# TYPE billing_cache_entries_total gauge
billing_cache_entries_total 3
`
	require.NoError(t, testutil.CollectAndCompare(col, strings.NewReader(expected)))

	c.Cleanup()
	assert.Equal(t, 3, testutil.CollectAndCount(col))

	afterCleanup := `
# HELP billing_cache_entries_total Number of stored cache entries, including expired ones not yet removed
# TYPE billing_cache_entries_total gauge
billing_cache_entries_total 2
`
	require.NoError(t, testutil.CollectAndCompare(col, strings.NewReader(afterCleanup), "billing_cache_entries_total"))
}

func TestHandler(t *testing.T) {
	c := cache.New[string](cache.WithCleanupStart[string](false))
	c.Set("settings", "x")

	reg := prometheus.NewRegistry()
	reg.MustRegister(NewCollector("billing", c))

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `billing_cache_entries{state="active"} 1`)
	assert.Contains(t, string(body), "billing_cache_entries_total 1")
}
