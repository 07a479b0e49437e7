package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashpect/cachemgr/pkg/cache"
	"github.com/ashpect/cachemgr/pkg/logging"
	"github.com/ashpect/cachemgr/pkg/settings"
)

type V = map[string]any

func newTestServer(t *testing.T) (*httptest.Server, *cache.TTLCache[V]) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"company_header": "ALIJAYA", "ppn_percent": 11}`), 0o600))

	c := cache.New[V](cache.WithCleanupStart[V](false))
	t.Cleanup(c.Close)

	store := settings.New(path, c)
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("ok")) })
	srv := httptest.NewServer(newMux(c, store, metrics, logging.Nop()))
	t.Cleanup(srv.Close)
	return srv, c
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestMux_Settings(t *testing.T) {
	srv, c := newTestServer(t)

	var body map[string]any
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/settings/company_header", &body))
	assert.Equal(t, map[string]any{"company_header": "ALIJAYA"}, body)

	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/settings/missing", nil))

	var keys []string
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/debug/cache/keys", &keys))
	assert.Equal(t, []string{settings.CacheKey}, keys)
	assert.Equal(t, 1, c.Len())
}

func TestMux_Stats(t *testing.T) {
	srv, c := newTestServer(t)
	c.SetWithTTL("gone", V{}, time.Nanosecond)
	c.Set("live", V{})
	time.Sleep(time.Millisecond)

	var stats cache.Stats
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/debug/cache/stats", &stats))
	assert.Equal(t, cache.Stats{Total: 2, Expired: 1, Active: 1}, stats)
}

func TestMux_Metrics(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/metrics", "text/plain", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestSettingCommand(t *testing.T) {
	dir := t.TempDir()
	settingsPath := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(settingsPath, []byte(`{"ppn_percent": 11}`), 0o600))
	configPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("[settings]\npath = \""+filepath.ToSlash(settingsPath)+"\"\n[log]\nlevel = \"error\"\n"), 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"setting", "ppn_percent", "--config", configPath})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "11\n", out.String())
}
