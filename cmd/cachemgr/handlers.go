package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/ashpect/cachemgr/pkg/cache"
	"github.com/ashpect/cachemgr/pkg/logging"
	"github.com/ashpect/cachemgr/pkg/settings"
)

type cacheInspector interface {
	Stats() cache.Stats
	Keys() []string
}

// newMux routes the debug and settings endpoints. metrics may be nil.
func newMux(c cacheInspector, store *settings.Store, metrics http.Handler, logger *logging.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}

	mux.HandleFunc("GET /debug/cache/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, http.StatusOK, c.Stats())
	})

	mux.HandleFunc("GET /debug/cache/keys", func(w http.ResponseWriter, r *http.Request) {
		keys := c.Keys()
		sort.Strings(keys)
		writeJSON(w, logger, http.StatusOK, keys)
	})

	mux.HandleFunc("GET /settings/{key}", func(w http.ResponseWriter, r *http.Request) {
		key := r.PathValue("key")
		v, err := store.Get(key)
		switch {
		case errors.Is(err, settings.ErrNotFound):
			http.Error(w, "setting not found", http.StatusNotFound)
		case err != nil:
			logger.Error("settings lookup failed", "key", key, "error", err)
			http.Error(w, "settings unavailable", http.StatusInternalServerError)
		default:
			writeJSON(w, logger, http.StatusOK, map[string]any{key: v})
		}
	})

	return mux
}

func writeJSON(w http.ResponseWriter, logger *logging.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("error writing response body", "error", err)
	}
}
