package logging

import (
	"net/http"
	"time"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware logs each request after it is served. Headers are logged at debug level.
func Middleware(l *Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)

		l.Info("request",
			"method", req.Method,
			"url", req.URL.String(),
			"host", req.Host,
			"status", rec.status,
			"duration", time.Since(start),
		)
		l.Debug("request headers", "url", req.URL.String(), "headers", req.Header)
	})
}
