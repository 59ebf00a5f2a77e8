// Request counting and request logging middleware.

package server

import (
	"net/http"
	"time"

	"github.com/imitatus/imitatus/pkg/requestlog"
)

// withMiddleware wraps the root handler with per-route counting and
// request logging. The counter increments before dispatch, so
// /debug/vars reports attempted calls (including ones that later fail
// auth), not just successful ones.
func (s *Server) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		path := r.URL.Path
		if path == "" {
			// CONNECT carries an authority target instead of a path.
			path = r.Host
		}
		s.counters.Inc(r.Method, routePattern(r.URL.Path))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		dur := time.Since(start)
		s.requests.Log(&requestlog.Entry{
			Timestamp:  start,
			Method:     r.Method,
			Path:       path,
			Status:     rec.status,
			RemoteAddr: r.RemoteAddr,
			DurationMs: dur.Milliseconds(),
		})
		s.log.Debug("request handled",
			"method", r.Method,
			"path", path,
			"status", rec.status,
			"duration_ms", dur.Milliseconds(),
		)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	status        int
	headerWritten bool
}

// WriteHeader captures the status code before writing the header.
func (w *statusRecorder) WriteHeader(code int) {
	if !w.headerWritten {
		w.status = code
		w.headerWritten = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// Write captures status code if not already written (implicit 200 OK).
func (w *statusRecorder) Write(b []byte) (int, error) {
	if !w.headerWritten {
		w.status = http.StatusOK
		w.headerWritten = true
	}
	return w.ResponseWriter.Write(b)
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController support.
func (w *statusRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
