package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/punchclockhq/punchclock/pkg/observability"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// routeTemplate returns the matched mux template so labels stay bounded,
// falling back to the raw path outside a mux route.
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return r.URL.Path
}

// loggingMiddleware logs one line per request at info level, tagged with the
// active trace, and mirrors the request onto the OTLP metrics pipeline when
// one is configured.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)
		duration := time.Since(start)

		if s.otel != nil {
			s.otel.RecordHTTPRequest(r.Context(), r.Method, routeTemplate(r), rec.status, duration)
		}
		s.logger.WithTraceContext(r.Context()).WithFields(map[string]any{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"duration_ms": duration.Milliseconds(),
		}).Info("request completed")
	})
}

// recoveryMiddleware converts handler panics into 500 responses so one bad
// request cannot take the process down.
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := s.logger.WithFields(map[string]any{
			"method": r.Method,
			"path":   r.URL.Path,
		})
		defer observability.RecoverPanic(logger, "http handler", func() {
			writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
		})
		next.ServeHTTP(w, r)
	})
}
