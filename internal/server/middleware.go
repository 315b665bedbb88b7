// internal/server/middleware.go
package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"mergington-activities/internal/common/metrics"
)

// requestIDHeader carries the per-request correlation ID.
const requestIDHeader = "X-Request-ID"

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// withRequestID assigns a request ID when the client didn't send one and
// echoes it back on the response.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r)
	})
}

// instrument wraps a route handler with request logging, Prometheus
// counters, and the OTel request instruments. The route label is the mux
// pattern, not the raw path, to keep metric cardinality bounded.
func (s *Server) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		status := strconv.Itoa(rec.status)

		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())

		if s.obs != nil {
			s.obs.RecordRequestProcessed(r.Context(), route, status)
			s.obs.RecordRequestDuration(r.Context(), elapsed, route)
		}

		s.logger.Debug("request handled", map[string]interface{}{
			"method":    r.Method,
			"route":     route,
			"status":    rec.status,
			"elapsed":   elapsed.String(),
			"requestId": w.Header().Get(requestIDHeader),
		})
	})
}
