package rest

import (
	"net/http"
	"time"

	"github.com/light-bringer/catalog-service/internal/auth"
	"github.com/light-bringer/catalog-service/internal/logging"
	"github.com/light-bringer/catalog-service/internal/metrics"
)

// RequireAuth gates a route group behind bearer-token verification.
func RequireAuth(verifier *auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := verifier.FromRequest(r); err != nil {
				logging.Debug().Err(err).Str("path", r.URL.Path).Msg("rejected unauthenticated request")
				writeError(w, http.StatusUnauthorized, kindUnauthorized, "a valid bearer token is required", "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// statusRecorder captures the response code for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// RequestLogger emits one structured log line per request and feeds the
// request duration histogram. The websocket route is skipped: its requests
// live for the whole connection.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ws" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)

		metrics.RequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(elapsed.Seconds())
		logging.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", elapsed).
			Msg("http request")
	})
}
