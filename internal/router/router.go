package router

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ovaphlow/carelink/service-core/internal/account"
	"github.com/ovaphlow/carelink/service-core/internal/appointment"
	"github.com/ovaphlow/carelink/service-core/internal/job"
	"github.com/ovaphlow/carelink/service-core/internal/provider"
	"github.com/ovaphlow/carelink/service-core/internal/recipient"
	"github.com/ovaphlow/carelink/service-core/pkg/database"
	"github.com/ovaphlow/carelink/service-core/pkg/utilities"
)

const requestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID returns the id RequestIDMiddleware attached to ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// RequestIDMiddleware keeps an incoming X-Request-ID or assigns a new ksuid,
// echoes it on the response and stores it in the request context.
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" || len(id) > 64 {
				id = utilities.NewRequestID()
			}
			w.Header().Set(requestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
		})
	}
}

// LoggingMiddleware logs every request at debug level, and server errors at warn.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)
			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			fields := []any{
				"request_id", RequestID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"status", status,
				"duration_ms", float64(time.Since(start).Microseconds()) / 1000.0,
				"size", lrw.size,
			}
			if status >= http.StatusInternalServerError {
				logger.Warnw("http request", fields...)
				return
			}
			logger.Debugw("http request", fields...)
		})
	}
}

// SecurityHeadersMiddleware sets the response headers every JSON answer carries.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer")
			w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
			if r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=2592000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

func health(sessions *database.Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := sessions.DB().PingContext(ctx); err != nil {
			utilities.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		utilities.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// RegisterRoutes mounts every /api endpoint on a method-aware http.ServeMux.
func RegisterRoutes(logger *zap.SugaredLogger, sessions *database.Sessions) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", health(sessions))

	accounts := account.NewHandler(sessions, logger)
	mux.HandleFunc("POST /api/accounts", accounts.Create)
	mux.HandleFunc("GET /api/accounts/{id}", accounts.Get)
	mux.HandleFunc("PUT /api/accounts/{id}", accounts.Update)
	mux.HandleFunc("DELETE /api/accounts/{id}", accounts.Delete)

	providers := provider.NewHandler(sessions, logger)
	mux.HandleFunc("POST /api/providers", providers.Create)
	mux.HandleFunc("GET /api/providers/{id}", providers.Get)

	recipients := recipient.NewHandler(sessions, logger)
	mux.HandleFunc("POST /api/recipients", recipients.CreateRecipient)
	mux.HandleFunc("GET /api/recipients/{id}", recipients.GetRecipient)
	mux.HandleFunc("POST /api/addresses", recipients.CreateAddress)
	mux.HandleFunc("GET /api/addresses/{id}", recipients.GetAddress)

	jobs := job.NewHandler(sessions, logger)
	mux.HandleFunc("POST /api/jobs", jobs.CreateJob)
	mux.HandleFunc("GET /api/jobs/{id}", jobs.GetJob)
	mux.HandleFunc("POST /api/applications", jobs.Apply)
	mux.HandleFunc("GET /api/applications/{provider_id}/{job_id}", jobs.GetApplication)

	appointments := appointment.NewHandler(sessions, logger)
	mux.HandleFunc("POST /api/appointments", appointments.Create)
	mux.HandleFunc("GET /api/appointments/{id}", appointments.Get)
	mux.HandleFunc("PATCH /api/appointments/{id}/status", appointments.UpdateStatus)

	return RequestIDMiddleware()(LoggingMiddleware(logger)(SecurityHeadersMiddleware()(mux)))
}
