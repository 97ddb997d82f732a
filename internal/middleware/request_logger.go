package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"vet-clinic/internal/platform/logger"
)

// RequestLogger loguea cada request con el request id de chi.
// Debe ir después de chimw.RequestID.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				fields := map[string]any{
					"request_id":  chimw.GetReqID(r.Context()),
					"method":      r.Method,
					"path":        r.URL.Path,
					"status":      ww.Status(),
					"bytes":       ww.BytesWritten(),
					"duration_ms": time.Since(start).Milliseconds(),
				}
				if c, ok := GetClaims(r.Context()); ok {
					fields["user_id"] = c.UserID
				}

				switch {
				case ww.Status() >= 500:
					log.Error("http request", fields)
				case ww.Status() >= 400:
					log.Warn("http request", fields)
				default:
					log.Info("http request", fields)
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
