package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/slidedeck/internal/api/shared"
	"github.com/phrazzld/slidedeck/internal/platform/logger"
)

// maxInboundTraceID bounds trace IDs accepted from the X-Trace-ID header.
const maxInboundTraceID = 64

// TraceMiddleware adds a trace ID to the request context, reusing the one
// sent in X-Trace-ID when present, and installs a request logger carrying it.
// Apply it early so every later handler sees the trace ID.
func TraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if inbound := r.Header.Get(shared.TraceIDHeader); inbound != "" && len(inbound) <= maxInboundTraceID {
				ctx = shared.WithTraceID(ctx, inbound)
			} else {
				ctx = shared.SetTraceID(ctx)
			}
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)
			w.Header().Set(shared.TraceIDHeader, traceID)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
