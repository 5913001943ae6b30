package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/slidedeck/internal/api/shared"
	"github.com/phrazzld/slidedeck/internal/events"
	"github.com/phrazzld/slidedeck/internal/platform/logger"
	"github.com/phrazzld/slidedeck/internal/service/auth"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates JWT tokens from the Authorization header. The token
// subject is stored on the request context and becomes the actor of every
// document change the request makes.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				logger.FromContextOrDefault(r.Context(), slog.Default()).
					Error("failed to validate token", "error", err)
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		ctx := shared.WithSubject(r.Context(), claims.Subject)
		ctx = events.WithActor(ctx, claims.Subject)
		ctx = logger.WithLogger(ctx,
			logger.FromContextOrDefault(ctx, slog.Default()).With("subject", claims.Subject))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSubject extracts the authenticated subject from the request context.
// Returns the subject and a boolean indicating if it was found.
func GetSubject(r *http.Request) (string, bool) {
	subject := shared.GetSubject(r.Context())
	return subject, subject != ""
}
