package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const SessionIDKey contextKey = "session_id"

// SessionTokenHeader carries the session token for clients that cannot set
// Authorization
const SessionTokenHeader = "X-Session-Token"

// SessionValidator resolves a session token to its session id. It is
// satisfied by service.SessionService.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (uuid.UUID, error)
}

// SessionToken extracts the session token from the request. A bearer
// Authorization header takes precedence over X-Session-Token.
func SessionToken(r *http.Request) (string, bool) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}

	token := strings.TrimSpace(r.Header.Get(SessionTokenHeader))
	return token, token != ""
}

// SessionMiddleware resolves the visitor's session and stores its id in the
// request context
func SessionMiddleware(sessions SessionValidator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := SessionToken(r)
			if !ok {
				logger.Debug("Missing session token")
				RespondWithError(w, http.StatusUnauthorized, "missing session token")
				return
			}

			sessionID, err := sessions.Validate(r.Context(), token)
			switch {
			case err == nil:
			case errors.Is(err, service.ErrSessionExpired):
				logger.Debug("Session expired", zap.Error(err))
				RespondWithError(w, http.StatusUnauthorized, "session expired")
				return
			case errors.Is(err, service.ErrInvalidSession):
				logger.Debug("Session rejected", zap.Error(err))
				RespondWithError(w, http.StatusUnauthorized, "invalid session")
				return
			default:
				// a store failure says nothing about the token
				logger.Error("Session lookup failed", zap.Error(err))
				RespondWithInternalError(w, r, "failed to resolve session")
				return
			}

			ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionID extracts the session id from request context
func GetSessionID(ctx context.Context) (uuid.UUID, bool) {
	sessionID, ok := ctx.Value(SessionIDKey).(uuid.UUID)
	return sessionID, ok
}
