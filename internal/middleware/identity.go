package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserIdentity resolves the optional X-User-ID header into the request
// context. Session and token mechanics live behind the gateway; this is
// the narrow identity interface the order engine consumes. A missing or
// malformed header simply leaves the request anonymous (guest checkout).
func UserIdentity(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if raw := r.Header.Get("X-User-ID"); raw != "" {
				id, err := uuid.Parse(raw)
				if err != nil {
					logger.Warn().Str("user_id", raw).Msg("malformed user ID header ignored")
				} else {
					r = r.WithContext(context.WithValue(r.Context(), userIDKey, id))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserID returns the authenticated user's ID from the context, or nil
// for anonymous requests.
func UserID(ctx context.Context) *uuid.UUID {
	if id, ok := ctx.Value(userIDKey).(uuid.UUID); ok {
		return &id
	}
	return nil
}
