package transport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/LiamCoop/timetracker/internal/repository"
)

// ErrUnauthorized indicates invalid or missing credentials.
var ErrUnauthorized = errors.New("unauthorized")

type userKey struct{}

// UserResolver resolves a user ID from a bearer token.
type UserResolver interface {
	ResolveUser(ctx context.Context, token string) (string, error)
}

// UserFromContext returns the authenticated user ID from context, if present.
func UserFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userKey{}).(string)
	return userID, ok && userID != ""
}

// WithUser returns a context carrying userID.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// AuthMiddleware enforces bearer token authentication. Unknown tokens get a
// 401; resolver failures are logged and answered with a 500.
func AuthMiddleware(resolver UserResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r.Header.Get("Authorization"))
			if token == "" {
				writeUnauthorized(w)
				return
			}

			userID, err := resolver.ResolveUser(r.Context(), token)
			switch {
			case errors.Is(err, repository.ErrNotFound), errors.Is(err, ErrUnauthorized):
				writeUnauthorized(w)
				return
			case err != nil:
				if logger != nil {
					logger.ErrorContext(r.Context(), "resolve bearer token",
						"path", r.URL.Path,
						"error", err,
					)
				}
				writeErrorBody(w, http.StatusInternalServerError, CodeInternal, "Internal server error")
				return
			case userID == "":
				writeUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), userID)))
		})
	}
}

// StaticUserMiddleware authenticates every request as userID. Only for
// local use with auth disabled.
func StaticUserMiddleware(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), userID)))
		})
	}
}

// requireUser guards handlers that must never run without an identity.
func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			writeUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}
