package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/LiamCoop/timetracker/internal/repository"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type contextKey int

const userIDKey contextKey = iota

// ErrUnauthorized is returned for calls without a resolvable identity.
var ErrUnauthorized = errors.New("unauthorized")

// getUserID extracts the caller's user ID from context.
func getUserID(ctx context.Context) string {
	v, _ := ctx.Value(userIDKey).(string)
	return v
}

// UserResolver resolves a user ID from a bearer token.
type UserResolver interface {
	ResolveUser(ctx context.Context, token string) (string, error)
}

// authMiddleware implements bearer token authentication as MCP middleware.
func authMiddleware(resolver UserResolver, logger *slog.Logger) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			// Protocol handshake carries no user data.
			if method == "initialize" || method == "ping" || strings.HasPrefix(method, "notifications/") {
				return next(ctx, method, req)
			}

			extra := req.GetExtra()
			if extra == nil || extra.Header == nil {
				return nil, fmt.Errorf("%w: missing headers", ErrUnauthorized)
			}

			auth := extra.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				return nil, fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
			}

			userID, err := resolver.ResolveUser(ctx, token)
			switch {
			case errors.Is(err, repository.ErrNotFound), errors.Is(err, ErrUnauthorized), err == nil && userID == "":
				return nil, fmt.Errorf("%w: invalid bearer token", ErrUnauthorized)
			case err != nil:
				if logger != nil {
					logger.ErrorContext(ctx, "resolve bearer token", "method", method, "error", err)
				}
				return nil, errors.New("internal error")
			}

			ctx = context.WithValue(ctx, userIDKey, userID)
			return next(ctx, method, req)
		}
	}
}

// noAuthMiddleware injects a default user when auth is disabled.
func noAuthMiddleware(defaultUser string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			ctx = context.WithValue(ctx, userIDKey, defaultUser)
			return next(ctx, method, req)
		}
	}
}
