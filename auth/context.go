package auth

// Context utilities for carrying the authenticated user through the request.
// The middleware stores whatever principal the credential verifier resolved;
// handlers that need it type-assert on retrieval.

import (
	"context"
)

// contextKey is a private type for context keys, preventing collisions with
// keys defined in other packages.
type contextKey string

const userContextKey contextKey = "auth_user"

// NewContextWithUser returns a child context carrying the authenticated user.
func NewContextWithUser(ctx context.Context, user any) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext extracts the authenticated user stored by the middleware.
// The second return value is false when no user was attached, which only
// happens on routes outside the authentication gate.
func UserFromContext(ctx context.Context) (any, bool) {
	user := ctx.Value(userContextKey)
	return user, user != nil
}
