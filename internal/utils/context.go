// Package utils provides general-purpose helper utilities used across the
// files-manager packages: type-safe context keys, JSON response writing,
// identifier generation, password hashing, and HTTP client initialization.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key under which the auth middleware stores the id of
// the authenticated user.
//
//	ctx := context.WithValue(ctx, utils.UserIDCtxKey, user.ID)
var UserIDCtxKey = contextKey("userID")

// TokenCtxKey is the key under which the auth middleware stores the session
// token the request was authenticated with.
var TokenCtxKey = contextKey("token")

// GetUserIDFromContext retrieves the user identifier from the context.
//
// ok is false when the value is missing, has an unexpected type or is empty.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok && userID != ""
}

// GetTokenFromContext retrieves the session token from the context.
func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenCtxKey).(string)
	return token, ok && token != ""
}
