// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of request parsing. They are logged but never shown to
// the client, which always receives a uniform 401 body.
var (
	// ErrEmptyTokenHeader is returned when a protected route is called
	// without an "X-Token" header.
	ErrEmptyTokenHeader = errors.New("empty `X-Token` header")

	// ErrInvalidBasicAuth is returned by /connect when the "Authorization"
	// header is missing or is not a well-formed Basic credential.
	ErrInvalidBasicAuth = errors.New("invalid `Authorization` header")

	// ErrNoUserInContext is returned when a handler behind the auth
	// middleware finds no user id in the request context.
	ErrNoUserInContext = errors.New("no user id in request context")
)

const (
	msgUnauthorized  = "Unauthorized"
	msgInternalError = "Internal server error"
	msgInvalidJSON   = "Invalid JSON"
	msgNotFound      = "Not found"
)
