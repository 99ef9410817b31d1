// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client runs one command line.
type Client interface {
	// Run executes the subcommand named by args[0].
	Run(ctx context.Context, args []string) error
}

// TokenStore persists the session token between invocations.
type TokenStore interface {
	// Load returns the saved token, or "" when none is saved.
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Clipboard receives tokens copied by "connect --copy".
type Clipboard interface {
	WriteAll(text string) error
}
