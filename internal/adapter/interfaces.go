// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the files-manager REST API.
//
// [ServerAdapter] hides the transport from the command-line client. The HTTP
// implementation ([NewHTTPServerAdapter]) is built on resty; non-2xx
// responses are mapped by mapHTTPError onto the sentinels in errors.go, so
// callers can use [errors.Is] (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-files-manager/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter talks to the files-manager API on behalf of one user.
type ServerAdapter interface {
	// SetToken stores the session token sent as X-Token with every
	// authenticated request.
	SetToken(token string)

	// Token returns the stored session token, or "" when there is none.
	Token() string

	// Register creates an account. It does not open a session.
	Register(ctx context.Context, email, password string) (models.User, error)

	// Connect opens a session with Basic credentials and stores the token.
	Connect(ctx context.Context, email, password string) (models.Token, error)

	// Disconnect ends the current session and clears the stored token.
	Disconnect(ctx context.Context) error

	Me(ctx context.Context) (models.User, error)

	CreateEntry(ctx context.Context, req models.CreateEntryRequest) (models.FileEntry, error)
	GetEntry(ctx context.Context, id string) (models.FileEntry, error)
	ListEntries(ctx context.Context, parentID models.ParentID, page int) ([]models.FileEntry, error)
	SetPublic(ctx context.Context, id string, isPublic bool) (models.FileEntry, error)

	// Download returns the payload of an entry, or one of its thumbnails
	// when size is not zero.
	Download(ctx context.Context, id string, size int) ([]byte, error)

	Status(ctx context.Context) (models.Status, error)
	Stats(ctx context.Context) (models.Stats, error)
}
