// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package blob stores the payload bytes of files and images apart from their
// metadata records. A payload lives at an opaque location produced by
// [Storage.Location]; thumbnails are stored next to it at
// "<location>_<width>".
package blob

import (
	"context"
	"fmt"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/blob_mock.go -package=mock

// Storage persists payload bytes.
//
// Implementations must be safe for concurrent use.
type Storage interface {
	// Location returns where a payload with the given key is stored.
	Location(key string) string

	// Put writes data at location, replacing any previous content.
	Put(ctx context.Context, location string, data []byte) error

	// Get reads the content at location. It returns [ErrObjectNotFound]
	// when nothing is stored there.
	Get(ctx context.Context, location string) ([]byte, error)

	// Delete removes the content at location. Deleting a missing object is
	// not an error.
	Delete(ctx context.Context, location string) error
}

// ThumbnailLocation returns where the thumbnail of the given width of the
// payload at location is stored.
func ThumbnailLocation(location string, width int) string {
	return fmt.Sprintf("%s_%d", location, width)
}
