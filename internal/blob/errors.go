package blob

import "errors"

var (
	// ErrObjectNotFound is returned when no content is stored at a location.
	ErrObjectNotFound = errors.New("object not found")

	// ErrInvalidLocation is returned for locations outside the storage root.
	ErrInvalidLocation = errors.New("invalid object location")

	// ErrInvalidMinIOConfig is returned by [NewMinIO] for incomplete settings.
	ErrInvalidMinIOConfig = errors.New("invalid minio config")

	// ErrUnknownBackend is returned by [New] for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown files backend")
)
