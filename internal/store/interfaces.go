package store

import (
	"context"

	"github.com/MKhiriev/go-files-manager/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts in the "users" table.
type UserRepository interface {
	// CreateUser inserts user and returns it with CreatedAt populated.
	// A duplicate email yields [ErrEmailAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByEmail yields [ErrUserNotFound] when no account matches.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// FindUserByID yields [ErrUserNotFound] when no account matches.
	FindUserByID(ctx context.Context, id string) (models.User, error)
	CountUsers(ctx context.Context) (int64, error)
}

// FileRepository persists entry metadata in the "files" table.
type FileRepository interface {
	// CreateEntry inserts entry. A sibling with the same name yields
	// [ErrEntryAlreadyExists].
	CreateEntry(ctx context.Context, entry models.FileEntry) (models.FileEntry, error)
	// FindEntryByID yields [ErrEntryNotFound] when no entry matches.
	FindEntryByID(ctx context.Context, id string) (models.FileEntry, error)
	// ListEntries returns the owner's entries directly under parentID,
	// ordered by creation time and id.
	ListEntries(ctx context.Context, ownerID string, parentID models.ParentID, limit, offset uint64) ([]models.FileEntry, error)
	// SetPublic updates the visibility of an entry owned by ownerID and
	// returns the updated record. Yields [ErrEntryNotFound] when ownerID
	// does not own an entry with that id.
	SetPublic(ctx context.Context, ownerID, id string, isPublic bool) (models.FileEntry, error)
	// SetThumbnails records all thumbnail locations of an image in one update.
	SetThumbnails(ctx context.Context, id string, thumbnails map[int]string) error
	CountEntries(ctx context.Context) (int64, error)
}

// Pinger reports whether the database answers.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
