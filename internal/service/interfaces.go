package service

import (
	"context"

	"github.com/MKhiriev/go-files-manager/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService manages accounts and their session tokens.
type AuthService interface {
	RegisterUser(ctx context.Context, email, password string) (models.User, error)
	Authenticate(ctx context.Context, email, password string) (models.Token, error)
	// ResolveSession returns the id of the user a live token belongs to.
	// It never extends the token lifetime.
	ResolveSession(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
	Me(ctx context.Context, userID string) (models.User, error)
}

// FileService manages folders, files and images of their owners.
type FileService interface {
	CreateEntry(ctx context.Context, ownerID string, req models.CreateEntryRequest) (models.FileEntry, error)
	GetEntry(ctx context.Context, requesterID, entryID string) (models.FileEntry, error)
	ListChildren(ctx context.Context, requesterID string, req models.ListEntriesRequest) ([]models.FileEntry, error)
	Publish(ctx context.Context, requesterID, entryID string) (models.FileEntry, error)
	Unpublish(ctx context.Context, requesterID, entryID string) (models.FileEntry, error)
	// GetContent returns the payload of an entry, or its thumbnail of the
	// given width when size is not zero.
	GetContent(ctx context.Context, requesterID, entryID string, size int) (models.FileContent, error)
}

// StatsService reports backend health and record counts. Its methods never
// fail; unavailable backends are reported as down or as zero counts.
type StatsService interface {
	Status(ctx context.Context) models.Status
	Stats(ctx context.Context) models.Stats
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

type idGenerator interface {
	Generate() string
}
