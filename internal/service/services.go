package service

import (
	"fmt"

	"github.com/MKhiriev/go-files-manager/internal/blob"
	"github.com/MKhiriev/go-files-manager/internal/cache"
	"github.com/MKhiriev/go-files-manager/internal/config"
	"github.com/MKhiriev/go-files-manager/internal/logger"
	"github.com/MKhiriev/go-files-manager/internal/queue"
	"github.com/MKhiriev/go-files-manager/internal/store"
)

type Services struct {
	AuthService    AuthService
	FileService    FileService
	StatsService   StatsService
	AppInfoService AppInfoService
}

// Dependencies are the backend clients the services are built on. They are
// created once by the binary and shared by all services.
type Dependencies struct {
	Repositories *store.Repositories
	Sessions     cache.Cache
	Payloads     blob.Storage
	Producer     queue.Producer
}

func NewServices(deps Dependencies, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	repos := deps.Repositories
	return &Services{
		AuthService:    NewAuthService(repos.UserRepository, deps.Sessions, deps.Producer, cfg.App, logger),
		FileService:    NewFileService(repos.FileRepository, deps.Payloads, deps.Producer, logger),
		StatsService:   NewStatsService(repos.DB, deps.Sessions, repos.UserRepository, repos.FileRepository, logger),
		AppInfoService: appInfo,
	}, nil
}
