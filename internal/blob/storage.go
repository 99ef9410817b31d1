package blob

import (
	"fmt"

	"github.com/MKhiriev/go-files-manager/internal/config"
	"github.com/MKhiriev/go-files-manager/internal/logger"
)

// New builds the payload store selected by cfg.Backend.
func New(cfg config.Files, log *logger.Logger) (Storage, error) {
	switch cfg.Backend {
	case config.FilesBackendLocal:
		log.Info().Str("folder", cfg.FolderPath).Msg("using local payload storage")
		return NewLocalStorage(cfg.FolderPath)
	case config.FilesBackendMinIO:
		log.Info().Str("endpoint", cfg.MinIO.Endpoint).Str("bucket", cfg.MinIO.Bucket).Msg("using minio payload storage")
		return NewMinIO(cfg.MinIO)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
