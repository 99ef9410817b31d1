package cache

import (
	"fmt"

	"github.com/MKhiriev/go-files-manager/internal/config"
	"github.com/MKhiriev/go-files-manager/internal/logger"
)

// New builds the session cache selected by cfg.Backend.
func New(cfg config.Cache, log *logger.Logger) (Cache, error) {
	switch cfg.Backend {
	case config.CacheBackendRedis:
		return NewRedisCache(cfg, log), nil
	case config.CacheBackendMemory:
		log.Info().Msg("using in-process session cache")
		return NewMemoryCache(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
