package http

import (
	"github.com/MKhiriev/go-files-manager/internal/logger"
	"github.com/MKhiriev/go-files-manager/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

type Handler struct {
	services *service.Services
	metrics  *requestMetrics
	registry *prometheus.Registry

	logger *logger.Logger
}

// NewHandler registers the request metrics on registry, which is also the
// source served at /metrics.
func NewHandler(services *service.Services, registry *prometheus.Registry, logger *logger.Logger) (*Handler, error) {
	metrics, err := newRequestMetrics(registry)
	if err != nil {
		return nil, err
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		metrics:  metrics,
		registry: registry,
		logger:   logger,
	}, nil
}
