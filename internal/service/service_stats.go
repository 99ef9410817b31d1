package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-files-manager/internal/cache"
	"github.com/MKhiriev/go-files-manager/internal/logger"
	"github.com/MKhiriev/go-files-manager/internal/store"
	"github.com/MKhiriev/go-files-manager/models"
)

// pingTimeout bounds each backend probe of Status.
const pingTimeout = 2 * time.Second

type statsService struct {
	db             store.Pinger
	sessions       cache.Cache
	userRepository store.UserRepository
	fileRepository store.FileRepository

	logger *logger.Logger
}

func NewStatsService(db store.Pinger, sessions cache.Cache, userRepository store.UserRepository, fileRepository store.FileRepository, logger *logger.Logger) StatsService {
	return &statsService{
		db:             db,
		sessions:       sessions,
		userRepository: userRepository,
		fileRepository: fileRepository,
		logger:         logger,
	}
}

func (s *statsService) Status(ctx context.Context) models.Status {
	log := logger.FromContext(ctx)

	redisCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	redisErr := s.sessions.Ping(redisCtx)
	if redisErr != nil {
		log.Warn().Err(redisErr).Msg("session cache is unreachable")
	}

	dbCtx, cancelDB := context.WithTimeout(ctx, pingTimeout)
	defer cancelDB()
	dbErr := s.db.PingContext(dbCtx)
	if dbErr != nil {
		log.Warn().Err(dbErr).Msg("database is unreachable")
	}

	return models.Status{Redis: redisErr == nil, DB: dbErr == nil}
}

func (s *statsService) Stats(ctx context.Context) models.Stats {
	log := logger.FromContext(ctx)

	users, err := s.userRepository.CountUsers(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("error counting users")
		users = 0
	}

	files, err := s.fileRepository.CountEntries(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("error counting files")
		files = 0
	}

	return models.Stats{Users: users, Files: files}
}
