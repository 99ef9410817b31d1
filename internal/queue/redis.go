package queue

import (
	"github.com/MKhiriev/go-files-manager/internal/config"
	"github.com/hibiken/asynq"
)

// NewRedisConnOpt describes the Redis connection of producers and consumers.
func NewRedisConnOpt(cfg config.Queue) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}
