package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-files-manager/internal/config"
	"github.com/hibiken/asynq"
)

// RedisProducer enqueues jobs as asynq tasks. The task type is the queue
// name, so one consumer per queue handles every task it receives.
type RedisProducer struct {
	client   *asynq.Client
	maxRetry int
	timeout  time.Duration
}

// NewRedisProducer returns a producer on client. Every job may be tried
// cfg.MaxAttempts times, each attempt bounded by cfg.LeaseDuration.
func NewRedisProducer(client *asynq.Client, cfg config.Workers) *RedisProducer {
	maxRetry := cfg.MaxAttempts - 1
	if maxRetry < 0 {
		maxRetry = 0
	}

	return &RedisProducer{
		client:   client,
		maxRetry: maxRetry,
		timeout:  cfg.LeaseDuration,
	}
}

func (p *RedisProducer) Enqueue(ctx context.Context, queueName string, payload any) (string, error) {
	if queueName == "" {
		return "", ErrEmptyQueueName
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("error encoding job payload: %w", err)
	}

	info, err := p.client.EnqueueContext(ctx, asynq.NewTask(queueName, body), p.options(queueName)...)
	if err != nil {
		return "", fmt.Errorf("error enqueueing job on %s: %w", queueName, err)
	}

	return info.ID, nil
}

func (p *RedisProducer) options(queueName string) []asynq.Option {
	opts := []asynq.Option{
		asynq.Queue(queueName),
		asynq.MaxRetry(p.maxRetry),
	}
	if p.timeout > 0 {
		opts = append(opts, asynq.Timeout(p.timeout))
	}
	return opts
}
