package queue

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/MKhiriev/go-files-manager/internal/config"
	"github.com/MKhiriev/go-files-manager/internal/logger"
	"github.com/hibiken/asynq"
)

// taskServer is the part of [asynq.Server] a [Consumer] drives.
type taskServer interface {
	Start(handler asynq.Handler) error
	Shutdown()
}

// Consumer feeds the jobs of one queue to a [Handler] from a fixed number of
// slots. Each slot holds at most one job at a time.
type Consumer struct {
	server  taskServer
	queue   string
	handler Handler
	logger  *logger.Logger
}

// NewConsumer builds a consumer of queueName. Slot count, idle poll interval
// and shutdown grace period come from cfg.
func NewConsumer(redis asynq.RedisConnOpt, queueName string, handler Handler, cfg config.Workers, log *logger.Logger) *Consumer {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	c := &Consumer{
		queue:   queueName,
		handler: handler,
		logger:  log.WithStr("queue", queueName),
	}
	c.server = asynq.NewServer(redis, asynq.Config{
		Concurrency:       concurrency,
		Queues:            map[string]int{queueName: 1},
		TaskCheckInterval: cfg.PollInterval,
		ShutdownTimeout:   cfg.ShutdownTimeout,
		Logger:            asynqLogger{logger: c.logger},
	})

	return c
}

// Run processes jobs until ctx is canceled. Jobs already being handled keep
// their own context and are finished before Run returns; jobs still running
// after the shutdown timeout are put back in the queue.
func (c *Consumer) Run(ctx context.Context) error {
	if err := c.server.Start(c); err != nil {
		return fmt.Errorf("error starting consumer of %s: %w", c.queue, err)
	}
	c.logger.Info().Msg("consumer started")

	<-ctx.Done()
	c.server.Shutdown()

	c.logger.Info().Msg("consumer stopped")
	return nil
}

// ProcessTask implements [asynq.Handler].
func (c *Consumer) ProcessTask(ctx context.Context, task *asynq.Task) error {
	job := jobFromTask(ctx, c.queue, task)

	log := c.logger.With().
		Str("job_id", job.ID).
		Int("attempt", job.Attempts).
		Logger()

	err := c.process(log.WithContext(ctx), job)
	switch {
	case err == nil:
		log.Info().Msg("job completed")
		return nil
	case errors.Is(err, ErrSkipRetry):
		log.Warn().Err(err).Msg("job failed permanently")
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	case job.Attempts >= job.MaxAttempts:
		log.Warn().Err(err).Msg("job failed, no attempts left")
		return err
	default:
		log.Warn().Err(err).Msg("job failed, will be retried")
		return err
	}
}

// process runs the handler and turns a panic into an error.
func (c *Consumer) process(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error().Bytes("stack", debug.Stack()).Msgf("job handler panicked: %v", r)
			err = fmt.Errorf("job handler panicked: %v", r)
		}
	}()

	return c.handler.ProcessJob(ctx, job)
}

// jobFromTask reads the delivery metadata asynq stores in ctx.
func jobFromTask(ctx context.Context, queueName string, task *asynq.Task) Job {
	id, _ := asynq.GetTaskID(ctx)
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)

	return Job{
		ID:          id,
		Queue:       queueName,
		Payload:     task.Payload(),
		Attempts:    retried + 1,
		MaxAttempts: maxRetry + 1,
	}
}
