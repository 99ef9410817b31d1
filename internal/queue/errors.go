package queue

import (
	"errors"
	"fmt"
)

var (
	// ErrSkipRetry marks handler errors that retrying cannot fix. Jobs
	// failing with it are archived on the first attempt.
	ErrSkipRetry = errors.New("skip retry")

	// ErrEmptyQueueName is returned when enqueueing without a queue name.
	ErrEmptyQueueName = errors.New("queue name is empty")
)

// Permanent wraps err so that the job is not retried.
func Permanent(err error) error {
	return fmt.Errorf("%w: %w", ErrSkipRetry, err)
}
