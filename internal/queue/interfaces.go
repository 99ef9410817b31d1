// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package queue implements durable named job queues on top of Redis with
// asynq.
//
// Producers store a task in the queue and return as soon as Redis accepted
// it. Consumers run a fixed number of handler slots per queue. Failed jobs
// are retried by asynq with its backoff until the attempt limit is reached,
// then archived. A job whose worker died is recovered by asynq and delivered
// again, so delivery is at-least-once.
package queue

import (
	"context"
	"encoding/json"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/queue_mock.go -package=mock

// Job is one delivery of a queued task to a handler.
type Job struct {
	ID      string
	Queue   string
	Payload json.RawMessage

	// Attempts counts deliveries, starting at 1.
	Attempts    int
	MaxAttempts int
}

// Decode unmarshals the job payload into v.
func (j Job) Decode(v any) error {
	return json.Unmarshal(j.Payload, v)
}

// Producer adds jobs to a named queue.
type Producer interface {
	// Enqueue stores payload as a new job of queueName and returns its id. It does
	// not wait for the job to be processed.
	Enqueue(ctx context.Context, queueName string, payload any) (string, error)
}

// Handler processes jobs of one queue. A nil error acknowledges the job.
type Handler interface {
	ProcessJob(ctx context.Context, job Job) error
}

// HandlerFunc adapts a function to [Handler].
type HandlerFunc func(ctx context.Context, job Job) error

// ProcessJob calls f(ctx, job).
func (f HandlerFunc) ProcessJob(ctx context.Context, job Job) error {
	return f(ctx, job)
}
