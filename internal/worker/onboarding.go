package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-files-manager/internal/logger"
	"github.com/MKhiriev/go-files-manager/internal/queue"
	"github.com/MKhiriev/go-files-manager/internal/store"
	"github.com/MKhiriev/go-files-manager/models"
)

// OnboardingWorker greets newly registered users.
type OnboardingWorker struct {
	users store.UserRepository

	logger *logger.Logger
}

func NewOnboardingWorker(users store.UserRepository, logger *logger.Logger) *OnboardingWorker {
	return &OnboardingWorker{
		users:  users,
		logger: logger,
	}
}

func (w *OnboardingWorker) ProcessJob(ctx context.Context, job queue.Job) error {
	var payload models.UserOnboardingJob
	if err := job.Decode(&payload); err != nil {
		return queue.Permanent(fmt.Errorf("%w: %w", ErrInvalidPayload, err))
	}
	if payload.UserID == "" {
		return queue.Permanent(ErrMissingUserID)
	}

	user, err := w.users.FindUserByID(ctx, payload.UserID)
	if errors.Is(err, store.ErrUserNotFound) {
		return queue.Permanent(ErrUserNotFound)
	}
	if err != nil {
		return fmt.Errorf("error loading user %s: %w", payload.UserID, err)
	}

	logger.FromContext(ctx).Info().Str("user_id", user.ID).Msgf("Welcome %s!", user.Email)
	return nil
}
