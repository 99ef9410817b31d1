package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/MKhiriev/go-files-manager/internal/logger"
	"github.com/MKhiriev/go-files-manager/internal/mock"
	"github.com/MKhiriev/go-files-manager/internal/queue"
	"github.com/MKhiriev/go-files-manager/internal/store"
	"github.com/MKhiriev/go-files-manager/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func onboardingJob(t *testing.T, payload any) queue.Job {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return queue.Job{ID: "job-2", Queue: models.UserQueue, Payload: body, Attempts: 1, MaxAttempts: 3}
}

func TestOnboardingWorker_Welcome(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	users.EXPECT().FindUserByID(gomock.Any(), userID).Return(models.User{ID: userID, Email: "bob@dylan.com"}, nil)

	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	w := NewOnboardingWorker(users, logger.Nop())
	require.NoError(t, w.ProcessJob(ctx, onboardingJob(t, models.UserOnboardingJob{UserID: userID})))

	assert.Contains(t, buf.String(), "Welcome bob@dylan.com!")
}

func TestOnboardingWorker_Failures(t *testing.T) {
	tests := []struct {
		name      string
		payload   any
		lookupErr error
		want      error
		permanent bool
	}{
		{name: "missing userId", payload: map[string]string{}, want: ErrMissingUserID, permanent: true},
		{name: "unknown user", payload: models.UserOnboardingJob{UserID: userID}, lookupErr: store.ErrUserNotFound, want: ErrUserNotFound, permanent: true},
		{name: "db down", payload: models.UserOnboardingJob{UserID: userID}, lookupErr: errors.New("db down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			users := mock.NewMockUserRepository(ctrl)
			if tt.lookupErr != nil {
				users.EXPECT().FindUserByID(gomock.Any(), userID).Return(models.User{}, tt.lookupErr)
			}

			w := NewOnboardingWorker(users, logger.Nop())
			err := w.ProcessJob(context.Background(), onboardingJob(t, tt.payload))

			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
			assert.Equal(t, tt.permanent, errors.Is(err, queue.ErrSkipRetry))
		})
	}
}
