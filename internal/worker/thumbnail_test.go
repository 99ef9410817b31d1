package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/MKhiriev/go-files-manager/internal/blob"
	"github.com/MKhiriev/go-files-manager/internal/logger"
	"github.com/MKhiriev/go-files-manager/internal/mock"
	"github.com/MKhiriev/go-files-manager/internal/queue"
	"github.com/MKhiriev/go-files-manager/internal/store"
	"github.com/MKhiriev/go-files-manager/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	fileID = "0195f0a2-1111-7000-8000-000000000002"
	userID = "0195f0a2-0000-7000-8000-000000000001"
)

func thumbnailJob(t *testing.T, payload any) queue.Job {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return queue.Job{ID: "job-1", Queue: models.FileQueue, Payload: body, Attempts: 1, MaxAttempts: 3}
}

func TestThumbnailWorker_GeneratesAllWidths(t *testing.T) {
	ctrl := gomock.NewController(t)
	files := mock.NewMockFileRepository(ctrl)

	payloads, err := blob.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	location := payloads.Location(fileID)
	require.NoError(t, payloads.Put(ctx, location, testPNG(t, 800, 600)))

	files.EXPECT().FindEntryByID(gomock.Any(), fileID).
		Return(models.FileEntry{ID: fileID, UserID: userID, Type: models.Image, LocalPath: location}, nil)
	files.EXPECT().SetThumbnails(gomock.Any(), fileID, map[int]string{
		500: location + "_500",
		250: location + "_250",
		100: location + "_100",
	}).Return(nil)

	w := NewThumbnailWorker(files, payloads, NewImagingResizer(), logger.Nop())
	require.NoError(t, w.ProcessJob(ctx, thumbnailJob(t, models.ThumbnailJob{FileID: fileID, UserID: userID})))

	for _, width := range models.ThumbnailWidths {
		data, err := payloads.Get(ctx, blob.ThumbnailLocation(location, width))
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}
}

func TestThumbnailWorker_InvalidJobs(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		want    error
	}{
		{name: "missing fileId", payload: map[string]string{"userId": userID}, want: ErrMissingFileID},
		{name: "missing userId", payload: map[string]string{"fileId": fileID}, want: ErrMissingUserID},
		{name: "empty", payload: map[string]string{}, want: ErrMissingFileID},
		{name: "not an object", payload: []int{1, 2}, want: ErrInvalidPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			w := NewThumbnailWorker(mock.NewMockFileRepository(ctrl), mock.NewMockStorage(ctrl), mock.NewMockResizer(ctrl), logger.Nop())

			err := w.ProcessJob(context.Background(), thumbnailJob(t, tt.payload))
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, queue.ErrSkipRetry)
		})
	}
}

func TestThumbnailWorker_FileNotFound(t *testing.T) {
	tests := []struct {
		name  string
		entry models.FileEntry
		err   error
	}{
		{name: "no such file", err: store.ErrEntryNotFound},
		{name: "other owner", entry: models.FileEntry{ID: fileID, UserID: "someone-else", Type: models.Image}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			files := mock.NewMockFileRepository(ctrl)
			files.EXPECT().FindEntryByID(gomock.Any(), fileID).Return(tt.entry, tt.err)

			w := NewThumbnailWorker(files, mock.NewMockStorage(ctrl), mock.NewMockResizer(ctrl), logger.Nop())

			err := w.ProcessJob(context.Background(), thumbnailJob(t, models.ThumbnailJob{FileID: fileID, UserID: userID}))
			assert.ErrorIs(t, err, ErrFileNotFound)
			assert.ErrorIs(t, err, queue.ErrSkipRetry)
		})
	}
}

func TestThumbnailWorker_TransientLookupErrorIsRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	files := mock.NewMockFileRepository(ctrl)
	files.EXPECT().FindEntryByID(gomock.Any(), fileID).Return(models.FileEntry{}, errors.New("db down"))

	w := NewThumbnailWorker(files, mock.NewMockStorage(ctrl), mock.NewMockResizer(ctrl), logger.Nop())

	err := w.ProcessJob(context.Background(), thumbnailJob(t, models.ThumbnailJob{FileID: fileID, UserID: userID}))
	require.Error(t, err)
	assert.NotErrorIs(t, err, queue.ErrSkipRetry)
}

func TestThumbnailWorker_ResizeFailureWritesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	files := mock.NewMockFileRepository(ctrl)
	payloads := mock.NewMockStorage(ctrl)
	resizer := mock.NewMockResizer(ctrl)

	files.EXPECT().FindEntryByID(gomock.Any(), fileID).
		Return(models.FileEntry{ID: fileID, UserID: userID, Type: models.Image, LocalPath: "/d/x"}, nil)
	payloads.EXPECT().Get(gomock.Any(), "/d/x").Return([]byte("src"), nil)
	resizer.EXPECT().Resize([]byte("src"), 500).Return([]byte("500"), nil)
	resizer.EXPECT().Resize([]byte("src"), 250).Return(nil, errors.New("corrupt"))
	// no Put, no SetThumbnails

	w := NewThumbnailWorker(files, payloads, resizer, logger.Nop())

	err := w.ProcessJob(context.Background(), thumbnailJob(t, models.ThumbnailJob{FileID: fileID, UserID: userID}))
	assert.ErrorIs(t, err, queue.ErrSkipRetry)
}

func TestThumbnailWorker_WriteFailureRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	files := mock.NewMockFileRepository(ctrl)
	payloads := mock.NewMockStorage(ctrl)
	resizer := mock.NewMockResizer(ctrl)

	files.EXPECT().FindEntryByID(gomock.Any(), fileID).
		Return(models.FileEntry{ID: fileID, UserID: userID, Type: models.Image, LocalPath: "/d/x"}, nil)
	payloads.EXPECT().Get(gomock.Any(), "/d/x").Return([]byte("src"), nil)
	resizer.EXPECT().Resize(gomock.Any(), gomock.Any()).Return([]byte("thumb"), nil).Times(3)

	gomock.InOrder(
		payloads.EXPECT().Put(gomock.Any(), "/d/x_500", []byte("thumb")).Return(nil),
		payloads.EXPECT().Put(gomock.Any(), "/d/x_250", []byte("thumb")).Return(errors.New("disk full")),
		payloads.EXPECT().Delete(gomock.Any(), "/d/x_500").Return(nil),
	)

	w := NewThumbnailWorker(files, payloads, resizer, logger.Nop())

	err := w.ProcessJob(context.Background(), thumbnailJob(t, models.ThumbnailJob{FileID: fileID, UserID: userID}))
	require.Error(t, err)
	assert.NotErrorIs(t, err, queue.ErrSkipRetry)
}

func TestThumbnailWorker_MetadataFailureRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	files := mock.NewMockFileRepository(ctrl)
	payloads := mock.NewMockStorage(ctrl)
	resizer := mock.NewMockResizer(ctrl)

	files.EXPECT().FindEntryByID(gomock.Any(), fileID).
		Return(models.FileEntry{ID: fileID, UserID: userID, Type: models.Image, LocalPath: "/d/x"}, nil)
	payloads.EXPECT().Get(gomock.Any(), "/d/x").Return([]byte("src"), nil)
	resizer.EXPECT().Resize(gomock.Any(), gomock.Any()).Return([]byte("thumb"), nil).Times(3)
	payloads.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(3)
	files.EXPECT().SetThumbnails(gomock.Any(), fileID, gomock.Any()).Return(errors.New("db down"))
	payloads.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	w := NewThumbnailWorker(files, payloads, resizer, logger.Nop())

	err := w.ProcessJob(context.Background(), thumbnailJob(t, models.ThumbnailJob{FileID: fileID, UserID: userID}))
	assert.Error(t, err)
}

func TestThumbnailWorker_NotAnImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	files := mock.NewMockFileRepository(ctrl)
	files.EXPECT().FindEntryByID(gomock.Any(), fileID).
		Return(models.FileEntry{ID: fileID, UserID: userID, Type: models.File}, nil)

	w := NewThumbnailWorker(files, mock.NewMockStorage(ctrl), mock.NewMockResizer(ctrl), logger.Nop())

	err := w.ProcessJob(context.Background(), thumbnailJob(t, models.ThumbnailJob{FileID: fileID, UserID: userID}))
	assert.ErrorIs(t, err, ErrNotAnImage)
}
