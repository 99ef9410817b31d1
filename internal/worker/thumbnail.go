package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-files-manager/internal/blob"
	"github.com/MKhiriev/go-files-manager/internal/logger"
	"github.com/MKhiriev/go-files-manager/internal/queue"
	"github.com/MKhiriev/go-files-manager/internal/store"
	"github.com/MKhiriev/go-files-manager/models"
)

// ThumbnailWorker produces the thumbnails of an uploaded image.
//
// All widths are rendered in memory first and then written next to the
// original. The entry is updated with a single statement once every artifact
// is written, so readers see either no thumbnails or all of them. Artifacts
// written before a failure are removed.
type ThumbnailWorker struct {
	files    store.FileRepository
	payloads blob.Storage
	resizer  Resizer

	logger *logger.Logger
}

func NewThumbnailWorker(files store.FileRepository, payloads blob.Storage, resizer Resizer, logger *logger.Logger) *ThumbnailWorker {
	return &ThumbnailWorker{
		files:    files,
		payloads: payloads,
		resizer:  resizer,
		logger:   logger,
	}
}

func (w *ThumbnailWorker) ProcessJob(ctx context.Context, job queue.Job) error {
	log := logger.FromContext(ctx)

	var payload models.ThumbnailJob
	if err := job.Decode(&payload); err != nil {
		return queue.Permanent(fmt.Errorf("%w: %w", ErrInvalidPayload, err))
	}
	if payload.FileID == "" {
		return queue.Permanent(ErrMissingFileID)
	}
	if payload.UserID == "" {
		return queue.Permanent(ErrMissingUserID)
	}

	entry, err := w.files.FindEntryByID(ctx, payload.FileID)
	if errors.Is(err, store.ErrEntryNotFound) {
		return queue.Permanent(ErrFileNotFound)
	}
	if err != nil {
		return fmt.Errorf("error loading file %s: %w", payload.FileID, err)
	}
	if !entry.IsOwnedBy(payload.UserID) {
		return queue.Permanent(ErrFileNotFound)
	}
	if entry.Type != models.Image {
		return queue.Permanent(ErrNotAnImage)
	}

	source, err := w.payloads.Get(ctx, entry.LocalPath)
	if errors.Is(err, blob.ErrObjectNotFound) {
		return queue.Permanent(ErrFileNotFound)
	}
	if err != nil {
		return fmt.Errorf("error reading %s: %w", entry.LocalPath, err)
	}

	rendered := make(map[int][]byte, len(models.ThumbnailWidths))
	for _, width := range models.ThumbnailWidths {
		data, resizeErr := w.resizer.Resize(source, width)
		if resizeErr != nil {
			return queue.Permanent(fmt.Errorf("error resizing to %d: %w", width, resizeErr))
		}
		rendered[width] = data
	}

	locations := make(map[int]string, len(rendered))
	for _, width := range models.ThumbnailWidths {
		location := blob.ThumbnailLocation(entry.LocalPath, width)
		if err = w.payloads.Put(ctx, location, rendered[width]); err != nil {
			w.discard(ctx, locations)
			return fmt.Errorf("error writing %s: %w", location, err)
		}
		locations[width] = location
	}

	if err = w.files.SetThumbnails(ctx, entry.ID, locations); err != nil {
		w.discard(ctx, locations)
		if errors.Is(err, store.ErrEntryNotFound) {
			return queue.Permanent(ErrFileNotFound)
		}
		return fmt.Errorf("error saving thumbnails of %s: %w", entry.ID, err)
	}

	log.Info().Str("file_id", entry.ID).Msg("thumbnails generated")
	return nil
}

func (w *ThumbnailWorker) discard(ctx context.Context, locations map[int]string) {
	for _, location := range locations {
		if err := w.payloads.Delete(context.WithoutCancel(ctx), location); err != nil {
			logger.FromContext(ctx).Err(err).Str("location", location).Msg("error removing thumbnail")
		}
	}
}
