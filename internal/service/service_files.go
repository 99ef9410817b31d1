package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math"

	"github.com/MKhiriev/go-files-manager/internal/blob"
	"github.com/MKhiriev/go-files-manager/internal/logger"
	"github.com/MKhiriev/go-files-manager/internal/queue"
	"github.com/MKhiriev/go-files-manager/internal/store"
	"github.com/MKhiriev/go-files-manager/internal/utils"
	"github.com/MKhiriev/go-files-manager/models"
	"github.com/google/uuid"
)

// PageSize is the number of entries returned by one ListChildren call.
const PageSize = 20

// maxPage is the last page whose offset fits a Postgres bigint.
const maxPage = math.MaxInt64 / PageSize

// fileService is the concrete implementation of FileService. Metadata lives
// in the FileRepository, payload bytes in blob storage.
type fileService struct {
	fileRepository store.FileRepository
	payloads       blob.Storage
	producer       queue.Producer
	ids            idGenerator

	logger *logger.Logger
}

func NewFileService(fileRepository store.FileRepository, payloads blob.Storage, producer queue.Producer, logger *logger.Logger) FileService {
	return &fileService{
		fileRepository: fileRepository,
		payloads:       payloads,
		producer:       producer,
		ids:            utils.NewUUIDGenerator(),
		logger:         logger,
	}
}

// CreateEntry validates req and stores a new folder, file or image owned by
// ownerID.
//
// Checks run in this order and the first failing one is returned:
// ErrMissingName, ErrMissingType, ErrMissingData, ErrInvalidData,
// ErrParentNotFound, ErrParentNotFolder.
//
// The payload is written before the metadata record and removed again if
// the record cannot be stored. Images get a thumbnail job on
// models.FileQueue.
func (s *fileService) CreateEntry(ctx context.Context, ownerID string, req models.CreateEntryRequest) (models.FileEntry, error) {
	log := logger.FromContext(ctx)

	if req.Name == "" {
		return models.FileEntry{}, ErrMissingName
	}
	if !req.Type.Valid() {
		return models.FileEntry{}, ErrMissingType
	}

	var payload []byte
	if req.Type.HasPayload() {
		if req.Data == "" {
			return models.FileEntry{}, ErrMissingData
		}

		var err error
		if payload, err = base64.StdEncoding.DecodeString(req.Data); err != nil {
			return models.FileEntry{}, ErrInvalidData
		}
	}

	if err := s.checkParent(ctx, ownerID, req.ParentID); err != nil {
		return models.FileEntry{}, err
	}

	entry := models.FileEntry{
		ID:       s.ids.Generate(),
		UserID:   ownerID,
		Name:     req.Name,
		Type:     req.Type,
		IsPublic: req.IsPublic,
		ParentID: req.ParentID,
	}

	if payload != nil {
		entry.LocalPath = s.payloads.Location(entry.ID)
		if err := s.payloads.Put(ctx, entry.LocalPath, payload); err != nil {
			log.Err(err).Str("location", entry.LocalPath).Msg("error writing payload")
			return models.FileEntry{}, fmt.Errorf("error writing payload: %w", err)
		}
	}

	created, err := s.fileRepository.CreateEntry(ctx, entry)
	if err != nil {
		s.discardPayload(ctx, entry.LocalPath)

		switch {
		case errors.Is(err, store.ErrEntryAlreadyExists):
			return models.FileEntry{}, ErrEntryNameTaken
		case errors.Is(err, store.ErrEntryNotFound):
			// the parent was removed after checkParent
			return models.FileEntry{}, ErrParentNotFound
		default:
			return models.FileEntry{}, fmt.Errorf("entry creation ended with error: %w", err)
		}
	}

	if created.Type == models.Image {
		job := models.ThumbnailJob{FileID: created.ID, UserID: ownerID}
		if _, err = s.producer.Enqueue(ctx, models.FileQueue, job); err != nil {
			log.Err(err).Str("file_id", created.ID).Msg("error enqueueing thumbnail job")
		}
	}

	return created, nil
}

func (s *fileService) checkParent(ctx context.Context, ownerID string, parentID models.ParentID) error {
	if parentID.IsRoot() {
		return nil
	}
	if uuid.Validate(parentID.String()) != nil {
		return ErrParentNotFound
	}

	parent, err := s.fileRepository.FindEntryByID(ctx, parentID.String())
	if errors.Is(err, store.ErrEntryNotFound) {
		return ErrParentNotFound
	}
	if err != nil {
		return fmt.Errorf("parent lookup ended with error: %w", err)
	}

	if !parent.IsOwnedBy(ownerID) {
		return ErrParentNotFound
	}
	if parent.Type != models.Folder {
		return ErrParentNotFolder
	}

	return nil
}

func (s *fileService) discardPayload(ctx context.Context, location string) {
	if location == "" {
		return
	}
	if err := s.payloads.Delete(ctx, location); err != nil {
		logger.FromContext(ctx).Err(err).Str("location", location).Msg("error removing orphaned payload")
	}
}

// GetEntry returns an entry that is owned by requesterID or public.
func (s *fileService) GetEntry(ctx context.Context, requesterID, entryID string) (models.FileEntry, error) {
	if uuid.Validate(entryID) != nil {
		return models.FileEntry{}, ErrEntryNotFound
	}

	entry, err := s.fileRepository.FindEntryByID(ctx, entryID)
	if errors.Is(err, store.ErrEntryNotFound) {
		return models.FileEntry{}, ErrEntryNotFound
	}
	if err != nil {
		return models.FileEntry{}, fmt.Errorf("entry lookup ended with error: %w", err)
	}

	if !entry.VisibleTo(requesterID) {
		return models.FileEntry{}, ErrEntryNotFound
	}

	return entry, nil
}

// ListChildren returns one page of the requester's own entries under
// req.ParentID. Pages are zero-based; a negative page is treated as 0 and a
// page past maxPage is empty.
func (s *fileService) ListChildren(ctx context.Context, requesterID string, req models.ListEntriesRequest) ([]models.FileEntry, error) {
	if !req.ParentID.IsRoot() && uuid.Validate(req.ParentID.String()) != nil {
		return []models.FileEntry{}, nil
	}

	page := max(req.Page, 0)
	if page > maxPage {
		return []models.FileEntry{}, nil
	}

	entries, err := s.fileRepository.ListEntries(ctx, requesterID, req.ParentID, PageSize, uint64(page)*PageSize)
	if err != nil {
		return nil, fmt.Errorf("listing entries ended with error: %w", err)
	}

	return entries, nil
}

func (s *fileService) Publish(ctx context.Context, requesterID, entryID string) (models.FileEntry, error) {
	return s.setPublic(ctx, requesterID, entryID, true)
}

func (s *fileService) Unpublish(ctx context.Context, requesterID, entryID string) (models.FileEntry, error) {
	return s.setPublic(ctx, requesterID, entryID, false)
}

// setPublic is owner-only: entries of other users are reported as not found
// even when they are public.
func (s *fileService) setPublic(ctx context.Context, requesterID, entryID string, isPublic bool) (models.FileEntry, error) {
	if uuid.Validate(entryID) != nil {
		return models.FileEntry{}, ErrEntryNotFound
	}

	entry, err := s.fileRepository.SetPublic(ctx, requesterID, entryID, isPublic)
	if errors.Is(err, store.ErrEntryNotFound) {
		return models.FileEntry{}, ErrEntryNotFound
	}
	if err != nil {
		return models.FileEntry{}, fmt.Errorf("visibility update ended with error: %w", err)
	}

	return entry, nil
}

// GetContent reads the payload of a visible file or image. A size of 0
// selects the original; any of models.ThumbnailWidths selects a thumbnail,
// which is reported as not found until the worker has produced it.
func (s *fileService) GetContent(ctx context.Context, requesterID, entryID string, size int) (models.FileContent, error) {
	if size != 0 && !models.IsThumbnailWidth(size) {
		return models.FileContent{}, ErrInvalidSize
	}

	entry, err := s.GetEntry(ctx, requesterID, entryID)
	if err != nil {
		return models.FileContent{}, err
	}
	if !entry.Type.HasPayload() {
		return models.FileContent{}, ErrFolderHasNoContent
	}

	location := entry.LocalPath
	if size != 0 {
		var ok bool
		if location, ok = entry.Thumbnails[size]; !ok {
			return models.FileContent{}, ErrEntryNotFound
		}
	}

	data, err := s.payloads.Get(ctx, location)
	if errors.Is(err, blob.ErrObjectNotFound) {
		return models.FileContent{}, ErrEntryNotFound
	}
	if err != nil {
		return models.FileContent{}, fmt.Errorf("error reading payload: %w", err)
	}

	return models.FileContent{Name: entry.Name, Data: data}, nil
}
