package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-files-manager/internal/logger"
	"github.com/MKhiriev/go-files-manager/models"
	"github.com/jackc/pgerrcode"
)

// fileRepository is the PostgreSQL-backed implementation of [FileRepository].
type fileRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewFileRepository constructs a [FileRepository] backed by db.
func NewFileRepository(db *DB, logger *logger.Logger) FileRepository {
	logger.Debug().Msg("creating file repository")
	return &fileRepository{
		db:     db,
		logger: logger,
	}
}

// CreateEntry inserts the metadata record of a folder, file or image.
//
// Error handling:
//   - unique_violation (23505) on the sibling name index → [ErrEntryAlreadyExists].
//   - foreign_key_violation (23503) on parent_id → [ErrEntryNotFound].
func (r *fileRepository) CreateEntry(ctx context.Context, entry models.FileEntry) (models.FileEntry, error) {
	log := logger.FromContext(ctx)

	err := r.db.QueryRowContext(ctx, createEntry,
		entry.ID,
		entry.UserID,
		nullString(entry.ParentID.String()),
		entry.Name,
		string(entry.Type),
		entry.IsPublic,
		nullString(entry.LocalPath),
	).Scan(&entry.CreatedAt)
	if err != nil {
		log.Err(err).Str("name", entry.Name).Msg("error creating entry")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.FileEntry{}, ErrEntryAlreadyExists
		case pgerrcode.ForeignKeyViolation:
			return models.FileEntry{}, ErrEntryNotFound
		default:
			return models.FileEntry{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return entry, nil
}

// FindEntryByID loads one entry regardless of its owner. Visibility rules
// are applied by the caller.
func (r *fileRepository) FindEntryByID(ctx context.Context, id string) (models.FileEntry, error) {
	var entry models.FileEntry
	err := r.db.retryRead(ctx, func() error {
		var scanErr error
		entry, scanErr = scanEntry(r.db.QueryRowContext(ctx, findEntryByID, id))
		return scanErr
	})

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.FileEntry{}, ErrEntryNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("id", id).Msg("error looking up entry")
		return models.FileEntry{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return entry, nil
}

// ListEntries returns one page of ownerID's entries under parentID.
func (r *fileRepository) ListEntries(ctx context.Context, ownerID string, parentID models.ParentID, limit, offset uint64) ([]models.FileEntry, error) {
	query, args, err := buildListEntriesQuery(ownerID, parentID, limit, offset)
	if err != nil {
		return nil, err
	}

	var entries []models.FileEntry
	err = r.db.retryRead(ctx, func() error {
		rows, queryErr := r.db.QueryContext(ctx, query, args...)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()

		entries = make([]models.FileEntry, 0, limit)
		for rows.Next() {
			entry, scanErr := scanEntry(rows)
			if scanErr != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
			}
			entries = append(entries, entry)
		}
		return rows.Err()
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("owner", ownerID).Msg("error listing entries")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return entries, nil
}

// SetPublic flips the visibility of an owned entry.
func (r *fileRepository) SetPublic(ctx context.Context, ownerID, id string, isPublic bool) (models.FileEntry, error) {
	entry, err := scanEntry(r.db.QueryRowContext(ctx, setEntryPublic, isPublic, id, ownerID))

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.FileEntry{}, ErrEntryNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("id", id).Msg("error updating entry visibility")
		return models.FileEntry{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return entry, nil
}

// SetThumbnails stores all thumbnail locations of an image at once.
func (r *fileRepository) SetThumbnails(ctx context.Context, id string, thumbnails map[int]string) error {
	query, args, err := buildSetThumbnailsQuery(id, thumbnails)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("id", id).Msg("error saving thumbnails")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// CountEntries returns the number of stored entries of every kind.
func (r *fileRepository) CountEntries(ctx context.Context) (int64, error) {
	return count(ctx, r.db, countEntries)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.FileEntry, error) {
	var (
		entry        models.FileEntry
		entryType    string
		parentID     sql.NullString
		localPath    sql.NullString
		thumbnail500 sql.NullString
		thumbnail250 sql.NullString
		thumbnail100 sql.NullString
	)

	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&parentID,
		&entry.Name,
		&entryType,
		&entry.IsPublic,
		&localPath,
		&thumbnail500,
		&thumbnail250,
		&thumbnail100,
		&entry.CreatedAt,
	)
	if err != nil {
		return models.FileEntry{}, err
	}

	entry.Type = models.EntryType(entryType)
	entry.ParentID = models.ParentID(parentID.String)
	entry.LocalPath = localPath.String

	if thumbnail500.Valid && thumbnail250.Valid && thumbnail100.Valid {
		entry.Thumbnails = map[int]string{
			500: thumbnail500.String,
			250: thumbnail250.String,
			100: thumbnail100.String,
		}
	}

	return entry, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
