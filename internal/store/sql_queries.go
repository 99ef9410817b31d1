package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-files-manager/models"
)

const (
	createUser = `INSERT INTO users (id, email, password_hash)
    VALUES ($1, $2, $3)
    RETURNING created_at;`

	findUserByEmail = `SELECT id, email, password_hash, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT id, email, password_hash, created_at
    FROM users
    WHERE id = $1;`

	countUsers = `SELECT COUNT(*) FROM users;`

	createEntry = `INSERT INTO files (id, user_id, parent_id, name, type, is_public, local_path)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING created_at;`

	findEntryByID = `SELECT ` + entryColumns + `
    FROM files
    WHERE id = $1;`

	setEntryPublic = `UPDATE files
    SET is_public = $1
    WHERE id = $2 AND user_id = $3
    RETURNING ` + entryColumns + `;`

	countEntries = `SELECT COUNT(*) FROM files;`

	entryColumns = `id, user_id, parent_id, name, type, is_public, local_path, thumbnail_500, thumbnail_250, thumbnail_100, created_at`
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListEntriesQuery selects one page of ownerID's entries under parentID.
// Root entries are stored with a NULL parent.
func buildListEntriesQuery(ownerID string, parentID models.ParentID, limit, offset uint64) (string, []any, error) {
	where := sq.Eq{"user_id": ownerID}
	if parentID.IsRoot() {
		where["parent_id"] = nil
	} else {
		where["parent_id"] = parentID.String()
	}

	query, args, err := psql.
		Select(entryColumns).
		From("files").
		Where(where).
		OrderBy("created_at", "id").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildSetThumbnailsQuery writes every known thumbnail column in a single
// UPDATE so that readers never observe a partial set.
func buildSetThumbnailsQuery(id string, thumbnails map[int]string) (string, []any, error) {
	set := make(map[string]any, len(models.ThumbnailWidths))
	for _, width := range models.ThumbnailWidths {
		location, ok := thumbnails[width]
		if !ok {
			return "", nil, fmt.Errorf("%w: missing thumbnail for width %d", ErrBuildingSQLQuery, width)
		}
		set[thumbnailColumn(width)] = location
	}

	query, args, err := psql.
		Update("files").
		SetMap(set).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func thumbnailColumn(width int) string {
	return fmt.Sprintf("thumbnail_%d", width)
}
