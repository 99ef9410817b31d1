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

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by db.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user. The caller supplies the id and the
// password hash; the database assigns created_at.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	err := r.db.QueryRowContext(ctx, createUser, user.ID, user.Email, user.PasswordHash).Scan(&user.CreatedAt)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("error creating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return user, nil
}

// FindUserByEmail retrieves the account registered with email.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, findUserByEmail, email)
}

// FindUserByID retrieves the account with the given id.
func (r *userRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	return r.findOne(ctx, findUserByID, id)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg string) (models.User, error) {
	var found models.User
	err := r.db.retryRead(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, arg).
			Scan(&found.ID, &found.Email, &found.PasswordHash, &found.CreatedAt)
	})

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrUserNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Msg("error looking up user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// CountUsers returns the number of registered accounts.
func (r *userRepository) CountUsers(ctx context.Context) (int64, error) {
	return count(ctx, r.db, countUsers)
}

func count(ctx context.Context, db *DB, query string) (int64, error) {
	var n int64
	err := db.retryRead(ctx, func() error {
		return db.QueryRowContext(ctx, query).Scan(&n)
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return n, nil
}
