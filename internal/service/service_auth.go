package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-files-manager/internal/cache"
	"github.com/MKhiriev/go-files-manager/internal/config"
	"github.com/MKhiriev/go-files-manager/internal/logger"
	"github.com/MKhiriev/go-files-manager/internal/queue"
	"github.com/MKhiriev/go-files-manager/internal/store"
	"github.com/MKhiriev/go-files-manager/internal/utils"
	"github.com/MKhiriev/go-files-manager/models"
)

// sessionKeyPrefix namespaces session tokens in the cache.
const sessionKeyPrefix = "auth_"

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

// authService is the concrete implementation of AuthService.
// Passwords are stored as bcrypt hashes; sessions are opaque random tokens
// kept in the cache as "auth_<token>" → user id for a fixed TTL.
type authService struct {
	userRepository store.UserRepository
	sessions       cache.Cache
	producer       queue.Producer

	hasher     *utils.PasswordHasher
	ids        idGenerator
	newToken   func() string
	sessionTTL time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an AuthService. The returned service is safe for
// concurrent use; all state is read-only after construction.
func NewAuthService(userRepository store.UserRepository, sessions cache.Cache, producer queue.Producer, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		sessions:       sessions,
		producer:       producer,
		hasher:         utils.NewPasswordHasher(cfg.PasswordHashCost),
		ids:            utils.NewUUIDGenerator(),
		newToken:       utils.NewSessionToken,
		sessionTTL:     cfg.SessionTTL,
		logger:         logger,
	}
}

// RegisterUser creates an account and schedules its onboarding job.
//
// Returns the public view of the user ({id, email}) or:
//   - ErrMissingEmail / ErrMissingPassword for empty input.
//   - ErrAlreadyExist if the email is taken.
func (a *authService) RegisterUser(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" {
		return models.User{}, ErrMissingEmail
	}
	if password == "" {
		return models.User{}, ErrMissingPassword
	}

	_, err := a.userRepository.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		return models.User{}, ErrAlreadyExist
	case !errors.Is(err, store.ErrUserNotFound):
		return models.User{}, fmt.Errorf("user lookup ended with error: %w", err)
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return models.User{}, err
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		ID:           a.ids.Generate(),
		Email:        email,
		PasswordHash: hash,
	})
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		return models.User{}, ErrAlreadyExist
	}
	if err != nil {
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	// registration succeeds even when the onboarding job cannot be queued
	if _, err = a.producer.Enqueue(ctx, models.UserQueue, models.UserOnboardingJob{UserID: user.ID}); err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("error enqueueing onboarding job")
	}

	return user.Public(), nil
}

// Authenticate verifies the credentials and opens a new session.
// Every failure caused by the credentials is reported as ErrInvalidCredentials.
func (a *authService) Authenticate(ctx context.Context, email, password string) (models.Token, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		return models.Token{}, ErrInvalidCredentials
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.Token{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !a.hasher.Compare(user.PasswordHash, password) {
		log.Warn().Str("user_id", user.ID).Msg("wrong password")
		return models.Token{}, ErrInvalidCredentials
	}

	token := a.newToken()
	if err = a.sessions.Set(ctx, sessionKey(token), user.ID, a.sessionTTL); err != nil {
		return models.Token{}, fmt.Errorf("error storing session: %w", err)
	}

	return models.Token{Token: token}, nil
}

func (a *authService) ResolveSession(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidCredentials
	}

	userID, err := a.sessions.Get(ctx, sessionKey(token))
	if errors.Is(err, cache.ErrCacheMiss) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("error reading session: %w", err)
	}

	return userID, nil
}

// Revoke ends the session. Revoking an unknown or already revoked token
// yields ErrInvalidCredentials.
func (a *authService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidCredentials
	}

	removed, err := a.sessions.Delete(ctx, sessionKey(token))
	if err != nil {
		return fmt.Errorf("error removing session: %w", err)
	}
	if !removed {
		return ErrInvalidCredentials
	}

	return nil
}

func (a *authService) Me(ctx context.Context, userID string) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user.Public(), nil
}
