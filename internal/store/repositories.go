package store

import "github.com/MKhiriev/go-files-manager/internal/logger"

// Repositories bundles every repository built on one connection pool.
type Repositories struct {
	DB             *DB
	UserRepository UserRepository
	FileRepository FileRepository
}

// NewRepositories builds all repositories on top of db.
func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		DB:             db,
		UserRepository: NewUserRepository(db, logger),
		FileRepository: NewFileRepository(db, logger),
	}
}
