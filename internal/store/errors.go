package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when registering an email that is
	// already taken.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("no user was found")

	// ErrEntryAlreadyExists is returned when the owner already has an entry
	// with the same name under the same parent.
	ErrEntryAlreadyExists = errors.New("entry with the same name already exists")

	// ErrEntryNotFound is returned when no entry matches the lookup, or when
	// an update targets an entry the caller does not own.
	ErrEntryNotFound = errors.New("entry was not found")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRows is returned when scanning a result set fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrDBIsNil is returned by constructors given a nil connection.
	ErrDBIsNil = errors.New("db is nil")
)
