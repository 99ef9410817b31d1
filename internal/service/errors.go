package service

import "errors"

// Error classes. Every error returned by the services to API callers
// unwraps to exactly one of them.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("Unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
)

// DomainError is a caller-facing error: Message is returned to the client
// verbatim and Class selects the response status.
type DomainError struct {
	Class   error
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Class
}

func newDomainError(class error, message string) *DomainError {
	return &DomainError{Class: class, Message: message}
}

var (
	ErrMissingEmail    = newDomainError(ErrValidation, "Missing email")
	ErrMissingPassword = newDomainError(ErrValidation, "Missing password")
	ErrAlreadyExist    = newDomainError(ErrConflict, "Already exist")

	ErrInvalidCredentials = newDomainError(ErrUnauthorized, "Unauthorized")

	ErrMissingName        = newDomainError(ErrValidation, "Missing name")
	ErrMissingType        = newDomainError(ErrValidation, "Missing type")
	ErrMissingData        = newDomainError(ErrValidation, "Missing data")
	ErrInvalidData        = newDomainError(ErrValidation, "Invalid data")
	ErrParentNotFound     = newDomainError(ErrNotFound, "Parent not found")
	ErrParentNotFolder    = newDomainError(ErrValidation, "Parent is not a folder")
	ErrEntryNameTaken     = newDomainError(ErrConflict, "Already exist")
	ErrEntryNotFound      = newDomainError(ErrNotFound, "Not found")
	ErrFolderHasNoContent = newDomainError(ErrValidation, "A folder doesn't have content")
	ErrInvalidSize        = newDomainError(ErrValidation, "Invalid size")
)

// ErrVersionIsNotSpecified is returned when the build carries no version.
var ErrVersionIsNotSpecified = errors.New("app version is not specified")
