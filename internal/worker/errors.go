package worker

import "errors"

var (
	ErrInvalidPayload = errors.New("Invalid job payload")
	ErrMissingFileID  = errors.New("Missing fileId")
	ErrMissingUserID  = errors.New("Missing userId")
	ErrFileNotFound   = errors.New("File not found")
	ErrNotAnImage     = errors.New("File is not an image")
	ErrUserNotFound   = errors.New("User not found")
)
