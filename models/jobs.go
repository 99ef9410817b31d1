package models

// Queue names shared by the API process and the worker process.
const (
	FileQueue = "fileQueue"
	UserQueue = "userQueue"
)

// ThumbnailJob asks the worker to produce thumbnails for an uploaded image.
type ThumbnailJob struct {
	FileID string `json:"fileId"`
	UserID string `json:"userId"`
}

// UserOnboardingJob is enqueued once per successful registration.
type UserOnboardingJob struct {
	UserID string `json:"userId"`
}
