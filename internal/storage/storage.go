package storage

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

var ErrNotConfigured = errors.New("object storage is not configured")

// FileStorage defines the interface for object storage operations.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows PUT requests
	// for uploading an object directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL for GET requests.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	DeleteObject(ctx context.Context, objectKey string) error
}

// TaskAttachmentKey builds a fresh object key for a task report attachment:
// tasks/<taskId>/<uuid>.<ext>
func TaskAttachmentKey(taskID, fileName string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(fileName), "."))
	key := "tasks/" + taskID + "/" + uuid.NewString()
	if ext != "" {
		key += "." + ext
	}
	return key
}

// IsTaskAttachmentKey reports whether key was issued for the given task.
func IsTaskAttachmentKey(taskID, key string) bool {
	return strings.HasPrefix(key, "tasks/"+taskID+"/") && !strings.Contains(key, "..")
}

// Disabled fails every call with ErrNotConfigured.
type Disabled struct{}

func (Disabled) GeneratePresignedUploadURL(context.Context, string, string, time.Duration) (string, error) {
	return "", ErrNotConfigured
}

func (Disabled) GeneratePresignedDownloadURL(context.Context, string, time.Duration) (string, error) {
	return "", ErrNotConfigured
}

func (Disabled) DeleteObject(context.Context, string) error {
	return ErrNotConfigured
}
