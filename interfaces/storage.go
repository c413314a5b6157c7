package interfaces

import (
	"context"

	"github.com/customeros/notestack/internal/models"
)

// ImageStorageService stores image blobs in external object storage.
type ImageStorageService interface {
	// Upload stores the payload under a fresh key inside folder and returns
	// the reference to persist on the owning note.
	Upload(ctx context.Context, folder string, data []byte, contentType string) (*models.AttachmentRef, error)
	// Delete removes the blob for the identifier. Deleting an identifier
	// that is already absent is a success.
	Delete(ctx context.Context, publicID string) error
}
