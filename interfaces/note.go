package interfaces

import (
	"context"

	"github.com/customeros/notestack/internal/models"
)

// NoteService orchestrates note CRUD and the image attachment lifecycle:
// uploads to object storage, attachment bookkeeping on the note record, and
// cascade cleanup of blobs when a note is deleted.
type NoteService interface {
	ListNotes(ctx context.Context, owner string) ([]*models.Note, error)
	GetNote(ctx context.Context, id, owner string) (*models.Note, error)
	CreateNote(ctx context.Context, owner string, fields models.NoteFields) (*models.Note, error)
	UpdateNote(ctx context.Context, id, owner string, fields models.NoteFields) (*models.Note, error)
	DeleteNote(ctx context.Context, id, owner string) error
	AddImage(ctx context.Context, id, owner string, data []byte, contentType string) (*models.Note, error)
	RemoveImage(ctx context.Context, id, owner, publicID string) (*models.Note, error)
}
