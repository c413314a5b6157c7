package interfaces

import (
	"context"

	"github.com/customeros/notestack/internal/models"
)

// NoteRepository is the persistence contract for notes. Lookups and
// mutations take (id, owner) as a single merged predicate; a nil note with a
// nil error means no record matched both.
type NoteRepository interface {
	ListByOwner(ctx context.Context, owner string) ([]*models.Note, error)
	GetByIDAndOwner(ctx context.Context, id, owner string) (*models.Note, error)
	Create(ctx context.Context, note *models.Note) error
	UpdateFieldsByIDAndOwner(ctx context.Context, id, owner string, fields models.NoteFields) (*models.Note, error)
	// AppendAttachmentByIDAndOwner appends the reference to the note's image
	// array in a single atomic statement, so concurrent appends on the same
	// note cannot lose each other.
	AppendAttachmentByIDAndOwner(ctx context.Context, id, owner string, ref models.AttachmentRef) (*models.Note, error)
	// RemoveAttachmentsByIDAndOwner drops every reference matching the
	// identifier, not just the first.
	RemoveAttachmentsByIDAndOwner(ctx context.Context, id, owner, publicID string) (*models.Note, error)
	// DeleteByIDAndOwner removes the note and returns the deleted document so
	// its attachments can be enumerated for cascade cleanup.
	DeleteByIDAndOwner(ctx context.Context, id, owner string) (*models.Note, error)
}
