package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/opentracing/opentracing-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/customeros/notestack/interfaces"
	"github.com/customeros/notestack/internal/models"
	"github.com/customeros/notestack/internal/tracing"
	"github.com/customeros/notestack/internal/utils"
)

// writeTimeout bounds every mutating statement against the notes table.
const writeTimeout = 5 * time.Second

type noteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) interfaces.NoteRepository {
	return &noteRepository{db: db}
}

// ListByOwner returns all notes for the owner, newest first.
func (r *noteRepository) ListByOwner(ctx context.Context, owner string) ([]*models.Note, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "noteRepository.ListByOwner")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	var notes []*models.Note
	err := r.db.WithContext(ctx).
		Where("user_id = ?", owner).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return notes, nil
}

// GetByIDAndOwner returns the note matching both id and owner, or nil when
// no record matches. Ownership is part of the predicate, never a separate
// check after a plain id lookup.
func (r *noteRepository) GetByIDAndOwner(ctx context.Context, id, owner string) (*models.Note, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "noteRepository.GetByIDAndOwner")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.SetTag("note.id", id)

	var note models.Note
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, owner).
		First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) Create(ctx context.Context, note *models.Note) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "noteRepository.Create")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	timeoutCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := r.db.WithContext(timeoutCtx).Create(note).Error; err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	return nil
}

// UpdateFieldsByIDAndOwner replaces title, content and color in place. The
// attachment array is never touched here. Returns nil when no note matched.
func (r *noteRepository) UpdateFieldsByIDAndOwner(ctx context.Context, id, owner string, fields models.NoteFields) (*models.Note, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "noteRepository.UpdateFieldsByIDAndOwner")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.SetTag("note.id", id)

	timeoutCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	result := r.db.WithContext(timeoutCtx).Model(&models.Note{}).
		Where("id = ? AND user_id = ?", id, owner).
		UpdateColumns(map[string]interface{}{
			"title":      fields.Title,
			"content":    fields.Content,
			"color":      fields.Color,
			"updated_at": utils.Now(),
		})
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return r.GetByIDAndOwner(ctx, id, owner)
}

// AppendAttachmentByIDAndOwner appends the reference to the note's image
// array with a single jsonb concatenation, so two concurrent appends on the
// same note both land instead of one overwriting the other.
func (r *noteRepository) AppendAttachmentByIDAndOwner(ctx context.Context, id, owner string, ref models.AttachmentRef) (*models.Note, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "noteRepository.AppendAttachmentByIDAndOwner")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.SetTag("note.id", id)
	span.SetTag("attachment.publicId", ref.PublicID)

	payload, err := json.Marshal(models.AttachmentRefs{ref})
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	result := r.db.WithContext(timeoutCtx).Model(&models.Note{}).
		Where("id = ? AND user_id = ?", id, owner).
		UpdateColumns(map[string]interface{}{
			"images":     gorm.Expr("coalesce(images, '[]'::jsonb) || ?::jsonb", string(payload)),
			"updated_at": utils.Now(),
		})
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return r.GetByIDAndOwner(ctx, id, owner)
}

// RemoveAttachmentsByIDAndOwner filters every reference with the identifier
// out of the note's image array in one statement. Identifiers are unique in
// practice, but if uniqueness were ever violated upstream the filter still
// removes all matches. An identifier not present in the array is a no-op.
func (r *noteRepository) RemoveAttachmentsByIDAndOwner(ctx context.Context, id, owner, publicID string) (*models.Note, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "noteRepository.RemoveAttachmentsByIDAndOwner")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.SetTag("note.id", id)
	span.SetTag("attachment.publicId", publicID)

	timeoutCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	result := r.db.WithContext(timeoutCtx).Model(&models.Note{}).
		Where("id = ? AND user_id = ?", id, owner).
		UpdateColumns(map[string]interface{}{
			"images": gorm.Expr(
				`(SELECT coalesce(jsonb_agg(img), '[]'::jsonb)
				  FROM jsonb_array_elements(coalesce(images, '[]'::jsonb)) AS img
				  WHERE img->>'public_id' <> ?)`, publicID),
			"updated_at": utils.Now(),
		})
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return r.GetByIDAndOwner(ctx, id, owner)
}

// DeleteByIDAndOwner removes the note and returns the deleted document so
// the caller can enumerate its attachments for cascade cleanup. Returns nil
// when no note matched.
func (r *noteRepository) DeleteByIDAndOwner(ctx context.Context, id, owner string) (*models.Note, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "noteRepository.DeleteByIDAndOwner")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.SetTag("note.id", id)

	timeoutCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	var note models.Note
	result := r.db.WithContext(timeoutCtx).
		Clauses(clause.Returning{}).
		Where("id = ? AND user_id = ?", id, owner).
		Delete(&note)
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &note, nil
}
