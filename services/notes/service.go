package notes

import (
	"context"
	"strings"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/customeros/notestack/interfaces"
	er "github.com/customeros/notestack/internal/errors"
	"github.com/customeros/notestack/internal/logger"
	"github.com/customeros/notestack/internal/models"
	"github.com/customeros/notestack/internal/tracing"
)

// noteService keeps the attachment references on a note consistent with
// what actually exists in object storage. The two systems are not updated
// transactionally; the accepted gaps are documented per operation.
type noteService struct {
	log         logger.Logger
	repo        interfaces.NoteRepository
	storage     interfaces.ImageStorageService
	imageFolder string
}

func NewNoteService(log logger.Logger, repo interfaces.NoteRepository, storage interfaces.ImageStorageService, imageFolder string) interfaces.NoteService {
	return &noteService{
		log:         log,
		repo:        repo,
		storage:     storage,
		imageFolder: imageFolder,
	}
}

func (s *noteService) ListNotes(ctx context.Context, owner string) ([]*models.Note, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "NoteService.ListNotes")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	return s.repo.ListByOwner(ctx, owner)
}

func (s *noteService) GetNote(ctx context.Context, id, owner string) (*models.Note, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "NoteService.GetNote")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, id)

	note, err := s.repo.GetByIDAndOwner(ctx, id, owner)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if note == nil {
		return nil, er.ErrNoteNotFound
	}
	return note, nil
}

func (s *noteService) CreateNote(ctx context.Context, owner string, fields models.NoteFields) (*models.Note, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "NoteService.CreateNote")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	if strings.TrimSpace(fields.Title) == "" {
		return nil, er.ErrTitleRequired
	}

	note := &models.Note{
		UserID:  owner,
		Title:   fields.Title,
		Content: fields.Content,
		Color:   fields.Color,
		Images:  models.AttachmentRefs{},
	}
	if err := s.repo.Create(ctx, note); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return note, nil
}

func (s *noteService) UpdateNote(ctx context.Context, id, owner string, fields models.NoteFields) (*models.Note, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "NoteService.UpdateNote")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, id)

	if strings.TrimSpace(fields.Title) == "" {
		return nil, er.ErrTitleRequired
	}

	note, err := s.repo.UpdateFieldsByIDAndOwner(ctx, id, owner, fields)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if note == nil {
		return nil, er.ErrNoteNotFound
	}
	return note, nil
}

// DeleteNote removes the note record first, then deletes each attached blob.
// The record goes first so a blob is never deleted for a note whose deletion
// fails; a crash in between orphans blobs, which is accepted. Individual
// blob-delete failures are logged and never surfaced: the record is already
// gone and the response must not look partially failed.
func (s *noteService) DeleteNote(ctx context.Context, id, owner string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "NoteService.DeleteNote")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, id)

	note, err := s.repo.DeleteByIDAndOwner(ctx, id, owner)
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	if note == nil {
		return er.ErrNoteNotFound
	}

	for _, ref := range note.Images {
		if err := s.storage.Delete(ctx, ref.PublicID); err != nil {
			tracing.TraceErr(span, err)
			s.log.Errorf("failed to delete blob %s for removed note %s: %v", ref.PublicID, note.ID, err)
		}
	}
	return nil
}

// AddImage uploads the payload, then appends the returned reference to the
// note's image array. An upload failure leaves the note unchanged. A persist
// failure after a successful upload orphans the blob; no compensating delete
// is attempted so the persistence error is not masked.
func (s *noteService) AddImage(ctx context.Context, id, owner string, data []byte, contentType string) (*models.Note, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "NoteService.AddImage")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, id)

	if len(data) == 0 {
		return nil, er.ErrEmptyImagePayload
	}

	note, err := s.repo.GetByIDAndOwner(ctx, id, owner)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if note == nil {
		return nil, er.ErrNoteNotFound
	}

	ref, err := s.storage.Upload(ctx, s.imageFolder, data, contentType)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.WithMessage(er.ErrStorageUnavailable, err.Error())
	}

	updated, err := s.repo.AppendAttachmentByIDAndOwner(ctx, id, owner, *ref)
	if err != nil {
		tracing.TraceErr(span, err)
		s.log.Errorf("uploaded blob %s is orphaned: appending to note %s failed: %v", ref.PublicID, id, err)
		return nil, err
	}
	if updated == nil {
		// Note vanished between lookup and append; the blob is orphaned.
		s.log.Warnf("uploaded blob %s is orphaned: note %s no longer exists", ref.PublicID, id)
		return nil, er.ErrNoteNotFound
	}
	return updated, nil
}

// RemoveImage deletes the blob, then filters every matching reference out of
// the note's image array. Removing an identifier that is absent from both
// the store and the note is a successful no-op.
func (s *noteService) RemoveImage(ctx context.Context, id, owner, publicID string) (*models.Note, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "NoteService.RemoveImage")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, id)

	note, err := s.repo.GetByIDAndOwner(ctx, id, owner)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if note == nil {
		return nil, er.ErrNoteNotFound
	}

	if err := s.storage.Delete(ctx, publicID); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	updated, err := s.repo.RemoveAttachmentsByIDAndOwner(ctx, id, owner, publicID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if updated == nil {
		return nil, er.ErrNoteNotFound
	}
	return updated, nil
}
