package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	custom_err "github.com/customeros/notestack/api/errors"
	notestack_errors "github.com/customeros/notestack/errors"
	"github.com/customeros/notestack/interfaces"
	er "github.com/customeros/notestack/internal/errors"
	"github.com/customeros/notestack/internal/models"
	"github.com/customeros/notestack/internal/tracing"
	"github.com/customeros/notestack/internal/utils"
)

// NoteRequest represents the API request for creating or updating a note
type NoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Color   string `json:"color"`
}

type NotesHandler struct {
	noteService interfaces.NoteService
}

func NewNotesHandler(noteService interfaces.NoteService) *NotesHandler {
	return &NotesHandler{noteService: noteService}
}

// List returns all notes owned by the caller, newest first
func (h *NotesHandler) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "NotesHandler.List", c.Request.Header)
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		owner, ok := h.ownerFromContext(c, ctx)
		if !ok {
			return
		}

		notes, err := h.noteService.ListNotes(ctx, owner)
		if err != nil {
			h.respondWithError(c, span, err)
			return
		}

		c.JSON(http.StatusOK, notes)
	}
}

// Get returns a single note by id
func (h *NotesHandler) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "NotesHandler.Get", c.Request.Header)
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)
		tracing.TagEntity(span, c.Param("id"))

		owner, ok := h.ownerFromContext(c, ctx)
		if !ok {
			return
		}

		note, err := h.noteService.GetNote(ctx, c.Param("id"), owner)
		if err != nil {
			h.respondWithError(c, span, err)
			return
		}

		c.JSON(http.StatusOK, note)
	}
}

// Create makes a new note with an empty attachment list
func (h *NotesHandler) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "NotesHandler.Create", c.Request.Header)
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		var request NoteRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		if errs := validateNoteRequest(&request); errs.HasErrors() {
			tracing.TraceErr(span, errs)
			c.JSON(http.StatusBadRequest, gin.H{"error": errs.Error()})
			return
		}

		owner, ok := h.ownerFromContext(c, ctx)
		if !ok {
			return
		}

		note, err := h.noteService.CreateNote(ctx, owner, models.NoteFields{
			Title:   request.Title,
			Content: request.Content,
			Color:   request.Color,
		})
		if err != nil {
			h.respondWithError(c, span, err)
			return
		}

		c.JSON(http.StatusCreated, note)
	}
}

// Update replaces title, content and color; attachments are untouched
func (h *NotesHandler) Update() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "NotesHandler.Update", c.Request.Header)
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)
		tracing.TagEntity(span, c.Param("id"))

		var request NoteRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}

		if errs := validateNoteRequest(&request); errs.HasErrors() {
			tracing.TraceErr(span, errs)
			c.JSON(http.StatusBadRequest, gin.H{"error": errs.Error()})
			return
		}

		owner, ok := h.ownerFromContext(c, ctx)
		if !ok {
			return
		}

		note, err := h.noteService.UpdateNote(ctx, c.Param("id"), owner, models.NoteFields{
			Title:   request.Title,
			Content: request.Content,
			Color:   request.Color,
		})
		if err != nil {
			h.respondWithError(c, span, err)
			return
		}

		c.JSON(http.StatusOK, note)
	}
}

// Delete removes the note and cascades deletion of its image blobs
func (h *NotesHandler) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "NotesHandler.Delete", c.Request.Header)
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)
		tracing.TagEntity(span, c.Param("id"))

		owner, ok := h.ownerFromContext(c, ctx)
		if !ok {
			return
		}

		err := h.noteService.DeleteNote(ctx, c.Param("id"), owner)
		if err != nil {
			h.respondWithError(c, span, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
	}
}

// AddImage uploads the multipart "image" file and attaches it to the note
func (h *NotesHandler) AddImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "NotesHandler.AddImage", c.Request.Header)
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)
		tracing.TagEntity(span, c.Param("id"))

		owner, ok := h.ownerFromContext(c, ctx)
		if !ok {
			return
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
			return
		}

		contentType := fileHeader.Header.Get("Content-Type")
		if !utils.IsImageContentType(contentType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": er.ErrUnsupportedContentType.Error()})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read image file"})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read image file"})
			return
		}

		note, err := h.noteService.AddImage(ctx, c.Param("id"), owner, data, contentType)
		if err != nil {
			h.respondWithError(c, span, err)
			return
		}

		c.JSON(http.StatusOK, note)
	}
}

// RemoveImage detaches an image by its external identifier and deletes the
// blob. The identifier is matched as a wildcard because object keys carry a
// folder prefix.
func (h *NotesHandler) RemoveImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "NotesHandler.RemoveImage", c.Request.Header)
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)
		tracing.TagEntity(span, c.Param("id"))

		owner, ok := h.ownerFromContext(c, ctx)
		if !ok {
			return
		}

		publicID := strings.TrimPrefix(c.Param("publicId"), "/")
		if publicID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image identifier is required"})
			return
		}

		note, err := h.noteService.RemoveImage(ctx, c.Param("id"), owner, publicID)
		if err != nil {
			h.respondWithError(c, span, err)
			return
		}

		c.JSON(http.StatusOK, note)
	}
}

// ownerFromContext returns the authenticated owner identity, responding 401
// when the auth middleware did not resolve one.
func (h *NotesHandler) ownerFromContext(c *gin.Context, ctx context.Context) (string, bool) {
	owner := utils.GetUserIdFromContext(ctx)
	if owner == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": notestack_errors.ErrUserIDNotSet.Error()})
		return "", false
	}
	return owner, true
}

// respondWithError maps domain errors onto HTTP statuses: absent or
// not-owned notes are 404, everything else the caller can see is 400.
func (h *NotesHandler) respondWithError(c *gin.Context, span opentracing.Span, err error) {
	tracing.TraceErr(span, err)

	switch {
	case errors.Is(err, er.ErrNoteNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func validateNoteRequest(request *NoteRequest) *custom_err.MultiErrors {
	errs := custom_err.NewMultiErrors()
	if strings.TrimSpace(request.Title) == "" {
		errs.Add("title", "please provide a title", er.ErrTitleRequired)
	}
	return errs
}
