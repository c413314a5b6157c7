package notes

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	er "github.com/customeros/notestack/internal/errors"
	"github.com/customeros/notestack/internal/logger"
	"github.com/customeros/notestack/internal/models"
)

const testFolder = "notes_app"

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) ListByOwner(ctx context.Context, owner string) ([]*models.Note, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Note), args.Error(1)
}

func (m *mockNoteRepository) GetByIDAndOwner(ctx context.Context, id, owner string) (*models.Note, error) {
	args := m.Called(ctx, id, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *mockNoteRepository) Create(ctx context.Context, note *models.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *mockNoteRepository) UpdateFieldsByIDAndOwner(ctx context.Context, id, owner string, fields models.NoteFields) (*models.Note, error) {
	args := m.Called(ctx, id, owner, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *mockNoteRepository) AppendAttachmentByIDAndOwner(ctx context.Context, id, owner string, ref models.AttachmentRef) (*models.Note, error) {
	args := m.Called(ctx, id, owner, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *mockNoteRepository) RemoveAttachmentsByIDAndOwner(ctx context.Context, id, owner, publicID string) (*models.Note, error) {
	args := m.Called(ctx, id, owner, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *mockNoteRepository) DeleteByIDAndOwner(ctx context.Context, id, owner string) (*models.Note, error) {
	args := m.Called(ctx, id, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

type mockImageStorage struct {
	mock.Mock
}

func (m *mockImageStorage) Upload(ctx context.Context, folder string, data []byte, contentType string) (*models.AttachmentRef, error) {
	args := m.Called(ctx, folder, data, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttachmentRef), args.Error(1)
}

func (m *mockImageStorage) Delete(ctx context.Context, publicID string) error {
	args := m.Called(ctx, publicID)
	return args.Error(0)
}

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func newTestService(repo *mockNoteRepository, storage *mockImageStorage) *noteService {
	return &noteService{
		log:         getLogger(),
		repo:        repo,
		storage:     storage,
		imageFolder: testFolder,
	}
}

func TestGetNote_WrongOwnerLooksLikeMissing(t *testing.T) {
	// Arrange
	repo := new(mockNoteRepository)
	storage := new(mockImageStorage)
	svc := newTestService(repo, storage)

	// The repository predicate is (id, owner) jointly, so a note owned by
	// someone else comes back as no match.
	repo.On("GetByIDAndOwner", mock.Anything, "note_1", "intruder").Return(nil, nil)

	// Act
	note, err := svc.GetNote(context.Background(), "note_1", "intruder")

	// Assert
	assert.Nil(t, note)
	assert.ErrorIs(t, err, er.ErrNoteNotFound)
}

func TestCreateNote_RequiresTitle(t *testing.T) {
	repo := new(mockNoteRepository)
	storage := new(mockImageStorage)
	svc := newTestService(repo, storage)

	note, err := svc.CreateNote(context.Background(), "user_1", models.NoteFields{Content: "no title"})

	assert.Nil(t, note)
	assert.ErrorIs(t, err, er.ErrTitleRequired)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateNote_StartsWithEmptyAttachments(t *testing.T) {
	repo := new(mockNoteRepository)
	storage := new(mockImageStorage)
	svc := newTestService(repo, storage)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *models.Note) bool {
		return n.UserID == "user_1" && n.Title == "T" && len(n.Images) == 0
	})).Return(nil)

	note, err := svc.CreateNote(context.Background(), "user_1", models.NoteFields{Title: "T", Content: "C"})

	require.NoError(t, err)
	assert.Equal(t, "T", note.Title)
	assert.Empty(t, note.Images)
	repo.AssertExpectations(t)
}

func TestUpdateNote_NotFoundForMissingNote(t *testing.T) {
	repo := new(mockNoteRepository)
	storage := new(mockImageStorage)
	svc := newTestService(repo, storage)

	repo.On("UpdateFieldsByIDAndOwner", mock.Anything, "note_x", "user_1", mock.Anything).Return(nil, nil)

	note, err := svc.UpdateNote(context.Background(), "note_x", "user_1", models.NoteFields{Title: "T"})

	assert.Nil(t, note)
	assert.ErrorIs(t, err, er.ErrNoteNotFound)
}

func TestAddImage_EmptyPayloadIsRejected(t *testing.T) {
	repo := new(mockNoteRepository)
	storage := new(mockImageStorage)
	svc := newTestService(repo, storage)

	note, err := svc.AddImage(context.Background(), "note_1", "user_1", nil, "image/png")

	assert.Nil(t, note)
	assert.ErrorIs(t, err, er.ErrEmptyImagePayload)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "GetByIDAndOwner", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddImage_AppendsUploadedReference(t *testing.T) {
	repo := new(mockNoteRepository)
	storage := new(mockImageStorage)
	svc := newTestService(repo, storage)

	existing := &models.Note{ID: "note_1", UserID: "user_1", Title: "T", Images: models.AttachmentRefs{}}
	ref := models.AttachmentRef{PublicID: "notes_app/abc.png", URL: "https://cdn.example.com/notes_app/abc.png"}
	updated := &models.Note{ID: "note_1", UserID: "user_1", Title: "T", Images: models.AttachmentRefs{ref}}
	payload := []byte("png-bytes")

	repo.On("GetByIDAndOwner", mock.Anything, "note_1", "user_1").Return(existing, nil)
	storage.On("Upload", mock.Anything, testFolder, payload, "image/png").Return(&ref, nil)
	repo.On("AppendAttachmentByIDAndOwner", mock.Anything, "note_1", "user_1", ref).Return(updated, nil)

	note, err := svc.AddImage(context.Background(), "note_1", "user_1", payload, "image/png")

	require.NoError(t, err)
	require.Len(t, note.Images, 1)
	assert.Equal(t, ref.PublicID, note.Images[0].PublicID)
	assert.Equal(t, ref.URL, note.Images[0].URL)
	repo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestAddImage_UploadFailureLeavesNoteUnchanged(t *testing.T) {
	repo := new(mockNoteRepository)
	storage := new(mockImageStorage)
	svc := newTestService(repo, storage)

	existing := &models.Note{ID: "note_1", UserID: "user_1", Title: "T"}
	repo.On("GetByIDAndOwner", mock.Anything, "note_1", "user_1").Return(existing, nil)
	storage.On("Upload", mock.Anything, testFolder, mock.Anything, mock.Anything).Return(nil, errors.New("provider down"))

	note, err := svc.AddImage(context.Background(), "note_1", "user_1", []byte("data"), "image/jpeg")

	assert.Nil(t, note)
	assert.Error(t, err)
	repo.AssertNotCalled(t, "AppendAttachmentByIDAndOwner", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddImage_MissingNoteSkipsUpload(t *testing.T) {
	repo := new(mockNoteRepository)
	storage := new(mockImageStorage)
	svc := newTestService(repo, storage)

	repo.On("GetByIDAndOwner", mock.Anything, "note_gone", "user_1").Return(nil, nil)

	note, err := svc.AddImage(context.Background(), "note_gone", "user_1", []byte("data"), "image/jpeg")

	assert.Nil(t, note)
	assert.ErrorIs(t, err, er.ErrNoteNotFound)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveImage_RoundTripRestoresSequence(t *testing.T) {
	repo := new(mockNoteRepository)
	storage := new(mockImageStorage)
	svc := newTestService(repo, storage)

	before := models.AttachmentRefs{{PublicID: "notes_app/keep.png", URL: "https://cdn/notes_app/keep.png"}}
	added := models.AttachmentRef{PublicID: "notes_app/new.png", URL: "https://cdn/notes_app/new.png"}
	withAdded := append(models.AttachmentRefs{}, before...)
	withAdded = append(withAdded, added)

	repo.On("GetByIDAndOwner", mock.Anything, "note_1", "user_1").
		Return(&models.Note{ID: "note_1", UserID: "user_1", Title: "T", Images: before}, nil).Once()
	storage.On("Upload", mock.Anything, testFolder, mock.Anything, mock.Anything).Return(&added, nil)
	repo.On("AppendAttachmentByIDAndOwner", mock.Anything, "note_1", "user_1", added).
		Return(&models.Note{ID: "note_1", UserID: "user_1", Title: "T", Images: withAdded}, nil)

	afterAdd, err := svc.AddImage(context.Background(), "note_1", "user_1", []byte("data"), "image/png")
	require.NoError(t, err)
	require.Len(t, afterAdd.Images, 2)

	repo.On("GetByIDAndOwner", mock.Anything, "note_1", "user_1").
		Return(&models.Note{ID: "note_1", UserID: "user_1", Title: "T", Images: withAdded}, nil).Once()
	storage.On("Delete", mock.Anything, added.PublicID).Return(nil)
	repo.On("RemoveAttachmentsByIDAndOwner", mock.Anything, "note_1", "user_1", added.PublicID).
		Return(&models.Note{ID: "note_1", UserID: "user_1", Title: "T", Images: before}, nil)

	afterRemove, err := svc.RemoveImage(context.Background(), "note_1", "user_1", added.PublicID)
	require.NoError(t, err)
	assert.Equal(t, before, afterRemove.Images)
	assert.False(t, afterRemove.HasAttachment(added.PublicID))
	assert.True(t, afterRemove.HasAttachment("notes_app/keep.png"))
	storage.AssertExpectations(t)
}

func TestRemoveImage_UnknownIdentifierIsNoOp(t *testing.T) {
	repo := new(mockNoteRepository)
	storage := new(mockImageStorage)
	svc := newTestService(repo, storage)

	images := models.AttachmentRefs{{PublicID: "notes_app/keep.png", URL: "https://cdn/notes_app/keep.png"}}
	note := &models.Note{ID: "note_1", UserID: "user_1", Title: "T", Images: images}

	repo.On("GetByIDAndOwner", mock.Anything, "note_1", "user_1").Return(note, nil)
	storage.On("Delete", mock.Anything, "notes_app/never-existed.png").Return(nil)
	repo.On("RemoveAttachmentsByIDAndOwner", mock.Anything, "note_1", "user_1", "notes_app/never-existed.png").Return(note, nil)

	result, err := svc.RemoveImage(context.Background(), "note_1", "user_1", "notes_app/never-existed.png")

	require.NoError(t, err)
	assert.Equal(t, images, result.Images)
}

func TestDeleteNote_CascadesOneBlobDeletePerAttachment(t *testing.T) {
	repo := new(mockNoteRepository)
	storage := new(mockImageStorage)
	svc := newTestService(repo, storage)

	deleted := &models.Note{
		ID:     "note_1",
		UserID: "user_1",
		Title:  "T",
		Images: models.AttachmentRefs{
			{PublicID: "notes_app/a.png"},
			{PublicID: "notes_app/b.png"},
			{PublicID: "notes_app/c.png"},
		},
	}

	repo.On("DeleteByIDAndOwner", mock.Anything, "note_1", "user_1").Return(deleted, nil)
	storage.On("Delete", mock.Anything, "notes_app/a.png").Return(nil)
	// One failing blob delete must not stop the cascade or fail the response.
	storage.On("Delete", mock.Anything, "notes_app/b.png").Return(errors.New("provider error"))
	storage.On("Delete", mock.Anything, "notes_app/c.png").Return(nil)

	err := svc.DeleteNote(context.Background(), "note_1", "user_1")

	assert.NoError(t, err)
	storage.AssertNumberOfCalls(t, "Delete", 3)
}

func TestDeleteNote_NotFoundSkipsCascade(t *testing.T) {
	repo := new(mockNoteRepository)
	storage := new(mockImageStorage)
	svc := newTestService(repo, storage)

	repo.On("DeleteByIDAndOwner", mock.Anything, "note_1", "stranger").Return(nil, nil)

	err := svc.DeleteNote(context.Background(), "note_1", "stranger")

	assert.ErrorIs(t, err, er.ErrNoteNotFound)
	storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
