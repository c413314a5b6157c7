package services

import (
	"github.com/customeros/notestack/interfaces"
	"github.com/customeros/notestack/internal/logger"
	"github.com/customeros/notestack/internal/repository"
	"github.com/customeros/notestack/services/notes"
)

type Services struct {
	NoteService interfaces.NoteService
}

func InitServices(log logger.Logger, repos *repository.Repositories, imageStorage interfaces.ImageStorageService, imageFolder string) *Services {
	return &Services{
		NoteService: notes.NewNoteService(log, repos.NoteRepository, imageStorage, imageFolder),
	}
}
