package handlers

import "github.com/customeros/notestack/services"

type APIHandlers struct {
	Notes *NotesHandler
}

func InitHandlers(s *services.Services) *APIHandlers {
	return &APIHandlers{
		Notes: NewNotesHandler(s.NoteService),
	}
}
