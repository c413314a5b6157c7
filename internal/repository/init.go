package repository

import (
	"gorm.io/gorm"

	"github.com/customeros/notestack/interfaces"
	"github.com/customeros/notestack/internal/models"
)

type Repositories struct {
	NoteRepository interfaces.NoteRepository
}

func InitRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		NoteRepository: NewNoteRepository(db),
	}
}

func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Note{},
	)
}
