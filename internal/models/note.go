package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/customeros/notestack/internal/utils"
)

// Note is a user-owned note with an ordered set of image attachments.
// Every query against notes is scoped to (id, user_id) jointly so a note
// belonging to another user is indistinguishable from a missing one.
type Note struct {
	ID      string `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID  string `gorm:"type:varchar(50);index;not null" json:"user"`
	Title   string `gorm:"type:varchar(500);not null" json:"title"`
	Content string `gorm:"type:text" json:"content"`
	Color   string `gorm:"type:varchar(50)" json:"color"`

	// Images holds attachment references in insertion order.
	// Insertion order is display order.
	Images AttachmentRefs `gorm:"type:jsonb;not null;default:'[]'" json:"images"`

	// Standard timestamps
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:current_timestamp" json:"updatedAt"`
}

// NoteFields carries the plain mutable note fields for create and update.
type NoteFields struct {
	Title   string
	Content string
	Color   string
}

// TableName overrides the table name for Note
func (Note) TableName() string {
	return "notes"
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = utils.GenerateNanoIDWithPrefix("note", 12)
	}
	if n.Images == nil {
		n.Images = AttachmentRefs{}
	}
	n.CreatedAt = utils.Now()
	return nil
}

// HasAttachment reports whether the note carries a reference with the given
// external identifier.
func (n *Note) HasAttachment(publicID string) bool {
	for _, ref := range n.Images {
		if ref.PublicID == publicID {
			return true
		}
	}
	return false
}
