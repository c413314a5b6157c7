package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

// AttachmentRef points at an image blob held in external object storage.
// PublicID is the stable external identifier (the full object key, folder
// prefix included); URL is the retrieval locator and may be re-signed by the
// store without the identifier changing.
type AttachmentRef struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// AttachmentRefs is an ordered list of attachment references stored as a
// JSONB array in PostgreSQL.
type AttachmentRefs []AttachmentRef

// Value implements the driver.Valuer interface for AttachmentRefs
func (a AttachmentRefs) Value() (driver.Value, error) {
	if a == nil {
		a = AttachmentRefs{}
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface for AttachmentRefs
func (a *AttachmentRefs) Scan(value interface{}) error {
	if value == nil {
		*a = AttachmentRefs{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.Errorf("unsupported type for AttachmentRefs: %T", value)
	}

	return json.Unmarshal(bytes, a)
}
