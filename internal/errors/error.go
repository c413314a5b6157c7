package errors

import "github.com/pkg/errors"

var (
	// note errors
	ErrNoteNotFound  = errors.New("note not found")
	ErrTitleRequired = errors.New("title is required")

	// image attachment errors
	ErrEmptyImagePayload      = errors.New("image payload is empty")
	ErrUnsupportedContentType = errors.New("unsupported image content type")

	// collaborator errors
	ErrStorageUnavailable = errors.New("image storage unavailable")
)
