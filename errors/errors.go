package notestack_errors

import "errors"

var (
	ErrUserIDNotSet = errors.New("userId not set on context")
)
