package extension

import "errors"

var (
	// ErrInvalidConfiguration marks malformed policy parameters or an
	// unsupported rate kind. It is never returned for extraction failures.
	ErrInvalidConfiguration = errors.New("invalid extension configuration")
)
