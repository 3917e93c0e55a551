package recall

import "errors"

var (
	// ErrInvalidConfig indicates that a cache configuration fails validation.
	ErrInvalidConfig = errors.New("recall: invalid cache config")
	// ErrUnknownStrategy indicates an unrecognized eviction strategy name.
	ErrUnknownStrategy = errors.New("recall: unknown eviction strategy")
)
