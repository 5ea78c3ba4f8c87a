package wheel

import "errors"

var (
	// ErrOutOfRange is returned when an index lies outside [0, N-1].
	ErrOutOfRange = errors.New("index out of range")

	// ErrNoSelection is returned when the registry is empty.
	ErrNoSelection = errors.New("no selection")

	// ErrInvalidConfig is returned by New and SetConfig for unusable geometry.
	ErrInvalidConfig = errors.New("invalid picker config")
)
