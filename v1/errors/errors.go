package errors

import "errors"

var (
	ErrUnknownKind   = errors.New("unknown lock kind")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrLostUpdate    = errors.New("lost update")
)
