package port

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidPerson = errors.New("invalid person")
	ErrReadOnly      = errors.New("read only")
)
