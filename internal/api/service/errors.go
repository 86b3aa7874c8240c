package service

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist or is
	// not owned by the requesting user.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists is returned on unique-constraint style conflicts
	// checked at the service layer.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrInvalidInput is returned when a request fails validation.
	ErrInvalidInput = errors.New("invalid input")
)
