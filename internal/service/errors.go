package service

import "errors"

// Errors returned by Service implementations. Implementations wrap these
// together with the underlying cause, so match them with errors.Is.
var (
	ErrNotInitialized     = errors.New("store not initialized")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrStorageReadFailed  = errors.New("storage read failed")
	ErrStorageWriteFailed = errors.New("storage write failed")
	ErrStorageTimeout     = errors.New("storage timeout")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("task not found")
)
