package app

import "errors"

// Sentinel errors for common application errors
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("invalid input")
	ErrBusy            = errors.New("generation already in progress")
	ErrInvalidQuery    = errors.New("invalid search query")
	ErrOperationFailed = errors.New("operation failed")
)
