package services

import "errors"

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrNoMatches          = errors.New("no users found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports a missing or empty required field. Msg is client facing.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

// StorageError is any store failure that has no more specific meaning.
// Its message is the driver's message, unchanged.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }
