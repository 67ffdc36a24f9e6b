package services

import "errors"

// Sentinel errors classifying service failures. Controllers translate these
// to HTTP status codes at a single point; anything outside this taxonomy is
// treated as an internal error and never shown to the client.
var (
	ErrValidation = errors.New("invalid input")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("authentication failed")
	ErrNotFound   = errors.New("not found")
	ErrInternal   = errors.New("internal error")
)

// Error pairs a taxonomy sentinel with a message safe to return to clients.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }

func validationError(msg string) error { return &Error{kind: ErrValidation, msg: msg} }
func conflictError(msg string) error   { return &Error{kind: ErrConflict, msg: msg} }
func authError(msg string) error       { return &Error{kind: ErrAuth, msg: msg} }
func notFoundError(msg string) error   { return &Error{kind: ErrNotFound, msg: msg} }
