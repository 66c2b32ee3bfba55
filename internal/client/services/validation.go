package services

import "errors"

// ErrValidation marks input rejected before any request was sent.
var ErrValidation = errors.New("validation failed")

// User facing validation messages.
const (
	MsgLoginRequired     = "Please enter your email and password"
	MsgRequiredFields    = "Please fill in all required fields"
	MsgPasswordsMismatch = "Passwords do not match"
	MsgPasswordTooShort  = "Password must be at least 8 characters long"
	MsgNoFile            = "Please select a file to upload"
	MsgUnsupportedFile   = "Only PDF and DOCX files are supported."
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 8

// ValidationError carries the message to show the user. It matches
// ErrValidation with errors.Is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}
