// File: /models/errors.go
package models

import "errors"

// Domain errors shared by repositories, services and controllers. Controllers
// translate these to HTTP statuses in utils.MapError.
var (
	ErrNotFound     = errors.New("record not found")
	ErrUnauthorized = errors.New("unauthorized")

	ErrUsernameTaken     = errors.New("username already exists")
	ErrEmailTaken        = errors.New("email already registered")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrEventFull         = errors.New("event is full")
	ErrDeadlinePassed    = errors.New("registration deadline has passed")

	ErrAttendanceNotConfirmed     = errors.New("attendance not confirmed")
	ErrCertificateAlreadyIssued   = errors.New("certificate already issued")
	ErrCertificateNotIssued       = errors.New("certificate not yet issued")
	ErrCertificateGeneration      = errors.New("certificate generation failed")
	ErrCertificateArtifactMissing = errors.New("certificate file not found")

	ErrNotImplemented = errors.New("operation not implemented")
)
