package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInternalServer = errors.New("internal server error")
)

// Member errors
var (
	ErrMemberNotFound   = errors.New("member not found or inactive")
	ErrInvalidBirthDate = errors.New("invalid birth date")
	ErrNoChanges        = errors.New("no recognized fields to update")
)

// Attendance errors
var (
	ErrInvalidStatus = errors.New("status must be PRESENT or LATE")
	ErrAdminRequired = errors.New("admin session required on non-Sunday")
)

// Session errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSession          = errors.New("no valid admin session")
)
