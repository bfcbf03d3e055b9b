package services

import "errors"

// Validation and authentication failures surfaced to handlers. Handlers
// translate these into HTTP statuses and response bodies.
var (
	// ErrMissingFields indicates a required field was absent or blank.
	ErrMissingFields = errors.New("missing required fields")

	// ErrInvalidEmail indicates the email does not parse as an address.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrUsernameTooShort indicates a username below the minimum length.
	ErrUsernameTooShort = errors.New("username is too short")

	// ErrUserExists indicates the email is already registered.
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password, so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidPeriod indicates an unrecognized summary period.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrMissingFile indicates an upload request without a file part.
	ErrMissingFile = errors.New("no file uploaded")
)
