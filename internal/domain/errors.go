package domain

import "errors"

// Sentinel errors surfaced to the request boundary. Handlers match them
// with errors.Is and translate to an HTTP status plus a readable message.
var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so a caller cannot tell which check failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrDuplicateEmail is returned when creating or updating a user with
	// an email already held by another user.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrNoAuthorizedPerformer is returned when the caller recording a
	// transaction does not resolve to an admin user.
	ErrNoAuthorizedPerformer = errors.New("no authorized performer")

	// ErrUserHasHistory is returned when deleting a user that is still
	// referenced by ledger entries, as subject or performer.
	ErrUserHasHistory = errors.New("user has transaction history")

	// ErrValidation is the base class for rejected input.
	ErrValidation = errors.New("validation failed")
)

// Validation errors wrap ErrValidation so handlers can match the family.
var (
	ErrZeroAmount  = validationError("amount must be nonzero")
	ErrEmptyReason = validationError("reason must not be empty")
)

type wrappedValidation struct{ msg string }

func validationError(msg string) error { return &wrappedValidation{msg: msg} }

func (e *wrappedValidation) Error() string { return e.msg }

func (e *wrappedValidation) Unwrap() error { return ErrValidation }
