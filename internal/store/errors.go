package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new
	// user fails because an account with the same email already exists.
	ErrEmailAlreadyExists = errors.New("user with this email already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrNoteNotFound is returned when an update or delete targets a note
	// (identified by id and owner) that does not exist in the backend.
	ErrNoteNotFound = errors.New("note was not found")

	// ErrNoteNotSaved is returned when none of the enabled backends managed
	// to persist a new note, so no final record exists to return.
	ErrNoteNotSaved = errors.New("note was not saved")

	// ErrInvalidObjectID is returned when a caller-supplied identity cannot
	// be interpreted as a MongoDB ObjectID. For lookups this is normalised
	// to a not-found condition, since such an id cannot exist in the store.
	ErrInvalidObjectID = errors.New("invalid object id")
)
