// Package adapter provides a typed client for the notes server API.
//
// The primary abstraction is [APIClient], which decouples callers (CLI
// tooling, smoke tests, other services) from the HTTP transport. The package
// ships a resty-based implementation ([NewHTTPAPIClient]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrTooManyRequests] for 429, [ErrUnauthorized] for
// 401).
package adapter

import (
	"context"

	"github.com/notulensi/notulensi-pro/models"
)

// APIClient defines typed communication with the notes server. Implementations
// are responsible for serialisation, session token management, and mapping
// transport-level errors to the sentinel values defined in this package.
type APIClient interface {
	// SetToken stores the session token that will be attached as a bearer
	// header to all subsequent authenticated requests. Register and Login
	// call it automatically on success.
	SetToken(token string)

	// Token returns the session token currently stored in the client, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates a new account and starts a session.
	Register(ctx context.Context, req models.RegisterRequest) (models.UserPayload, error)

	// Login authenticates an existing account and starts a session. A
	// rate-limited attempt surfaces as a wrapped [ErrTooManyRequests].
	Login(ctx context.Context, req models.LoginRequest) (models.UserPayload, error)

	// Logout ends the session server-side and clears the stored token.
	Logout(ctx context.Context) error

	// Me returns the account behind the stored session token.
	Me(ctx context.Context) (models.UserPayload, error)

	// ListNotes returns the caller's notes newest-first. Anonymous calls
	// return only legacy untagged records.
	ListNotes(ctx context.Context) ([]models.Note, error)

	// CreateNote persists a new note and returns it with its assigned id.
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)

	// UpdateNote applies a partial update and returns the updated note.
	UpdateNote(ctx context.Context, update models.NoteUpdate) (models.Note, error)

	// DeleteNote removes the note with the given id.
	DeleteNote(ctx context.Context, noteID string) error
}
