// Package store implements persistence for users and notes.
//
// Users always live in the MongoDB "users" collection. Notes are persisted
// according to the configured storage mode: the MongoDB "notes" collection
// ([NoteRepository]), a directory of per-day JSON files ([NoteFileStore]),
// or both, reconciled behind the [NoteStorage] facade.
package store

import (
	"context"

	"github.com/notulensi/notulensi-pro/models"
)

// UserRepository handles user account persistence in the document store.
type UserRepository interface {
	// CreateUser inserts a new account and returns it with the
	// store-assigned ID and timestamps. Returns ErrEmailAlreadyExists when
	// the email is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// CreateUsers inserts a batch of accounts (used by the seeder).
	CreateUsers(ctx context.Context, users []models.User) ([]models.User, error)

	// FindUserByEmail returns the account with the given email or
	// ErrNoUserWasFound.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// CountUsers returns the number of registered accounts.
	CountUsers(ctx context.Context) (int64, error)
}

// NoteRepository is the document-store backend for notes. All filters are
// scoped by the owning user to prevent cross-user access.
type NoteRepository interface {
	// InsertNote persists a new note and returns it with the
	// store-generated identity.
	InsertNote(ctx context.Context, note models.Note) (models.Note, error)

	// FindNotesByOwner returns all notes owned by userID, newest-first.
	FindNotesByOwner(ctx context.Context, userID string) ([]models.Note, error)

	// UpdateNote applies a conditional update matching both identity and
	// owner and returns the updated note, or ErrNoteNotFound when no
	// document matches.
	UpdateNote(ctx context.Context, userID string, update models.NoteUpdate) (models.Note, error)

	// DeleteNote removes the note matching identity and owner, or returns
	// ErrNoteNotFound.
	DeleteNote(ctx context.Context, userID, noteID string) error
}

// NoteFileStore is the flat-file backend for notes: one JSON array per
// calendar day of note creation, filename derived deterministically from
// that date.
type NoteFileStore interface {
	// ListNotes parses every day-file and returns all records. Owner
	// filtering happens in the reconciliation layer.
	ListNotes(ctx context.Context) ([]models.Note, error)

	// SaveNote prepends the note into the day-file named for its creation
	// date, creating the file if needed.
	SaveNote(ctx context.Context, note models.Note) error

	// UpdateNote locates the record across all day-files by identity (and
	// owner, if the record is tagged), merges the update, moves the record
	// into the file derived from its creation date, and re-sorts that file
	// newest-first. Returns ErrNoteNotFound when no record matches.
	UpdateNote(ctx context.Context, userID string, update models.NoteUpdate) (models.Note, error)

	// DeleteNote removes the first record matching identity (and owner, if
	// tagged), deleting the day-file when it becomes empty. Returns
	// ErrNoteNotFound when no record matches.
	DeleteNote(ctx context.Context, userID, noteID string) error
}

// NoteStorage presents a unified CRUD surface over notes regardless of the
// configured storage mode.
type NoteStorage interface {
	// List returns the caller's notes, newest-first, merged across enabled
	// backends and deduplicated by identity (document-store copies win).
	// An empty userID lists only legacy untagged file records.
	List(ctx context.Context, userID string) ([]models.Note, error)

	// Create persists a new note to every enabled backend and returns the
	// final record (carrying the document-store identity when available).
	Create(ctx context.Context, note models.Note) (models.Note, error)

	// Update applies a partial update in every enabled backend. It
	// succeeds when at least one backend produced an updated record.
	Update(ctx context.Context, userID string, update models.NoteUpdate) (models.Note, error)

	// Delete removes the note from every enabled backend. It succeeds when
	// at least one backend held the record.
	Delete(ctx context.Context, userID, noteID string) error
}
