package service

import (
	"context"
	"fmt"
	"time"

	"github.com/notulensi/notulensi-pro/internal/logger"
	"github.com/notulensi/notulensi-pro/internal/store"
	"github.com/notulensi/notulensi-pro/models"
)

// noteService validates note payloads at the boundary before handing them
// to the reconciliation layer. The legacy path accepted arbitrary dynamic
// payloads; here every record is an explicitly-typed note checked before
// persistence.
type noteService struct {
	noteStorage store.NoteStorage
	logger      *logger.Logger
}

// NewNoteService constructs a NoteService over the given NoteStorage.
func NewNoteService(noteStorage store.NoteStorage, logger *logger.Logger) NoteService {
	return &noteService{
		noteStorage: noteStorage,
		logger:      logger,
	}
}

// List returns the caller's notes newest-first. An empty userID lists only
// legacy untagged file records.
func (n *noteService) List(ctx context.Context, userID string) ([]models.Note, error) {
	return n.noteStorage.List(ctx, userID)
}

// Create validates and persists a new note owned by userID.
//
// The title is required; a zero creation time defaults to now and the
// modification time always starts equal to the creation time.
func (n *noteService) Create(ctx context.Context, userID string, note models.Note) (models.Note, error) {
	if userID == "" || note.Title == "" {
		return models.Note{}, ErrInvalidDataProvided
	}

	note.UserID = userID
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	note.UpdatedAt = note.CreatedAt

	created, err := n.noteStorage.Create(ctx, note)
	if err != nil {
		return models.Note{}, fmt.Errorf("note creation failed: %w", err)
	}

	return created, nil
}

// Update validates and applies a partial update to a note owned by userID.
// An empty replacement title is rejected; titles never become empty.
func (n *noteService) Update(ctx context.Context, userID string, update models.NoteUpdate) (models.Note, error) {
	if userID == "" || update.ID == "" {
		return models.Note{}, ErrInvalidDataProvided
	}
	if update.Title != nil && *update.Title == "" {
		return models.Note{}, ErrInvalidDataProvided
	}

	return n.noteStorage.Update(ctx, userID, update)
}

// Delete removes the note with the given identity owned by userID.
func (n *noteService) Delete(ctx context.Context, userID, noteID string) error {
	if userID == "" || noteID == "" {
		return ErrInvalidDataProvided
	}

	return n.noteStorage.Delete(ctx, userID, noteID)
}
