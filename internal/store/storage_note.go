package store

import (
	"context"
	"errors"
	"sort"

	"github.com/notulensi/notulensi-pro/internal/config"
	"github.com/notulensi/notulensi-pro/internal/logger"
	"github.com/notulensi/notulensi-pro/internal/utils"
	"github.com/notulensi/notulensi-pro/models"
)

// noteStorage is the default implementation of [NoteStorage].
//
// It orchestrates the document-store repository and the day-file store
// according to the configured storage mode, merging results and
// deduplicating by identity at read time. A backend that is not enabled by
// the mode stays nil and is never touched.
type noteStorage struct {
	storage config.Storage

	// repository is the document-store backend. Nil when the mode is "json".
	repository NoteRepository

	// fileStore is the day-file backend. Nil when the mode is "mongodb".
	fileStore NoteFileStore

	logger *logger.Logger
}

// NewNoteStorage constructs a [NoteStorage] over the backends enabled by
// cfg.Mode. The caller passes nil for backends that are not enabled.
func NewNoteStorage(repository NoteRepository, fileStore NoteFileStore, cfg config.Storage, logger *logger.Logger) NoteStorage {
	logger.Debug().Str("mode", cfg.Mode).Msg("creating note storage")
	return &noteStorage{
		storage:    cfg,
		repository: repository,
		fileStore:  fileStore,
		logger:     logger,
	}
}

// List merges the caller's notes across the enabled backends, newest-first.
//
// Dedup policy is explicit: when the same identity appears in both backends
// (the file copy carries an echo of the document-assigned identity after a
// dual write), the document-store copy wins. Document results are indexed
// first and later file duplicates are skipped.
//
// Reads soft-fail per backend: a failing backend is logged and the other
// backend's results are still returned. An error is reported only when
// every enabled backend failed.
func (s *noteStorage) List(ctx context.Context, userID string) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	var merged []models.Note
	seen := make(map[string]struct{})
	var errs []error

	if s.storage.IncludesMongo() && userID != "" {
		notes, err := s.repository.FindNotesByOwner(ctx, userID)
		if err != nil {
			log.Err(err).Msg("document store read failed, continuing with file results")
			errs = append(errs, err)
		}
		for _, note := range notes {
			if _, ok := seen[note.ID]; ok {
				continue
			}
			seen[note.ID] = struct{}{}
			merged = append(merged, note)
		}
	}

	if s.storage.IncludesFiles() {
		notes, err := s.fileStore.ListNotes(ctx)
		if err != nil {
			log.Err(err).Msg("file store read failed, continuing with document results")
			errs = append(errs, err)
		}
		for _, note := range notes {
			// Untagged records are legacy single-user notes visible to
			// everyone; tagged records only to their owner.
			if note.UserID != "" && note.UserID != userID {
				continue
			}
			if _, ok := seen[note.ID]; ok {
				continue
			}
			seen[note.ID] = struct{}{}
			merged = append(merged, note)
		}
	}

	if merged == nil && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	return merged, nil
}

// Create persists the note to every enabled backend.
//
// The document store is written first so its generated identity can be
// echoed into the file record; in file-only mode a missing identity is
// minted client-side. The final record comes from the first backend that
// produced one; if none did, the create failed.
func (s *noteStorage) Create(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	var final *models.Note
	var errs []error

	if s.storage.IncludesMongo() {
		created, err := s.repository.InsertNote(ctx, note)
		if err != nil {
			log.Err(err).Msg("document store insert failed")
			errs = append(errs, err)
		} else {
			note.ID = created.ID
			final = &created
		}
	}

	if s.storage.IncludesFiles() {
		if note.ID == "" {
			note.ID = utils.NewNoteID()
		}

		if err := s.fileStore.SaveNote(ctx, note); err != nil {
			log.Err(err).Msg("file store save failed")
			errs = append(errs, err)
		} else if final == nil {
			final = &note
		}
	}

	if final == nil {
		errs = append(errs, ErrNoteNotSaved)
		return models.Note{}, errors.Join(errs...)
	}

	return *final, nil
}

// Update applies the partial update in every enabled backend. The operation
// succeeds when at least one backend produced an updated record; when all
// enabled backends miss, the note does not exist for this caller.
func (s *noteStorage) Update(ctx context.Context, userID string, update models.NoteUpdate) (models.Note, error) {
	log := logger.FromContext(ctx)

	var final *models.Note
	var failure error

	if s.storage.IncludesMongo() {
		updated, err := s.repository.UpdateNote(ctx, userID, update)
		switch {
		case err == nil:
			final = &updated
		case errors.Is(err, ErrNoteNotFound):
		default:
			log.Err(err).Msg("document store update failed")
			failure = err
		}
	}

	if s.storage.IncludesFiles() {
		updated, err := s.fileStore.UpdateNote(ctx, userID, update)
		switch {
		case err == nil:
			if final == nil {
				final = &updated
			}
		case errors.Is(err, ErrNoteNotFound):
		default:
			log.Err(err).Msg("file store update failed")
			failure = err
		}
	}

	if final == nil {
		if failure != nil {
			return models.Note{}, failure
		}
		return models.Note{}, ErrNoteNotFound
	}

	return *final, nil
}

// Delete removes the note from every enabled backend. The operation
// succeeds when at least one backend held the record.
func (s *noteStorage) Delete(ctx context.Context, userID, noteID string) error {
	log := logger.FromContext(ctx)

	deleted := false
	var failure error

	if s.storage.IncludesMongo() {
		err := s.repository.DeleteNote(ctx, userID, noteID)
		switch {
		case err == nil:
			deleted = true
		case errors.Is(err, ErrNoteNotFound):
		default:
			log.Err(err).Msg("document store delete failed")
			failure = err
		}
	}

	if s.storage.IncludesFiles() {
		err := s.fileStore.DeleteNote(ctx, userID, noteID)
		switch {
		case err == nil:
			deleted = true
		case errors.Is(err, ErrNoteNotFound):
		default:
			log.Err(err).Msg("file store delete failed")
			failure = err
		}
	}

	if !deleted {
		if failure != nil {
			return failure
		}
		return ErrNoteNotFound
	}

	return nil
}
