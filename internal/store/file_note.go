package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/notulensi/notulensi-pro/internal/logger"
	"github.com/notulensi/notulensi-pro/models"
)

// dayFilePrefix and dayFileExt frame the deterministic day-file name:
// notulensi_YYYY-MM-DD.json.
const (
	dayFilePrefix = "notulensi_"
	dayFileExt    = ".json"
)

// noteFileStore is the flat-file implementation of [NoteFileStore]. Each
// calendar day of note creation owns one JSON file holding an array of note
// records, newest-first.
//
// All mutations run under one store-wide mutex: an update may move a record
// between two day-files, so per-file locks would need ordered acquisition
// to stay deadlock-free. A single lock is the safe serialization and keeps
// concurrent writers from interleaving partial writes of the JSON arrays.
type noteFileStore struct {
	dir    string
	logger *logger.Logger

	mu sync.Mutex

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// NewNoteFileStore constructs a [NoteFileStore] rooted at dir. The
// directory is created on demand by the first write.
func NewNoteFileStore(dir string, logger *logger.Logger) NoteFileStore {
	logger.Debug().Str("dir", dir).Msg("creating note file store")
	return &noteFileStore{
		dir:    dir,
		logger: logger,
		now:    time.Now,
	}
}

// dayFileName derives the file name for a note from its creation instant,
// using the server's local calendar day.
func dayFileName(createdAt time.Time) string {
	return dayFilePrefix + createdAt.Local().Format("2006-01-02") + dayFileExt
}

// ListNotes parses every day-file in the data directory and returns the
// concatenation of their records. A missing directory yields an empty list.
func (s *noteFileStore) ListNotes(ctx context.Context) ([]models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.dayFiles()
	if err != nil {
		return nil, err
	}

	var all []models.Note
	for _, name := range files {
		notes, err := s.readDayFile(name)
		if err != nil {
			return nil, err
		}
		all = append(all, notes...)
	}

	return all, nil
}

// SaveNote prepends the note into the day-file named for its creation date.
// A missing file is treated as an empty array.
func (s *noteFileStore) SaveNote(ctx context.Context, note models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureDataDir(); err != nil {
		return err
	}

	name := dayFileName(note.CreatedAt)
	notes, err := s.readDayFile(name)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	notes = append([]models.Note{note}, notes...)

	return s.writeDayFile(name, notes)
}

// UpdateNote locates the record by identity (and owner, if tagged) with a
// full scan across day-files, removes it from its current file, merges the
// update, re-inserts it into the file derived from its creation date, and
// re-sorts that file newest-first by creation time. The re-sort keeps the
// file from drifting out of order across repeated update cycles.
func (s *noteFileStore) UpdateNote(ctx context.Context, userID string, update models.NoteUpdate) (models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found, err := s.takeNote(userID, update.ID)
	if err != nil {
		return models.Note{}, err
	}

	update.ApplyTo(found, s.now())

	target := dayFileName(found.CreatedAt)
	notes, err := s.readDayFile(target)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return models.Note{}, err
	}

	notes = append([]models.Note{*found}, notes...)
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})

	if err := s.writeDayFile(target, notes); err != nil {
		return models.Note{}, err
	}

	return *found, nil
}

// DeleteNote scans the day-files and removes the first record matching
// identity (and owner, if tagged). The scan stops at the first match;
// identities are expected unique within file storage.
func (s *noteFileStore) DeleteNote(ctx context.Context, userID, noteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.takeNote(userID, noteID)
	return err
}

// takeNote finds the first record matching noteID (and owner, if the record
// is tagged), removes it from its day-file — deleting the file when it
// becomes empty — and returns the removed record. Callers hold s.mu.
func (s *noteFileStore) takeNote(userID, noteID string) (*models.Note, error) {
	files, err := s.dayFiles()
	if err != nil {
		return nil, err
	}

	for _, name := range files {
		notes, err := s.readDayFile(name)
		if err != nil {
			return nil, err
		}

		for i, note := range notes {
			if note.ID != noteID || !ownerMatches(note, userID) {
				continue
			}

			remaining := append(notes[:i:i], notes[i+1:]...)
			if len(remaining) == 0 {
				if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
					return nil, fmt.Errorf("error removing empty day-file %s: %w", name, err)
				}
			} else if err := s.writeDayFile(name, remaining); err != nil {
				return nil, err
			}

			return &note, nil
		}
	}

	return nil, ErrNoteNotFound
}

// ownerMatches reports whether the caller may act on the record: untagged
// legacy records match any caller, tagged records only their owner.
func ownerMatches(note models.Note, userID string) bool {
	return note.UserID == "" || note.UserID == userID
}

// dayFiles lists the JSON files in the data directory in lexical order.
// A missing directory is treated as empty.
func (s *noteFileStore) dayFiles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading data directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), dayFileExt) {
			names = append(names, entry.Name())
		}
	}

	return names, nil
}

func (s *noteFileStore) readDayFile(name string) ([]models.Note, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("error reading day-file %s: %w", name, err)
	}

	var notes []models.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("error parsing day-file %s: %w", name, err)
	}

	return notes, nil
}

func (s *noteFileStore) writeDayFile(name string, notes []models.Note) error {
	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding day-file %s: %w", name, err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("error writing day-file %s: %w", name, err)
	}

	return nil
}

func (s *noteFileStore) ensureDataDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("error creating data directory: %w", err)
	}

	return nil
}
