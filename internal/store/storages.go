package store

import (
	"context"

	"github.com/notulensi/notulensi-pro/internal/config"
	"github.com/notulensi/notulensi-pro/internal/logger"
)

// Storages aggregates the persistence layer handed to the service layer.
type Storages struct {
	UserRepository UserRepository
	NoteStorage    NoteStorage

	mongo *Mongo
}

// NewStorages connects the document store, builds the note backends enabled
// by cfg.Mode, and wires them behind the [NoteStorage] facade.
//
// The MongoDB connection is always established: the users collection lives
// there regardless of the note storage mode.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	mongo, err := NewConnectMongo(ctx, cfg.MongoDB, logger)
	if err != nil {
		return nil, err
	}

	var noteRepository NoteRepository
	if cfg.IncludesMongo() {
		noteRepository = NewNoteRepository(mongo, logger)
	}

	var fileStore NoteFileStore
	if cfg.IncludesFiles() {
		fileStore = NewNoteFileStore(cfg.Files.DataDir, logger)
	}

	return &Storages{
		UserRepository: NewUserRepository(mongo, logger),
		NoteStorage:    NewNoteStorage(noteRepository, fileStore, cfg, logger),
		mongo:          mongo,
	}, nil
}

// Close releases the document-store connection.
func (s *Storages) Close(ctx context.Context) error {
	if s.mongo == nil {
		return nil
	}

	return s.mongo.Disconnect(ctx)
}
