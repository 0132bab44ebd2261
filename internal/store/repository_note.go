package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/notulensi/notulensi-pro/internal/logger"
	"github.com/notulensi/notulensi-pro/models"
)

// noteRepository is the MongoDB-backed implementation of [NoteRepository].
// Every filter includes the owner identity, so one user can never read or
// mutate another user's notes through this layer.
type noteRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *Mongo, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		collection: db.db.Collection(notesCollection),
		logger:     logger,
		now:        time.Now,
	}
}

// InsertNote persists a new note and returns it carrying the
// store-generated ObjectID as its identity.
func (r *noteRepository) InsertNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	doc, err := noteToDocument(note)
	if err != nil {
		return models.Note{}, err
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.InsertNote").Msg("error inserting note")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	note.ID = res.InsertedID.(primitive.ObjectID).Hex()

	return note, nil
}

// FindNotesByOwner returns all notes owned by userID, newest-first by
// creation time.
func (r *noteRepository) FindNotesByOwner(ctx context.Context, userID string) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	ownerID, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}

	cursor, err := r.collection.Find(ctx,
		bson.M{"userId": ownerID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.FindNotesByOwner").Msg("error querying notes")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	var docs []noteDocument
	if err := cursor.All(ctx, &docs); err != nil {
		log.Err(err).Str("func", "*noteRepository.FindNotesByOwner").Msg("error decoding notes")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	notes := make([]models.Note, 0, len(docs))
	for _, doc := range docs {
		notes = append(notes, doc.toModel())
	}

	return notes, nil
}

// UpdateNote performs a single conditional update matching both identity
// and owner and returns the post-update document. A non-matching filter —
// nonexistent note, foreign owner, or a malformed id that cannot exist in
// the store — is reported as [ErrNoteNotFound].
func (r *noteRepository) UpdateNote(ctx context.Context, userID string, update models.NoteUpdate) (models.Note, error) {
	log := logger.FromContext(ctx)

	noteID, err := parseObjectID(update.ID)
	if err != nil {
		return models.Note{}, ErrNoteNotFound
	}
	ownerID, err := parseObjectID(userID)
	if err != nil {
		return models.Note{}, ErrNoteNotFound
	}

	set := bson.M{"updatedAt": r.now()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Group != nil {
		set["group"] = *update.Group
	}
	if update.Content != nil {
		set["content"] = *update.Content
	}

	var doc noteDocument
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": noteID, "userId": ownerID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).Str("func", "*noteRepository.UpdateNote").Msg("error updating note")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return doc.toModel(), nil
}

// DeleteNote removes the note matching identity and owner. A zero deleted
// count — nonexistent note, foreign owner, or malformed id — is reported as
// [ErrNoteNotFound].
func (r *noteRepository) DeleteNote(ctx context.Context, userID, noteID string) error {
	log := logger.FromContext(ctx)

	id, err := parseObjectID(noteID)
	if err != nil {
		return ErrNoteNotFound
	}
	ownerID, err := parseObjectID(userID)
	if err != nil {
		return ErrNoteNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": ownerID})
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.DeleteNote").Msg("error deleting note")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	if res.DeletedCount == 0 {
		return ErrNoteNotFound
	}

	return nil
}
