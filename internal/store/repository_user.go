package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/notulensi/notulensi-pro/internal/logger"
	"github.com/notulensi/notulensi-pro/models"
)

// userRepository is the MongoDB-backed implementation of [UserRepository].
// It handles user account creation and lookup against the "users"
// collection.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *Mongo, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		collection: db.db.Collection(usersCollection),
		logger:     logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with the store-assigned identity.
//
// Error handling:
//   - MongoDB duplicate-key error on the unique email index →
//     [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	res, err := r.collection.InsertOne(ctx, userToDocument(user))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")

		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	user.ID = res.InsertedID.(primitive.ObjectID).Hex()

	return user, nil
}

// CreateUsers persists a batch of user records in one InsertMany call and
// returns them with their store-assigned identities. Used by the seeder.
func (r *userRepository) CreateUsers(ctx context.Context, users []models.User) ([]models.User, error) {
	log := logger.FromContext(ctx)

	docs := make([]any, 0, len(users))
	for _, user := range users {
		docs = append(docs, userToDocument(user))
	}

	res, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUsers").Msg("error inserting users")

		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	for i, id := range res.InsertedIDs {
		users[i].ID = id.(primitive.ObjectID).Hex()
	}

	return users, nil
}

// FindUserByEmail retrieves the user record whose email matches exactly
// (emails are stored case-sensitively).
//
// Error handling:
//   - No matching document → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	var doc userDocument
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error finding user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return doc.toModel(), nil
}

// CountUsers returns the total number of registered accounts. The seeder
// uses it as a run-once guard.
func (r *userRepository) CountUsers(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return count, nil
}
