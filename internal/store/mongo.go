package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/notulensi/notulensi-pro/internal/config"
	"github.com/notulensi/notulensi-pro/internal/logger"
)

// Collection names in the application database.
const (
	usersCollection = "users"
	notesCollection = "notes"
)

// Mongo wraps the MongoDB client and the application database handle.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
	logger *logger.Logger
}

// NewConnectMongo establishes the MongoDB connection, pings the server, and
// ensures the unique email index on the users collection.
func NewConnectMongo(ctx context.Context, cfg config.MongoDB, log *logger.Logger) (*Mongo, error) {
	uri := buildMongoURI(cfg)

	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetRetryWrites(true).
		SetRetryReads(true).
		SetMaxPoolSize(10).
		SetMinPoolSize(2).
		SetConnectTimeout(30 * time.Second).
		SetTimeout(45 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error occurred during database connection")
		return nil, fmt.Errorf("error occurred during database connection: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectMongo").Msg("connected to database successfully")

	m := &Mongo{
		client: client,
		db:     client.Database(cfg.DBName),
		logger: log,
	}

	if err := m.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	return m, nil
}

// Disconnect closes the underlying client connection.
func (m *Mongo) Disconnect(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// ensureIndexes creates the unique index on users.email so duplicate
// registrations fail at the store level even under concurrent requests.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	_, err := m.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("error creating users email index: %w", err)
	}

	return nil
}

// buildMongoURI substitutes the UNAME and PASSWORD placeholders in the
// configured connection string with the url-escaped credentials, when both
// are present.
func buildMongoURI(cfg config.MongoDB) string {
	uri := cfg.URI

	if cfg.Username != "" && cfg.Password != "" {
		uri = strings.Replace(uri, "UNAME", url.QueryEscape(cfg.Username), 1)
		uri = strings.Replace(uri, "PASSWORD", url.QueryEscape(cfg.Password), 1)
	}

	return uri
}
