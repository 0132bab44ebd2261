package config

import (
	"time"
)

// Storage mode values recognised in Storage.Mode. They select which note
// backend(s) are active; the users collection always lives in MongoDB.
const (
	// StorageModeMongo persists notes to the MongoDB "notes" collection only.
	StorageModeMongo = "mongodb"
	// StorageModeJSON persists notes to per-day JSON files only.
	StorageModeJSON = "json"
	// StorageModeBoth writes to both backends and reconciles at read time.
	StorageModeBoth = "both"
)

// StructuredConfig is the top-level configuration container for the
// notulensi-pro server. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: display name, public URL, and
	// the deployment environment gate for registration/seeding.
	App App `envPrefix:"APP_"`

	// Session holds the token signing secret and token lifecycle settings.
	Session Session `envPrefix:"SESSION_"`

	// Storage holds configuration for both note persistence backends and
	// the mode selecting which of them are active.
	Storage Storage

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Name is the display name of the application.
	// Env: APP_NAME
	Name string `env:"NAME"`

	// URL is the public base URL the application is served from.
	// Env: APP_URL
	URL string `env:"URL"`

	// Environment is the deployment environment ("development",
	// "production"). Registration and seeding are disabled in production.
	// Env: APP_ENVIRONMENT
	Environment string `env:"ENVIRONMENT"`
}

// Session holds session-token settings.
type Session struct {
	// Secret is the HMAC key used to sign and verify session JWTs.
	// Must be kept confidential.
	// Env: SESSION_SECRET
	Secret string `env:"SECRET"`

	// TokenIssuer is the "iss" claim embedded in every issued token and
	// validated on every authenticated request.
	// Env: SESSION_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a session token remains valid
	// after issuance (e.g. "168h", "30m").
	// Env: SESSION_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// Storage groups the configuration for both note persistence backends.
type Storage struct {
	// Mode selects the active note backend(s): "mongodb", "json", or "both".
	// Env: STORAGE_MODE
	Mode string `env:"STORAGE_MODE"`

	// MongoDB holds the document-store connection settings.
	MongoDB MongoDB `envPrefix:"MONGODB_"`

	// Files holds the day-file storage settings.
	Files Files `envPrefix:"STORAGE_FILES_"`
}

// MongoDB holds connection settings for the document store.
type MongoDB struct {
	// URI is the MongoDB connection string. It may contain the literal
	// placeholders UNAME and PASSWORD which are substituted with the
	// Username and Password values at connection time.
	// Env: MONGODB_URI
	URI string `env:"URI"`

	// Username replaces the UNAME placeholder in URI.
	// Env: MONGODB_UNAME
	Username string `env:"UNAME"`

	// Password replaces the PASSWORD placeholder in URI.
	// Env: MONGODB_PASSWORD
	Password string `env:"PASSWORD"`

	// DBName is the database holding the users and notes collections.
	// Env: MONGODB_DB_NAME
	DBName string `env:"DB_NAME"`
}

// Files holds file-system settings for the per-day JSON note store.
type Files struct {
	// DataDir is the directory holding one JSON file per calendar day of
	// note creation. Created on demand.
	// Env: STORAGE_FILES_DATA_DIR
	DataDir string `env:"DATA_DIR"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:3000").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// IncludesMongo reports whether the configured mode writes notes to the
// document store.
func (s Storage) IncludesMongo() bool {
	return s.Mode == StorageModeMongo || s.Mode == StorageModeBoth
}

// IncludesFiles reports whether the configured mode writes notes to the
// per-day JSON files.
func (s Storage) IncludesFiles() bool {
	return s.Mode == StorageModeJSON || s.Mode == StorageModeBoth
}

// IsProduction reports whether the application runs in the production
// environment, where registration and seeding are disabled.
func (a App) IsProduction() bool {
	return a.Environment == "production"
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first non-zero value wins):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
