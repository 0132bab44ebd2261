package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageMode indicates a storage mode outside the recognised
	// set (mongodb, json, both).
	ErrInvalidStorageMode = errors.New("invalid storage mode")
	// ErrInvalidStorageConfigs indicates incomplete storage settings
	// (for example, an empty MongoDB URI or missing data directory).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidSessionConfigs indicates incomplete session settings
	// (for example, an empty signing secret or zero token duration).
	ErrInvalidSessionConfigs = errors.New("invalid session configuration")
	// ErrDefaultSecretInProduction indicates the built-in development
	// signing secret is still configured in a production deployment.
	ErrDefaultSecretInProduction = errors.New("default session secret must be changed in production")
	// ErrInvalidServerConfigs indicates incomplete server settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
