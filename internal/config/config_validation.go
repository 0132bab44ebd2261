package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.Mode {
	case StorageModeMongo, StorageModeJSON, StorageModeBoth:
	default:
		return ErrInvalidStorageMode
	}

	// The users collection always lives in MongoDB, so the URI is required
	// even when notes are stored in JSON files only.
	if cfg.Storage.MongoDB.URI == "" || cfg.Storage.MongoDB.DBName == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Storage.IncludesFiles() && cfg.Storage.Files.DataDir == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Session.Secret == "" || cfg.Session.TokenDuration == 0 {
		return ErrInvalidSessionConfigs
	}

	if cfg.App.IsProduction() && cfg.Session.Secret == "default-secret-change-in-production" {
		return ErrDefaultSecretInProduction
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}
