package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON field names and
// string-friendly duration parsing for the optional config file.
type StructuredJSONConfig struct {
	App struct {
		Name        string `json:"name"`
		URL         string `json:"url"`
		Environment string `json:"environment"`
	} `json:"app,omitempty"`

	Session struct {
		Secret        string   `json:"secret"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
	} `json:"session,omitempty"`

	Storage struct {
		Mode string `json:"mode"`

		MongoDB struct {
			URI      string `json:"uri"`
			Username string `json:"username"`
			Password string `json:"password"`
			DBName   string `json:"db_name"`
		} `json:"mongodb,omitempty"`

		Files struct {
			DataDir string `json:"data_dir"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Name:        jsonCfg.App.Name,
			URL:         jsonCfg.App.URL,
			Environment: jsonCfg.App.Environment,
		},
		Session: Session{
			Secret:        jsonCfg.Session.Secret,
			TokenIssuer:   jsonCfg.Session.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.Session.TokenDuration),
		},
		Storage: Storage{
			Mode: jsonCfg.Storage.Mode,
			MongoDB: MongoDB{
				URI:      jsonCfg.Storage.MongoDB.URI,
				Username: jsonCfg.Storage.MongoDB.Username,
				Password: jsonCfg.Storage.MongoDB.Password,
				DBName:   jsonCfg.Storage.MongoDB.DBName,
			},
			Files: Files{
				DataDir: jsonCfg.Storage.Files.DataDir,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
