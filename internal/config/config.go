// Package config loads settings for the puzzle client and the dev puzzle API.
//
// Precedence, lowest to highest: built-in defaults, an optional config file
// (TOML, YAML or JSON by extension), environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Identity store kinds.
const (
	IdentitySQLite = "sqlite"
	IdentityMemory = "memory"
)

// Config holds all settings.
type Config struct {
	// APIBaseURL is the puzzle API root, e.g. http://localhost:8000.
	APIBaseURL string `toml:"api_base_url" json:"api_base_url" yaml:"api_base_url"`

	// IdentityStore selects where the player id is persisted: sqlite or memory.
	IdentityStore string `toml:"identity_store" json:"identity_store" yaml:"identity_store"`

	// IdentityDBPath is the SQLite file used when IdentityStore is sqlite.
	IdentityDBPath string `toml:"identity_db_path" json:"identity_db_path" yaml:"identity_db_path"`

	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`

	DevServer DevServerConfig `toml:"dev_server" json:"dev_server" yaml:"dev_server"`
}

// LoggingConfig controls zerolog output.
type LoggingConfig struct {
	Level  string `toml:"level" json:"level" yaml:"level"`
	Format string `toml:"format" json:"format" yaml:"format"` // console | json
}

// DevServerConfig is read by the local puzzle API.
type DevServerConfig struct {
	Port         string `toml:"port" json:"port" yaml:"port"`
	DailySalt    string `toml:"daily_salt" json:"daily_salt" yaml:"daily_salt"`
	ClientOrigin string `toml:"client_origin" json:"client_origin" yaml:"client_origin"`
	PuzzlesFile  string `toml:"puzzles_file" json:"puzzles_file" yaml:"puzzles_file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIBaseURL:     "http://localhost:8000",
		IdentityStore:  IdentitySQLite,
		IdentityDBPath: filepath.Join(dataDir(), "identity.db"),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		DevServer: DevServerConfig{
			Port:         "8000",
			DailySalt:    "local_dev_salt",
			ClientOrigin: "http://localhost:5173",
		},
	}
}

func dataDir() string {
	if d, err := os.UserConfigDir(); err == nil && d != "" {
		return filepath.Join(d, "redoodle")
	}
	return filepath.Join(".", "data")
}

// Load reads path (if non-empty and present) over the defaults, then applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("decode TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode JSON: %w", err)
		}
	default:
		return fmt.Errorf("config %s: unsupported extension (want .toml, .yaml or .json)", path)
	}
	return nil
}

// ApplyEnvOverrides overlays environment variables onto c.
func (c *Config) ApplyEnvOverrides() {
	setFromEnv(&c.APIBaseURL, "REDOODLE_API_URL")
	setFromEnv(&c.IdentityStore, "REDOODLE_IDENTITY_STORE")
	setFromEnv(&c.IdentityDBPath, "REDOODLE_IDENTITY_DB")
	setFromEnv(&c.Logging.Level, "LOG_LEVEL")
	setFromEnv(&c.Logging.Format, "LOG_FORMAT")
	setFromEnv(&c.DevServer.Port, "PORT")
	setFromEnv(&c.DevServer.DailySalt, "DAILY_SALT")
	setFromEnv(&c.DevServer.ClientOrigin, "CLIENT_ORIGIN")
	setFromEnv(&c.DevServer.PuzzlesFile, "PUZZLES_FILE")
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks the settings the client cannot run without.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_base_url %q must be an http(s) URL", c.APIBaseURL)
	}
	switch c.IdentityStore {
	case IdentitySQLite:
		if c.IdentityDBPath == "" {
			return errors.New("identity_db_path is required for the sqlite identity store")
		}
	case IdentityMemory:
	default:
		return fmt.Errorf("identity_store %q: want %s or %s", c.IdentityStore, IdentitySQLite, IdentityMemory)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q: want console or json", c.Logging.Format)
	}
	return nil
}
