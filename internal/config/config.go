// Package config loads the flightcal configuration file.
//
// Two formats are supported, chosen by file extension: YAML (.yaml/.yml)
// and JSONC (.json/.jsonc). JSONC is JSON with comments, so hand-edited
// config files can be annotated; comments are stripped with
// github.com/tidwall/jsonc before parsing with encoding/json.
//
// Every field has a usable default, so running without any config file at
// all is the common case.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/flightcal/internal/model"
)

// appDirName is the directory name used under the OS config and cache
// directories.
const appDirName = "flightcal"

// candidateFiles are the config filenames probed by LoadDefault, in
// priority order.
var candidateFiles = []string{"config.jsonc", "config.json", "config.yaml", "config.yml"}

// Config holds all tunables for the CLI and the web server.
type Config struct {
	// APIBaseURL is the flight-data API host.
	APIBaseURL string `json:"apiBaseURL" yaml:"api_base_url"`

	// TimeoutSeconds bounds a single flight-data HTTP attempt.
	TimeoutSeconds int `json:"timeoutSeconds" yaml:"timeout_seconds"`

	// RetryMax is the number of retries on transient API failures.
	RetryMax int `json:"retryMax" yaml:"retry_max"`

	// ListenAddr is the web server bind address for `flightcal serve`.
	ListenAddr string `json:"listenAddr" yaml:"listen_addr"`

	// DatabasePath is the SQLite lookup-history database location.
	DatabasePath string `json:"databasePath" yaml:"database_path"`

	// LogFile is where structured logs are written. Empty disables the
	// file sink.
	LogFile string `json:"logFile" yaml:"log_file"`

	// LogLevel is the minimum zap log level (debug, info, warn, error).
	LogLevel string `json:"logLevel" yaml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		APIBaseURL:     "https://api.flightradar24.com",
		TimeoutSeconds: 15,
		RetryMax:       3,
		ListenAddr:     "127.0.0.1:8080",
		DatabasePath:   filepath.Join(cacheDir(), "history.db"),
		LogFile:        filepath.Join(cacheDir(), "flightcal.log"),
		LogLevel:       "info",
	}
}

// cacheDir returns the per-user cache directory for flightcal, falling
// back to the working directory when the OS cannot report one.
func cacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, appDirName)
}

// HTTPTimeout returns TimeoutSeconds as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return model.NewCLIError(model.ExitConfigError, "api base URL must not be empty")
	}
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return model.NewCLIError(model.ExitConfigError,
			fmt.Sprintf("api base URL %q must start with http:// or https://", c.APIBaseURL))
	}
	if c.TimeoutSeconds <= 0 {
		return model.NewCLIError(model.ExitConfigError, "timeout must be positive")
	}
	if c.RetryMax < 0 {
		return model.NewCLIError(model.ExitConfigError, "retry max must not be negative")
	}
	if c.ListenAddr == "" {
		return model.NewCLIError(model.ExitConfigError, "listen address must not be empty")
	}
	return nil
}

// Load reads a config file at an explicit path. Fields absent from the
// file keep their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to read config file %s", path), err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		// jsonc.ToJSON replaces comments and trailing commas with
		// whitespace, yielding plain JSON for the standard decoder.
		if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
			return Config{}, model.WrapCLIError(model.ExitConfigError,
				fmt.Sprintf("failed to parse config file %s", path), err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, model.WrapCLIError(model.ExitConfigError,
				fmt.Sprintf("failed to parse config file %s", path), err)
		}
	default:
		return Config{}, model.NewCLIError(model.ExitConfigError,
			fmt.Sprintf("unsupported config file extension %q (supported: .jsonc, .json, .yaml, .yml)", filepath.Ext(path)))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDefault probes the standard config locations and loads the first
// file found. With no file anywhere it returns Default().
func LoadDefault() (Config, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return Default(), nil
	}

	for _, name := range candidateFiles {
		path := filepath.Join(base, appDirName, name)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		} else if err != nil {
			return Config{}, model.WrapCLIError(model.ExitConfigError,
				fmt.Sprintf("failed to check config file %s", path), err)
		}
		return Load(path)
	}
	return Default(), nil
}
