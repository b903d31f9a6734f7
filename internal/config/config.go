// Package config provides settings loading and validation for the Luxor CLI.
// Settings come from a .env file, an optional YAML file and the process
// environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
// Unlike an explicit path, it may be absent.
const DefaultPath = "luxor.yaml"

// DefaultLogFile is the append-only request log used in verbose mode.
const DefaultLogFile = "requests.log"

// Environment variable names. They override values from the YAML file.
const (
	EnvHost    = "HOST"
	EnvAPIKey  = "API_KEY"
	EnvMethod  = "METHOD"
	EnvLogFile = "LOG_FILE"
)

// ErrMissingSettings is returned by Validate when a required setting is empty.
var ErrMissingSettings = errors.New("missing required settings")

// Config holds the long-lived client settings: where to send queries, how to
// authenticate and which HTTP method to use.
type Config struct {
	Host    string `yaml:"host"`     // GraphQL endpoint URL (supports ${VAR} env expansion)
	APIKey  string `yaml:"api_key"`  // Sent in the x-lux-api-key header
	Method  string `yaml:"method"`   // HTTP method, normally POST
	LogFile string `yaml:"log_file"` // Request log path (optional, defaults to requests.log)
}

var knownMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// Validate checks that every required setting is present and well formed.
// It normalizes the method to upper case and applies the log file default.
func (c *Config) Validate() error {
	var missing []string
	if c.Host == "" {
		missing = append(missing, "host ("+EnvHost+")")
	}
	if c.APIKey == "" {
		missing = append(missing, "api_key ("+EnvAPIKey+")")
	}
	if c.Method == "" {
		missing = append(missing, "method ("+EnvMethod+")")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingSettings, strings.Join(missing, ", "))
	}

	u, err := url.Parse(c.Host)
	if err != nil {
		return fmt.Errorf("host: invalid url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("host: invalid url (missing scheme or host)")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("host: invalid url scheme %q (expected http or https)", u.Scheme)
	}

	c.Method = strings.ToUpper(strings.TrimSpace(c.Method))
	if !knownMethods[c.Method] {
		return fmt.Errorf("method: unsupported HTTP method %q", c.Method)
	}

	if c.LogFile == "" {
		c.LogFile = DefaultLogFile
	}
	return nil
}

// Load builds a validated Config.
//
// Sources, lowest precedence first:
//   - .env in the working directory (see LoadEnv)
//   - the YAML file at path, with ${VAR} references expanded
//   - HOST, API_KEY, METHOD and LOG_FILE from the environment
//
// An empty path or a missing DefaultPath file is not an error; a missing
// explicit path is.
func Load(path string) (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist) && path == DefaultPath:
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			expanded := os.ExpandEnv(string(data))
			if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	override := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	override(&c.Host, EnvHost)
	override(&c.APIKey, EnvAPIKey)
	override(&c.Method, EnvMethod)
	override(&c.LogFile, EnvLogFile)
}

// LoadEnv reads KEY=VALUE pairs from .env in the current working directory.
// Variables already set in the process environment win. A missing .env file
// is not an error, so the tool also works with plain environment variables.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Insecure reports whether the host is reached over plain http, which sends
// the API key in clear text.
func (c *Config) Insecure() bool {
	u, err := url.Parse(c.Host)
	return err == nil && u.Scheme == "http"
}
