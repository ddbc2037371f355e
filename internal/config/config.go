// Package config loads and persists the fundesk configuration.
//
// Configuration lives in ~/.fundesk/config.yml. Environment variables
// (FUNDESK_API_URL, FUNDESK_API_TOKEN, FUNDESK_ORGANIZATION) override the
// file, which keeps tokens out of dotfiles on shared machines.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Cookie consent choices. This flag is the single piece of persistent
// local state; everything else is fetched fresh from the API.
const (
	ConsentUnset      = ""
	ConsentAll        = "all"
	ConsentFunctional = "functional"
)

// Config holds all fundesk configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Logging LoggingConfig `yaml:"logging"`

	// ClientType selects the dashboard flavor: sponsor, provider or
	// validator. It shapes which commands apply and export filenames.
	ClientType string `yaml:"client_type"`

	// Organization is the active organization id for all commands.
	Organization int `yaml:"organization"`

	// CookiesAccepted persists the consent banner choice.
	CookiesAccepted string `yaml:"cookies_accepted"`
}

// APIConfig configures the platform API connection.
type APIConfig struct {
	URL     string `yaml:"url"`
	Token   string `yaml:"token"`
	Timeout string `yaml:"timeout"`
}

// LoggingConfig controls the categorized file logger.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Categories map[string]bool `yaml:"categories"`
}

// Default returns the configuration used when no file exists yet.
func Default() *Config {
	return &Config{
		API: APIConfig{
			URL:     "https://api.example.com/api/v1",
			Timeout: "30s",
		},
		ClientType: "sponsor",
		Logging: LoggingConfig{
			DebugMode:  false,
			Categories: map[string]bool{},
		},
	}
}

// Dir returns the fundesk config directory, creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".fundesk")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// Path returns the config file location.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yml"), nil
}

// Load reads the config file, falling back to defaults when it does not
// exist, then applies environment overrides.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run; defaults plus env are enough.
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.validateConsent(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config back to its file.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to an explicit path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FUNDESK_API_URL"); v != "" {
		cfg.API.URL = v
	}
	if v := os.Getenv("FUNDESK_API_TOKEN"); v != "" {
		cfg.API.Token = v
	}
	if v := os.Getenv("FUNDESK_ORGANIZATION"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			cfg.Organization = id
		}
	}
}

func (c *Config) validateConsent() error {
	switch c.CookiesAccepted {
	case ConsentUnset, ConsentAll, ConsentFunctional:
		return nil
	default:
		return fmt.Errorf("invalid cookies_accepted value %q (want all or functional)", c.CookiesAccepted)
	}
}

// SetConsent updates the consent flag after validating the choice.
func (c *Config) SetConsent(value string) error {
	prev := c.CookiesAccepted
	c.CookiesAccepted = value
	if err := c.validateConsent(); err != nil {
		c.CookiesAccepted = prev
		return err
	}
	return nil
}
