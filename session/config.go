package session

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/trackql/trackql"
)

// Environment variables overriding config file values.
const (
	EnvServerURL = "TRACKQL_SERVER_URL"
	EnvAPIKey    = "TRACKQL_API_KEY"
	EnvAPIUser   = "TRACKQL_API_USER"
	EnvPageSize  = "TRACKQL_PAGE_SIZE"
)

// Config carries connection settings for an executor implementation. The
// core never reads it; it exists so executors share one loading path.
type Config struct {
	ServerURL string `yaml:"server_url"`
	APIKey    string `yaml:"api_key"`
	APIUser   string `yaml:"api_user"`

	// PageSize is the default batch fetch size applied to select
	// statements that do not set their own.
	PageSize int `yaml:"page_size"`
}

// LoadConfig reads a YAML config file and applies environment-variable
// overrides on top of it.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("session: reading config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("session: parsing config: %w", err)
	}
	if err := cfg.fromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigFromEnv builds a config from environment variables alone.
func ConfigFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := cfg.fromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) fromEnv() error {
	if v := os.Getenv(EnvServerURL); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvAPIUser); v != "" {
		c.APIUser = v
	}
	if v := os.Getenv(EnvPageSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("session: %s must be a positive integer, got %q", EnvPageSize, v)
		}
		c.PageSize = n
	}
	return nil
}

// WithDefaults applies the config's default page size to a select
// statement that has not set one. Statements with an explicit page size
// pass through unchanged.
func (c *Config) WithDefaults(stmt *trackql.SelectStatement) *trackql.SelectStatement {
	if c.PageSize <= 0 || stmt == nil || stmt.Options().PageSize != 0 {
		return stmt
	}
	return stmt.PageSize(c.PageSize)
}
