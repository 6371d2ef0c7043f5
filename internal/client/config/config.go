package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the grievance desk client.
//
// Fields:
//   - ServerURL: base URL of the backend REST API.
//   - DataDir: directory holding the local database and device key.
//   - RequestTimeout: per-request HTTP timeout.
//   - LogLevel: debug, info, warn or error.
//   - EncryptStorage: seal persisted values with the device key.
//   - StaticAddress: address reported when a screen asks for the current location.
type Config struct {
	ServerURL      string
	DataDir        string
	RequestTimeout time.Duration
	LogLevel       string
	EncryptStorage bool
	StaticAddress  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.DataDir = "./data"
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "info"
	c.EncryptStorage = true
	c.StaticAddress = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file (if given) and command-line flags. Later sources take
// precedence over earlier ones. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server url is required")
	}
	if c.DataDir == "" {
		return fmt.Errorf("data dir is required")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}
