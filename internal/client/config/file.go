package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/grievdesk/internal/flagx"
	"github.com/dmitrijs2005/grievdesk/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO for the optional config file. Pointer fields tell a
// missing key apart from a zero value, so only keys present in the file
// override defaults. timex.Duration accepts "15s" or integer nanoseconds.
type FileConfig struct {
	ServerURL      *string         `json:"server_url" yaml:"server_url"`
	DataDir        *string         `json:"data_dir" yaml:"data_dir"`
	RequestTimeout *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogLevel       *string         `json:"log_level" yaml:"log_level"`
	EncryptStorage *bool           `json:"encrypt_storage" yaml:"encrypt_storage"`
	StaticAddress  *string         `json:"static_address" yaml:"static_address"`
}

// parseFile overlays cfg with the file named by -c or -config. Files ending
// in .yaml or .yml are read as YAML, everything else as JSON.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc FileConfig) apply(cfg *Config) {
	if fc.ServerURL != nil {
		cfg.ServerURL = *fc.ServerURL
	}
	if fc.DataDir != nil {
		cfg.DataDir = *fc.DataDir
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.EncryptStorage != nil {
		cfg.EncryptStorage = *fc.EncryptStorage
	}
	if fc.StaticAddress != nil {
		cfg.StaticAddress = *fc.StaticAddress
	}
}
