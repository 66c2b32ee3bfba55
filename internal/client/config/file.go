package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/contractlens/internal/timex"
)

// fileConfig is a DTO used exclusively for decoding config files.
// Durations go through timex.Duration so they can be written as "30s".
// Pointers distinguish "not set" from zero values.
type fileConfig struct {
	ServerBaseURL      *string         `json:"api_url" yaml:"api_url"`
	RequestTimeout     *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LongRequestTimeout *timex.Duration `json:"long_request_timeout" yaml:"long_request_timeout"`
	DataDir            *string         `json:"data_dir" yaml:"data_dir"`
	LogLevel           *string         `json:"log_level" yaml:"log_level"`
	LogFormat          *string         `json:"log_format" yaml:"log_format"`
	Ephemeral          *bool           `json:"ephemeral" yaml:"ephemeral"`
}

// parseFile overlays cfg with the values present in the file at path.
// .yaml and .yml files are read as YAML, everything else as JSON.
func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.ServerBaseURL != nil {
		cfg.ServerBaseURL = *fc.ServerBaseURL
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.LongRequestTimeout != nil {
		cfg.LongRequestTimeout = fc.LongRequestTimeout.Duration
	}
	if fc.DataDir != nil {
		cfg.DataDir = *fc.DataDir
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogFormat != nil {
		cfg.LogFormat = *fc.LogFormat
	}
	if fc.Ephemeral != nil {
		cfg.Ephemeral = *fc.Ephemeral
	}
	return nil
}
