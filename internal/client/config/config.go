package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/dmitrijs2005/contractlens/internal/common"
	"github.com/dmitrijs2005/contractlens/internal/logging"
)

const DefaultServerBaseURL = "http://localhost:8000/api/v1"

// Config holds runtime settings for the contractlens CLI.
//
// Fields:
//   - ServerBaseURL: root of the backend REST API, e.g. http://host/api/v1.
//   - RequestTimeout: budget for ordinary requests.
//   - LongRequestTimeout: budget for uploads and analysis.
//   - DataDir: where session.db and session.key live.
//   - LogLevel, LogFormat: diagnostics on stderr.
//   - Ephemeral: keep the session in memory only.
type Config struct {
	ServerBaseURL      string
	RequestTimeout     time.Duration
	LongRequestTimeout time.Duration
	DataDir            string
	LogLevel           string
	LogFormat          string
	Ephemeral          bool
}

// DefaultDataDir is <user config dir>/contractlens, or ./.contractlens when
// the platform has no config dir.
func DefaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "." + common.AppName
	}
	return filepath.Join(dir, common.AppName)
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = DefaultServerBaseURL
	c.RequestTimeout = 30 * time.Second
	c.LongRequestTimeout = 5 * time.Minute
	c.DataDir = DefaultDataDir()
	c.LogLevel = "warn"
	c.LogFormat = "text"
	c.Ephemeral = false
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.ServerBaseURL, "http://") && !strings.HasPrefix(c.ServerBaseURL, "https://") {
		return fmt.Errorf("api url %q must start with http:// or https://", c.ServerBaseURL)
	}
	if c.RequestTimeout <= 0 || c.LongRequestTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if !c.Ephemeral && strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data dir must not be empty")
	}
	return nil
}

// LoadConfig builds a Config from defaults, then the config file named by
// --config, then the environment, then flags set on fs. Later sources take
// precedence over earlier ones.
func LoadConfig(fs *pflag.FlagSet, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path, _ := fs.GetString(flagConfig); path != "" {
		if err := parseFile(cfg, path); err != nil {
			return nil, err
		}
	}
	parseEnv(cfg, getenv)
	if err := applyFlags(cfg, fs); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
