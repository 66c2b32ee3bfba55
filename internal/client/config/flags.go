package config

import (
	"github.com/spf13/pflag"
)

const (
	flagConfig      = "config"
	flagAPIURL      = "api-url"
	flagTimeout     = "timeout"
	flagLongTimeout = "long-timeout"
	flagDataDir     = "data-dir"
	flagLogLevel    = "log-level"
	flagLogFormat   = "log-format"
	flagEphemeral   = "ephemeral"
)

// BindFlags registers the configuration flags on fs. The defaults shown in
// help are the built-in ones; only flags the user actually sets override
// the config file and environment.
func BindFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(flagConfig, "c", "", "path to a JSON or YAML config file")
	fs.StringP(flagAPIURL, "a", d.ServerBaseURL, "backend API base URL (env "+EnvServerBaseURL+")")
	fs.Duration(flagTimeout, d.RequestTimeout, "timeout for ordinary requests")
	fs.Duration(flagLongTimeout, d.LongRequestTimeout, "timeout for upload and analysis requests")
	fs.String(flagDataDir, d.DataDir, "directory for the local session store (env "+EnvDataDir+")")
	fs.String(flagLogLevel, d.LogLevel, "log level: debug, info, warn, error")
	fs.String(flagLogFormat, d.LogFormat, "log format: text or json")
	fs.Bool(flagEphemeral, d.Ephemeral, "keep the session in memory only")
}

// applyFlags copies every flag the user set on fs into cfg.
func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case flagAPIURL:
			cfg.ServerBaseURL, err = fs.GetString(flagAPIURL)
		case flagTimeout:
			cfg.RequestTimeout, err = fs.GetDuration(flagTimeout)
		case flagLongTimeout:
			cfg.LongRequestTimeout, err = fs.GetDuration(flagLongTimeout)
		case flagDataDir:
			cfg.DataDir, err = fs.GetString(flagDataDir)
		case flagLogLevel:
			cfg.LogLevel, err = fs.GetString(flagLogLevel)
		case flagLogFormat:
			cfg.LogFormat, err = fs.GetString(flagLogFormat)
		case flagEphemeral:
			cfg.Ephemeral, err = fs.GetBool(flagEphemeral)
		}
	})
	return err
}
