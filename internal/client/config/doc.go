// Package config loads runtime configuration for the contractlens CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c/--config. Files ending in .yaml
//     or .yml are YAML, anything else is JSON.
//  3. Environment: CONTRACTLENS_API_URL, CONTRACTLENS_DATA_DIR.
//  4. Command-line flags registered by BindFlags, when explicitly set.
//
// # File schema
//
// Durations use timex.Duration, so they can be strings like "30s" or integer
// nanoseconds. Keys that are absent keep their earlier value:
//
//	api_url: https://contracts.example.com/api/v1
//	request_timeout: 30s
//	long_request_timeout: 5m
//	data_dir: /home/me/.config/contractlens
//	log_level: info
//	log_format: json
//	ephemeral: false
package config
