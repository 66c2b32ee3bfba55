package config

import "strings"

const (
	EnvServerBaseURL = "CONTRACTLENS_API_URL"
	EnvDataDir       = "CONTRACTLENS_DATA_DIR"
)

func parseEnv(cfg *Config, getenv func(string) string) {
	if getenv == nil {
		return
	}
	if v := strings.TrimSpace(getenv(EnvServerBaseURL)); v != "" {
		cfg.ServerBaseURL = v
	}
	if v := strings.TrimSpace(getenv(EnvDataDir)); v != "" {
		cfg.DataDir = v
	}
}
