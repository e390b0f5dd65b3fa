package config

import "time"

// Config holds runtime settings for the estatekeeper CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the listing backend, including any path
//     prefix (e.g. "http://192.168.1.129:3000/api").
//   - RequestTimeout: per-request HTTP timeout.
//   - CredentialDir: directory for the credential store; empty selects
//     <user-config-dir>/estatekeeper.
//   - LogLevel: slog level name (debug, info, warn, error).
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	CredentialDir  string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:3000/api"
	c.RequestTimeout = 15 * time.Second
	c.CredentialDir = ""
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (with an optional .env file), a JSON file (if
// present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
