package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// envConfig is a DTO used exclusively for environment parsing. A zero
// value means "not set" and leaves the runtime Config untouched.
type envConfig struct {
	ServerBaseURL  string `env:"ESTATE_SERVER_URL"`
	TimeoutSeconds int    `env:"ESTATE_TIMEOUT_SECONDS"`
	CredentialDir  string `env:"ESTATE_CREDENTIAL_DIR"`
	LogLevel       string `env:"ESTATE_LOG_LEVEL"`
}

// parseEnv overlays Config with values from the process environment.
// A .env file in the working directory is loaded first when present;
// real environment variables win over the file.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	var ec envConfig
	if err := cleanenv.ReadEnv(&ec); err != nil {
		panic(err)
	}

	if ec.ServerBaseURL != "" {
		cfg.ServerBaseURL = ec.ServerBaseURL
	}
	if ec.TimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(ec.TimeoutSeconds) * time.Second
	}
	if ec.CredentialDir != "" {
		cfg.CredentialDir = ec.CredentialDir
	}
	if ec.LogLevel != "" {
		cfg.LogLevel = ec.LogLevel
	}
}
