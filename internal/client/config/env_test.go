package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseEnv(t *testing.T) {
	t.Run("overlays set variables", func(t *testing.T) {
		t.Setenv("ESTATE_SERVER_URL", "http://env-host:3000/api")
		t.Setenv("ESTATE_TIMEOUT_SECONDS", "25")
		t.Setenv("ESTATE_LOG_LEVEL", "error")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, "http://env-host:3000/api", cfg.ServerBaseURL)
		assert.Equal(t, 25*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "error", cfg.LogLevel)
		assert.Equal(t, "", cfg.CredentialDir)
	})

	t.Run("unset variables leave defaults alone", func(t *testing.T) {
		for _, key := range []string{"ESTATE_SERVER_URL", "ESTATE_TIMEOUT_SECONDS", "ESTATE_CREDENTIAL_DIR", "ESTATE_LOG_LEVEL"} {
			t.Setenv(key, "placeholder") // registers restoration
			os.Unsetenv(key)
		}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, "http://127.0.0.1:3000/api", cfg.ServerBaseURL)
		assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	})
}
