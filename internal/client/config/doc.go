// Package config loads runtime configuration for the estatekeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, with an optional .env file (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the listing backend
//	-t int      request timeout in seconds
//	-d string   credential store directory (defaults to the user config dir)
//	-l string   log level: debug, info, warn, error
//	-c/-config  path to a JSON config file
//
// Supported environment variables
//
//	ESTATE_SERVER_URL, ESTATE_TIMEOUT_SECONDS, ESTATE_CREDENTIAL_DIR,
//	ESTATE_LOG_LEVEL
package config
