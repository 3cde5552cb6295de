package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that provide command line defaults.
const (
	EnvDB       = "SKYBIRD_DB"
	EnvConfig   = "SKYBIRD_CONFIG"
	EnvLogLevel = "SKYBIRD_LOG_LEVEL"
	EnvPlayer   = "SKYBIRD_PLAYER"
)

// LoadEnv reads KEY=VALUE pairs from the given .env files (default ".env")
// into the process environment. Missing files are not an error; variables
// already set are never overridden.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: cannot load %s: %w", f, err)
		}
	}
	return nil
}

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
