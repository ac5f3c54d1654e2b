package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// DotEnvFiles lists the env files for appEnv in priority order:
// .env.<appEnv>.local, .env.local, .env.<appEnv>, .env
func DotEnvFiles(appEnv string) []string {
	if appEnv == "" {
		return []string{".env.local", ".env"}
	}
	return []string{".env." + appEnv + ".local", ".env.local", ".env." + appEnv, ".env"}
}

// LoadDotEnv loads the existing files of DotEnvFiles(APP_ENV) from dir.
// Variables already set in the process win; earlier files win over later ones.
// Returns the files actually loaded.
func LoadDotEnv(dir string) ([]string, error) {
	var loaded []string
	for _, name := range DotEnvFiles(os.Getenv("APP_ENV")) {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			loaded = append(loaded, path)
		}
	}
	if len(loaded) == 0 {
		return nil, nil
	}
	if err := godotenv.Load(loaded...); err != nil {
		return loaded, fmt.Errorf("load env files: %w", err)
	}
	return loaded, nil
}
