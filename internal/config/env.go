package config

import (
	"log/slog"
	"path/filepath"

	"github.com/joho/godotenv"
)

// envFiles are loaded in order. godotenv.Load never overrides variables that
// are already set, so .env.local wins over .env and the process environment
// wins over both.
var envFiles = []string{".env.local", ".env"}

// loadEnvFiles loads every .env file in the working directory. Missing files
// are not an error.
func loadEnvFiles() {
	loadEnvFilesIn("")
}

func loadEnvFilesIn(dir string) {
	for _, name := range envFiles {
		file := filepath.Join(dir, name)
		if err := godotenv.Load(file); err == nil {
			slog.Debug("Loaded environment variables", slog.String("file", file))
		}
	}
}
