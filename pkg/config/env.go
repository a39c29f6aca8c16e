package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// LoadEnv loads .env files into the process environment without overriding
// variables that are already set. Missing files are ignored; with no
// arguments ".env" is tried.
func LoadEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: load env %s: %w", name, err)
		}
	}
	return nil
}

// ReadEnv parses .env files without touching the process environment.
func ReadEnv(filenames ...string) (map[string]string, error) {
	values, err := godotenv.Read(filenames...)
	if err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	return values, nil
}

// MapLookup adapts a map to the lookup function ApplyEnv takes.
func MapLookup(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}
