package migrations

import (
	"fmt"
	"os"
	"path/filepath"
)

const initialSchemaFile = "001_initial_schema.sql"

// MigrationsDir is where schema files live, relative to the working
// directory. Overridable via BOTLINK_MIGRATIONS_DIR or in tests.
var MigrationsDir = "scripts/migrations"

// GetInitialSchema loads the initial database schema from disk.
func GetInitialSchema() (string, error) {
	dir := MigrationsDir
	if env := os.Getenv("BOTLINK_MIGRATIONS_DIR"); env != "" {
		dir = env
	}

	// The binary may run from the repo root or from a package dir in tests.
	searchPaths := []string{
		filepath.Join(dir, initialSchemaFile),
		filepath.Join("..", "..", dir, initialSchemaFile),
		filepath.Join("..", dir, initialSchemaFile),
	}

	for _, path := range searchPaths {
		content, err := os.ReadFile(path)
		if err == nil {
			return string(content), nil
		}
	}

	return "", fmt.Errorf("schema file %s not found under %s", initialSchemaFile, dir)
}
