package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/fbsfernando/bot-link-manager/internal/migrations"

	_ "github.com/mattn/go-sqlite3"
)

// Standalone migration runner. The server applies the initial schema on
// startup; this tool exists for applying later migrations to an existing
// database without restarting the service.
func main() {
	dbPath := flag.String("db", "./botlink.db", "Path to the database file")
	dir := flag.String("dir", migrations.MigrationsDir, "Directory containing migration files")
	flag.Parse()

	if _, err := os.Stat(*dbPath); os.IsNotExist(err) {
		log.Fatalf("Database file not found: %s", *dbPath)
	}

	db, err := sql.Open("sqlite3", *dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		log.Fatalf("Failed to create migrations table: %v", err)
	}

	entries, err := os.ReadDir(*dir)
	if err != nil {
		log.Fatalf("Failed to read migrations directory %s: %v", *dir, err)
	}

	type migration struct {
		version int
		path    string
	}
	var pending []migration
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		prefix, _, found := strings.Cut(name, "_")
		if !found {
			log.Fatalf("Migration file %s is not named <version>_<description>.sql", name)
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			log.Fatalf("Migration file %s has a non-numeric version prefix", name)
		}
		pending = append(pending, migration{version: version, path: filepath.Join(*dir, name)})
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].version < pending[j].version })

	applied := 0
	for _, m := range pending {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE version = ?", m.version).Scan(&count); err != nil {
			log.Fatalf("Failed to check migration status: %v", err)
		}
		if count > 0 {
			continue
		}

		fmt.Printf("Applying migration %d (%s)...\n", m.version, filepath.Base(m.path))
		content, err := os.ReadFile(m.path)
		if err != nil {
			log.Fatalf("Failed to read migration %d: %v", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			log.Fatalf("Failed to begin transaction: %v", err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to apply migration %d: %v", m.version, err)
		}
		if _, err := tx.Exec("INSERT OR IGNORE INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to record migration %d: %v", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			log.Fatalf("Failed to commit migration %d: %v", m.version, err)
		}
		applied++
	}

	if applied == 0 {
		fmt.Println("Database is up to date")
		return
	}
	fmt.Printf("Applied %d migration(s). You can now restart botlink.\n", applied)
}
