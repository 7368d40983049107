package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"hrms-backend/internal/db"

	"go.uber.org/zap"
)

// Migrations are read from disk at start-up so schema changes ship without a rebuild.

// Migrator applies SQL files from a directory in filename order.
type Migrator struct {
	conn db.Queryer
	dir  string
	log  *zap.Logger
}

func NewMigrator(conn db.Queryer, dir string, log *zap.Logger) *Migrator {
	if dir == "" {
		dir = "migrations"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Migrator{conn: conn, dir: dir, log: log}
}

// RunMigrations executes every pending migration.
//
// Files are skipped when their name contains "reset" or when they are already
// recorded in schema_migrations.
func (m *Migrator) RunMigrations(ctx context.Context) error {
	m.log.Info("starting database migrations", zap.String("dir", m.dir))

	if err := m.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := m.appliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	files, err := m.migrationFiles()
	if err != nil {
		return err
	}

	ran := 0
	for _, filename := range files {
		if strings.Contains(filename, "reset") {
			m.log.Info("skipping reset script", zap.String("file", filename))
			continue
		}
		if applied[filename] {
			continue
		}

		content, err := os.ReadFile(filepath.Join(m.dir, filename))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", filename, err)
		}

		m.log.Info("running migration", zap.String("file", filename))
		if _, err := m.conn.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", filename, err)
		}
		if err := m.recordMigration(ctx, filename); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", filename, err)
		}
		ran++
	}

	m.log.Info("migrations complete", zap.Int("applied", ran), zap.Int("total", len(files)))
	return nil
}

func (m *Migrator) migrationFiles() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SERIAL PRIMARY KEY,
			filename VARCHAR(255) UNIQUE NOT NULL,
			applied_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := m.conn.Exec(ctx, query)
	return err
}

func (m *Migrator) appliedMigrations(ctx context.Context) (map[string]bool, error) {
	applied := make(map[string]bool)

	rows, err := m.conn.Query(ctx, "SELECT filename FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var filename string
		if err := rows.Scan(&filename); err != nil {
			return nil, err
		}
		applied[filename] = true
	}
	return applied, rows.Err()
}

func (m *Migrator) recordMigration(ctx context.Context, filename string) error {
	query := `
		INSERT INTO schema_migrations (filename)
		VALUES ($1)
		ON CONFLICT (filename) DO NOTHING
	`
	_, err := m.conn.Exec(ctx, query, filename)
	return err
}
