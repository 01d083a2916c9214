package storage

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

//go:embed migrations
var migrationsFS embed.FS

func (db *DB) ensureMigrationsTable(ctx context.Context) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}
	return nil
}

func (db *DB) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	query, args, err := db.builder.Select("COUNT(*)").From("schema_migrations").
		Where("version = ?", version).ToSql()
	if err != nil {
		return false, err
	}
	var n int
	if err := db.QueryRowxContext(ctx, query, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Migrate applies pending embedded *.up.sql files for the dialect in lexical order
// and returns the versions it applied.
func (db *DB) Migrate(ctx context.Context) ([]string, error) {
	if err := db.ensureMigrationsTable(ctx); err != nil {
		return nil, err
	}

	dir := path.Join("migrations", db.dialect)
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations for %s: %w", db.dialect, err)
	}

	var upFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	var applied []string
	for _, file := range upFiles {
		version := strings.SplitN(file, "_", 2)[0]
		done, err := db.isMigrationApplied(ctx, version)
		if err != nil {
			return applied, fmt.Errorf("check migration %s: %w", version, err)
		}
		if done {
			continue
		}

		content, err := fs.ReadFile(migrationsFS, path.Join(dir, file))
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", file, err)
		}
		if err := db.applyMigration(ctx, version, string(content)); err != nil {
			return applied, fmt.Errorf("apply migration %s: %w", file, err)
		}
		applied = append(applied, version)
	}

	return applied, nil
}

func (db *DB) applyMigration(ctx context.Context, version, script string) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return err
	}

	query, args, err := db.builder.Insert("schema_migrations").
		Columns("version", "applied_at").
		Values(version, time.Now().UTC()).ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark applied: %w", err)
	}

	return tx.Commit()
}
