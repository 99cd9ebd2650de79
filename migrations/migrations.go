// Package migrations embeds the SQL schema and applies it in file order.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.up.sql
var files embed.FS

// Pending lists embedded migration names not yet in applied, in order.
func Pending(applied map[string]bool) ([]string, error) {
	names, err := fs.Glob(files, "*.up.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	pending := make([]string, 0, len(names))
	for _, n := range names {
		version := strings.TrimSuffix(n, ".up.sql")
		if !applied[version] {
			pending = append(pending, n)
		}
	}
	return pending, nil
}

// Apply runs every pending migration, each in its own transaction, and
// returns the versions applied.
func Apply(ctx context.Context, db *sql.DB) ([]string, error) {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return nil, err
	}
	pending, err := Pending(applied)
	if err != nil {
		return nil, err
	}

	done := make([]string, 0, len(pending))
	for _, name := range pending {
		body, err := files.ReadFile(name)
		if err != nil {
			return done, err
		}
		version := strings.TrimSuffix(name, ".up.sql")
		if err := applyOne(ctx, db, version, string(body)); err != nil {
			return done, fmt.Errorf("migration %s: %w", version, err)
		}
		done = append(done, version)
	}
	return done, nil
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

func applyOne(ctx context.Context, db *sql.DB, version, body string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, body); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
		return err
	}
	return tx.Commit()
}
