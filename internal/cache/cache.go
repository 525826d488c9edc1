// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cache persists the plugin-metadata snapshot the command tree is
// built from, so constructing the CLI does not require initialising any
// plugin code. The store is a single SQLite database under the axon data
// directory; `axn dev refresh-cache` rebuilds it from the live registry.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/axon-org/axon/internal/registry"
	"github.com/axon-org/axon/internal/types"
	_ "modernc.org/sqlite"
)

const (
	sqliteDriverName = "sqlite"
	dbFileName       = "cache.db"

	defaultBusyTimeout = 5 * time.Second

	schemaVersion = 1
)

var migrations = [...]string{
	`CREATE TABLE IF NOT EXISTS cache_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS plugins (
		name TEXT PRIMARY KEY,
		version TEXT NOT NULL,
		payload BLOB NOT NULL,
		refreshed_at INTEGER NOT NULL
	);`,
}

// Store wraps the SQLite connection holding the cached snapshot.
type Store struct {
	sql  *sql.DB
	path string
}

// Open initialises the cache store under dir with the required pragmas and
// schema.
func Open(ctx context.Context, dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	dbPath := filepath.Join(dir, dbFileName)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", filepath.ToSlash(dbPath), int(defaultBusyTimeout/time.Millisecond))

	conn, err := sql.Open(sqliteDriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	for _, stmt := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=FULL;",
		"PRAGMA foreign_keys=ON;",
	} {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("execute pragma %q: %w", stmt, err)
		}
	}

	for _, stmt := range migrations {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("apply migration: %w", err)
		}
	}

	store := &Store{sql: conn, path: dbPath}
	if err := store.checkSchemaVersion(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return store, nil
}

// Close shuts down the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sql == nil {
		return nil
	}
	return s.sql.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func (s *Store) checkSchemaVersion(ctx context.Context) error {
	var stored string
	err := s.sql.QueryRowContext(ctx,
		`SELECT value FROM cache_meta WHERE key = 'schema_version'`).Scan(&stored)
	switch {
	case err == sql.ErrNoRows:
		_, err = s.sql.ExecContext(ctx,
			`INSERT INTO cache_meta(key, value) VALUES ('schema_version', ?)`,
			fmt.Sprint(schemaVersion))
		return err
	case err != nil:
		return fmt.Errorf("read cache schema version: %w", err)
	}
	if stored != fmt.Sprint(schemaVersion) {
		return fmt.Errorf("cache schema version %s is not supported; run `axn dev reset-cache`", stored)
	}
	return nil
}

// LoadSnapshot reads every cached plugin. An empty cache yields an empty
// snapshot, not an error.
func (s *Store) LoadSnapshot(ctx context.Context) (*registry.Snapshot, error) {
	rows, err := s.sql.QueryContext(ctx, `SELECT name, payload FROM plugins`)
	if err != nil {
		return nil, fmt.Errorf("read plugin cache: %w", err)
	}
	defer rows.Close()

	snap := &registry.Snapshot{Plugins: make(map[string]types.Plugin)}
	for rows.Next() {
		var (
			name    string
			payload []byte
		)
		if err := rows.Scan(&name, &payload); err != nil {
			return nil, fmt.Errorf("scan plugin row: %w", err)
		}
		var plugin types.Plugin
		if err := json.Unmarshal(payload, &plugin); err != nil {
			return nil, fmt.Errorf("decode cached plugin %q: %w", name, err)
		}
		snap.Plugins[name] = plugin
	}
	return snap, rows.Err()
}

// SaveSnapshot replaces the cached metadata with the given snapshot.
func (s *Store) SaveSnapshot(ctx context.Context, snap *registry.Snapshot) error {
	tx, err := s.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cache refresh: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM plugins`); err != nil {
		return fmt.Errorf("clear plugin cache: %w", err)
	}

	now := time.Now().Unix()
	for name, plugin := range snap.Plugins {
		payload, err := json.Marshal(plugin)
		if err != nil {
			return fmt.Errorf("encode plugin %q: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO plugins(name, version, payload, refreshed_at) VALUES (?, ?, ?, ?)`,
			name, plugin.Version, payload, now); err != nil {
			return fmt.Errorf("store plugin %q: %w", name, err)
		}
	}

	return tx.Commit()
}

// Reset deletes the cache database so the next run rebuilds it.
func Reset(dir string) error {
	path := filepath.Join(dir, dbFileName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove cache: %w", err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(path + suffix); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove cache: %w", err)
		}
	}
	return nil
}
