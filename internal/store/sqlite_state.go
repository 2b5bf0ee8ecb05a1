package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteKV keeps the record in a key-value table of a workspace SQLite file.
//
// If the table has no row for Key but a legacy JSON file exists, the file is
// imported once on the first Load.
type SQLiteKV struct {
	Path           string
	LegacyJSONPath string
	Key            string
}

func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the TUI keep reading while a CLI invocation writes;
	// busy_timeout avoids "database is locked" between the two.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			ts_unixms INTEGER NOT NULL,
			type TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			year INTEGER NOT NULL,
			payload_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_entity ON events(entity_id, ts_unixms);`,
		`CREATE INDEX IF NOT EXISTS idx_events_ts ON events(ts_unixms);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (s SQLiteKV) Load(ctx context.Context) ([]byte, bool, error) {
	db, err := openSQLite(ctx, s.Path)
	if err != nil {
		return nil, false, err
	}
	defer db.Close()

	raw, ok, err := readKV(ctx, db, s.Key)
	if err != nil || ok {
		return raw, ok, err
	}

	// One-time import from the JSON file backend if present.
	if s.LegacyJSONPath == "" {
		return nil, false, nil
	}
	legacy, ok, err := FileKV{Path: s.LegacyJSONPath}.Load(ctx)
	if err != nil || !ok {
		return nil, false, err
	}
	if err := writeKV(ctx, db, s.Key, legacy); err != nil {
		return nil, false, err
	}
	return legacy, true, nil
}

func (s SQLiteKV) Save(ctx context.Context, raw []byte) error {
	db, err := openSQLite(ctx, s.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	return writeKV(ctx, db, s.Key, raw)
}

func readKV(ctx context.Context, db *sql.DB, key string) ([]byte, bool, error) {
	var v string
	err := db.QueryRowContext(ctx, `SELECT v FROM kv WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if isNullOrEmpty([]byte(v)) {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

func writeKV(ctx context.Context, db *sql.DB, key string, raw []byte) error {
	_, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO kv(k, v, updated_at_unixms) VALUES(?, ?, ?)`,
		key, string(raw), time.Now().UTC().UnixMilli())
	return err
}
