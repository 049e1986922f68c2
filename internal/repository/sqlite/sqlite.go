// Package sqlite implements the repository interfaces on an embedded SQLite
// database (modernc.org/sqlite, the pure-Go driver — no cgo, works wherever
// Go works; ":memory:" gives tests a throwaway database).
//
// Aggregate statistics (avg_rating, ratings_count, total_views,
// total_copies) live in the view_prompt_analytics SQL view, recomputed by
// the store from the prompt_ratings and prompt_views tables on every read.
// The application only ever selects from it — prompt reads LEFT JOIN the
// view to fill the derived columns, and nothing here writes them.
package sqlite

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides the repository methods.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath (":memory:" for tests), applies the
// pragmas the server relies on, and runs migrations.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads while a write is in progress — required
	// for a web server sharing one database file across requests.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Referential integrity between prompts, ratings, views and profiles.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Always defer this next to New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE ... IF NOT EXISTS keeps this safe to
// run on every start.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS profiles (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			username      TEXT NOT NULL DEFAULT '',
			avatar_url    TEXT NOT NULL DEFAULT '',
			bio           TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL DEFAULT '',
			github_id     INTEGER NOT NULL DEFAULT 0,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_profiles_github_id
			ON profiles(github_id) WHERE github_id != 0;
	`)
	if err != nil {
		return fmt.Errorf("creating profiles table: %w", err)
	}

	// roles and tasks are JSON string arrays; the list filter matches
	// elements exactly via json_each.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS prompts (
			id            TEXT PRIMARY KEY,
			title         TEXT NOT NULL,
			description   TEXT NOT NULL DEFAULT '',
			content       TEXT NOT NULL,
			roles         TEXT NOT NULL DEFAULT '[]',
			tasks         TEXT NOT NULL DEFAULT '[]',
			sample_output TEXT NOT NULL DEFAULT '',
			created_by    TEXT NOT NULL REFERENCES profiles(id),
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_prompts_created_at ON prompts(created_at);
		CREATE INDEX IF NOT EXISTS idx_prompts_created_by ON prompts(created_by);
	`)
	if err != nil {
		return fmt.Errorf("creating prompts table: %w", err)
	}

	// One rating per user per prompt: the UNIQUE constraint is the upsert
	// conflict key. The CHECK backs up the service-level range validation.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS prompt_ratings (
			id         TEXT PRIMARY KEY,
			prompt_id  TEXT NOT NULL REFERENCES prompts(id) ON DELETE CASCADE,
			user_id    TEXT NOT NULL REFERENCES profiles(id),
			rating     INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (prompt_id, user_id)
		);
		CREATE INDEX IF NOT EXISTS idx_prompt_ratings_user ON prompt_ratings(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating prompt_ratings table: %w", err)
	}

	// Copy events are append-only — no uniqueness, copies accumulate.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS prompt_views (
			id         TEXT PRIMARY KEY,
			prompt_id  TEXT NOT NULL REFERENCES prompts(id) ON DELETE CASCADE,
			user_id    TEXT NOT NULL REFERENCES profiles(id),
			copied     INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_prompt_views_user ON prompt_views(user_id);
		CREATE INDEX IF NOT EXISTS idx_prompt_views_prompt ON prompt_views(prompt_id);
	`)
	if err != nil {
		return fmt.Errorf("creating prompt_views table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE VIEW IF NOT EXISTS view_prompt_analytics AS
		SELECT
			p.id AS prompt_id,
			COALESCE((SELECT AVG(r.rating) FROM prompt_ratings r WHERE r.prompt_id = p.id), 0) AS avg_rating,
			(SELECT COUNT(*) FROM prompt_ratings r WHERE r.prompt_id = p.id) AS ratings_count,
			(SELECT COUNT(*) FROM prompt_views v WHERE v.prompt_id = p.id) AS total_views,
			(SELECT COUNT(*) FROM prompt_views v WHERE v.prompt_id = p.id AND v.copied = 1) AS total_copies
		FROM prompts p
	`)
	if err != nil {
		return fmt.Errorf("creating view_prompt_analytics view: %w", err)
	}

	return nil
}
