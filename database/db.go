package database

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// DB handles all database operations.
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes tables.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	if err = db.Ping(); err != nil {
		return nil, errors.Wrap(err, "ping database")
	}

	if err = createTables(db); err != nil {
		return nil, errors.Wrap(err, "create tables")
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// createTables creates the necessary tables if they don't exist.
func createTables(db *sql.DB) error {
	// Sessions are stored as JSON documents; scalar columns exist only for
	// lookups and expiry.
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			owner_id INTEGER NOT NULL,
			document TEXT NOT NULL,
			expires_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Secondary index: each owner's latest session.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS owner_index (
			owner_id INTEGER PRIMARY KEY,
			session_id TEXT NOT NULL
		)
	`)
	return err
}
