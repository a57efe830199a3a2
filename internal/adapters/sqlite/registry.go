// Package sqlite stores named connection profiles in a SQLite database.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"docdrift/internal/application"
	"docdrift/internal/domain"
	"docdrift/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Registry implements ports.ConnectionRegistry using SQLite. When a
// credential store is set, passwords are kept there instead of in the table.
type Registry struct {
	db    *sql.DB
	creds ports.CredentialStore
}

// Ensure Registry implements ConnectionRegistry
var _ ports.ConnectionRegistry = (*Registry)(nil)

// Open opens (and creates if needed) the registry at path. creds may be nil.
func Open(path string, creds ports.CredentialStore) (*Registry, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create registry directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS connections (
			name TEXT PRIMARY KEY,
			url TEXT NOT NULL,
			db_name TEXT NOT NULL,
			username TEXT NOT NULL DEFAULT '',
			password TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return &Registry{db: db, creds: creds}, nil
}

// Close closes the database connection
func (r *Registry) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Create stores a new connection. A taken name is a ConnectionExistsError.
func (r *Registry) Create(conn domain.Connection) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow(`SELECT 1 FROM connections WHERE name = ?`, conn.Name).Scan(&exists)
	if err == nil {
		return &application.ConnectionExistsError{Name: conn.Name}
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	stored := conn.Password
	if r.creds != nil {
		stored = ""
	}
	if _, err := tx.Exec(`
		INSERT INTO connections (name, url, db_name, username, password)
		VALUES (?, ?, ?, ?, ?)
	`, conn.Name, conn.URL, conn.Database, conn.Username, stored); err != nil {
		return fmt.Errorf("failed to insert connection: %w", err)
	}

	if r.creds != nil && conn.Password != "" {
		if err := r.creds.Set(conn.Name, conn.Password); err != nil {
			return fmt.Errorf("failed to store password: %w", err)
		}
	}
	return tx.Commit()
}

// Get returns a connection by name, password included
func (r *Registry) Get(name string) (domain.Connection, error) {
	var conn domain.Connection
	err := r.db.QueryRow(`
		SELECT name, url, db_name, username, password
		FROM connections WHERE name = ?
	`, name).Scan(&conn.Name, &conn.URL, &conn.Database, &conn.Username, &conn.Password)

	if err == sql.ErrNoRows {
		return domain.Connection{}, &application.ConnectionNotFoundError{Name: name}
	}
	if err != nil {
		return domain.Connection{}, err
	}

	if r.creds != nil && conn.Password == "" {
		password, err := r.creds.Get(name)
		if err != nil {
			return domain.Connection{}, fmt.Errorf("failed to read password: %w", err)
		}
		conn.Password = password
	}
	return conn, nil
}

// List returns every connection ordered by name, without passwords
func (r *Registry) List() ([]domain.Connection, error) {
	rows, err := r.db.Query(`SELECT name, url, db_name, username FROM connections ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conns []domain.Connection
	for rows.Next() {
		var c domain.Connection
		if err := rows.Scan(&c.Name, &c.URL, &c.Database, &c.Username); err != nil {
			return nil, err
		}
		conns = append(conns, c)
	}
	return conns, rows.Err()
}

// Remove deletes a connection and its stored password
func (r *Registry) Remove(name string) error {
	res, err := r.db.Exec(`DELETE FROM connections WHERE name = ?`, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &application.ConnectionNotFoundError{Name: name}
	}
	if r.creds != nil {
		if err := r.creds.Delete(name); err != nil {
			return fmt.Errorf("failed to delete password: %w", err)
		}
	}
	return nil
}
