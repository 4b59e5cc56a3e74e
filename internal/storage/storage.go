package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"

	"github.com/misterclayt0n/weekplan/internal/utils"
)

// DocumentKey is the row the state document lives in.
const DocumentKey = "state"

// SQLBackend stores the document as one row of a documents table. It serves
// both local SQLite files and remote libsql databases.
type SQLBackend struct {
	DB  *sql.DB
	key string
}

// NewSQLiteBackend opens (creating if needed) a local SQLite database.
func NewSQLiteBackend(path string) (*SQLBackend, error) {
	path, err := utils.ExpandHome(path)
	if err != nil {
		return nil, fmt.Errorf("Failed to resolve %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("Failed to create directory for %s: %w", path, err)
	}
	return newSQLBackend("sqlite", path)
}

// NewLibSQLBackend connects to a libsql server such as Turso. The auth token
// is passed in the URL (?authToken=...).
func NewLibSQLBackend(url string) (*SQLBackend, error) {
	return newSQLBackend("libsql", url)
}

func newSQLBackend(driver, dsn string) (*SQLBackend, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("Failed to open db %s: %w", dsn, err)
	}
	if err := initializeDB(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("Failed to initialize database: %w", err)
	}
	return &SQLBackend{DB: db, key: DocumentKey}, nil
}

func initializeDB(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS documents (
            key TEXT PRIMARY KEY,
            payload TEXT NOT NULL,
            updated_at TEXT NOT NULL
        );
    `)
	return err
}

func (s *SQLBackend) Load(ctx context.Context) ([]byte, error) {
	var payload string
	err := s.DB.QueryRowContext(ctx,
		`SELECT payload FROM documents WHERE key = ?`,
		s.key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Failed to load document: %w", err)
	}
	return []byte(payload), nil
}

func (s *SQLBackend) Save(ctx context.Context, data []byte) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO documents (key, payload, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				payload = excluded.payload,
				updated_at = excluded.updated_at`,
		s.key,
		string(data),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("Failed to save document: %w", err)
	}
	return nil
}

func (s *SQLBackend) Close() error {
	return s.DB.Close()
}
