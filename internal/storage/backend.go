package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/misterclayt0n/weekplan/internal/utils"
)

// Backend persists the state document as an opaque blob.
type Backend interface {
	// Load returns the stored document, or nil when nothing was saved yet.
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Close() error
}

// Open picks a backend from a DSN:
//
//	memory://                        in-process only
//	file://path, path.json           JSON file
//	sqlite://path, path.db           local SQLite database
//	libsql://, https://, wss://      remote libsql (Turso) database
func Open(dsn string) (Backend, error) {
	switch {
	case dsn == "" || strings.HasPrefix(dsn, "memory://"):
		return NewMemoryBackend(), nil
	case strings.HasPrefix(dsn, "file://"):
		return NewFileBackend(strings.TrimPrefix(dsn, "file://"))
	case strings.HasPrefix(dsn, "sqlite://"):
		return NewSQLiteBackend(strings.TrimPrefix(dsn, "sqlite://"))
	case strings.HasPrefix(dsn, "libsql://"), strings.HasPrefix(dsn, "https://"),
		strings.HasPrefix(dsn, "http://"), strings.HasPrefix(dsn, "wss://"), strings.HasPrefix(dsn, "ws://"):
		return NewLibSQLBackend(dsn)
	case strings.HasSuffix(dsn, ".json"):
		return NewFileBackend(dsn)
	case strings.HasSuffix(dsn, ".db"), strings.HasSuffix(dsn, ".sqlite"):
		return NewSQLiteBackend(dsn)
	}
	return nil, fmt.Errorf("unsupported storage dsn %q", dsn)
}

type MemoryBackend struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Load(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemoryBackend) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *MemoryBackend) Close() error { return nil }

// FileBackend keeps the document in a single JSON file, replaced atomically.
type FileBackend struct {
	path string
}

func NewFileBackend(path string) (*FileBackend, error) {
	path, err := utils.ExpandHome(path)
	if err != nil {
		return nil, fmt.Errorf("Failed to resolve %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("Failed to create directory for %s: %w", path, err)
	}
	return &FileBackend{path: path}, nil
}

func (f *FileBackend) Path() string { return f.path }

func (f *FileBackend) Load(context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Failed to read %s: %w", f.path, err)
	}
	return data, nil
}

func (f *FileBackend) Save(_ context.Context, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("Failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("Failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("Failed to sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("Failed to replace %s: %w", f.path, err)
	}
	return nil
}

func (f *FileBackend) Close() error { return nil }
