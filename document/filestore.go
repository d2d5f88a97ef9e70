package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"isoflow/diagram"
)

// ErrLocked is returned when another process holds the document lock.
var ErrLocked = errors.New("document is locked by another process")

const (
	lockTimeout   = 3 * time.Second
	retryInterval = 100 * time.Millisecond
)

// FileStore loads and saves one document file. Reads and writes hold an
// exclusive lock on path+".lock"; writes go through a temp file and rename.
type FileStore struct {
	path   string
	format Format
	lock   *flock.Flock
}

// NewFileStore returns a store for path, encoded by its extension.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:   path,
		format: FormatForPath(path),
		lock:   flock.New(path + ".lock"),
	}
}

// Path is the document file.
func (s *FileStore) Path() string {
	return s.path
}

// Exists reports whether the document file is present.
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads and validates the document.
func (s *FileStore) Load(ctx context.Context) (diagram.Model, error) {
	unlock, err := s.acquire(ctx)
	if err != nil {
		return diagram.Model{}, err
	}
	defer unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return diagram.Model{}, fmt.Errorf("read %s: %w", s.path, err)
	}
	m, err := DecodeBytes(data, s.format)
	if err != nil {
		return diagram.Model{}, fmt.Errorf("%s: %w", s.path, err)
	}
	if err := Validate(m); err != nil {
		return diagram.Model{}, fmt.Errorf("%s is not a valid document: %w", s.path, err)
	}
	return m, nil
}

// Save writes m atomically.
func (s *FileStore) Save(ctx context.Context, m diagram.Model) error {
	data, err := EncodeBytes(m, s.format)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	unlock, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func (s *FileStore) acquire(ctx context.Context) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := s.lock.TryLockContext(ctx, retryInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}
	return func() { _ = s.lock.Unlock() }, nil
}
