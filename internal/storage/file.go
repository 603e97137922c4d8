package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/lehigh-university-libraries/readinglog/internal/models"
)

// ErrLocked is returned when another process holds the library file
var ErrLocked = errors.New("library file is in use by another process")

// Load reads every book in path. A missing file yields an empty library.
func Load(path string) ([]*models.Book, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("Library file not found, starting empty", "path", path)
		return []*models.Book{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open library file: %w", err)
	}
	defer file.Close()

	books, err := Decode(file)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded library", "path", path, "books", len(books))
	if books == nil {
		books = []*models.Book{}
	}
	return books, nil
}

// Save overwrites path with the given books. The previous content stays
// intact if any step fails, and an existing file keeps its permissions.
func Save(path string, books []*models.Book) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := Encode(tmp, books); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync library file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close library file: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("failed to set library file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace library file: %w", err)
	}

	slog.Debug("Saved library", "path", path, "books", len(books))
	return nil
}

// FileLock guards a library file against a second writer process
type FileLock struct {
	lock *flock.Flock
}

// Lock takes an advisory lock on path. It does not wait.
func Lock(path string) (*FileLock, error) {
	lockPath := path + ".lock"
	l := flock.New(lockPath)
	ok, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}
	return &FileLock{lock: l}, nil
}

// Unlock releases the lock
func (l *FileLock) Unlock() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
