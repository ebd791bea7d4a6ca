package store

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/rileyhilliard/cfx/internal/errors"
)

// Store is the key-value persistence surface the lists are written to.
// Get reports ok=false when the key has never been written.
type Store interface {
	Get(key string) (data []byte, ok bool, err error)
	Set(key string, data []byte) error
}

const appDirName = "cfx"

// keyPattern keeps keys usable as file names.
var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// FileStore keeps one JSON file per key in a directory.
// Writes use a temp-file-then-rename so readers never see a partial file.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore creates a FileStore rooted at dir. The directory is created on
// the first Set. Pass an empty string to use the default XDG state path.
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = DefaultDir()
	}
	return &FileStore{dir: dir}
}

// Dir returns the directory holding the files.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file path for key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get reads the stored bytes for key.
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.WrapWithCode(err, errors.ErrUnreadable,
			fmt.Sprintf("Couldn't read saved %s", key),
			"The file may have wrong permissions; it will be treated as empty")
	}
	return data, true, nil
}

// Set replaces the stored bytes for key.
func (s *FileStore) Set(key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return unwritable(key, fmt.Errorf("creating state dir: %w", err))
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return unwritable(key, fmt.Errorf("creating temp file: %w", err))
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return unwritable(key, fmt.Errorf("writing temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return unwritable(key, fmt.Errorf("closing temp file: %w", err))
	}
	if err := os.Rename(tmpPath, s.Path(key)); err != nil {
		return unwritable(key, fmt.Errorf("renaming file: %w", err))
	}
	committed = true

	return nil
}

func validateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return errors.New(errors.ErrUnwritable,
			fmt.Sprintf("Invalid storage key %q", key),
			"Keys may only contain letters, digits, dashes and underscores")
	}
	return nil
}

func unwritable(key string, err error) error {
	return errors.WrapWithCode(err, errors.ErrUnwritable,
		fmt.Sprintf("Couldn't save %s", key),
		"Check that the state directory is writable")
}

// DefaultDir returns ~/.local/state/cfx, respecting XDG_STATE_HOME if set.
func DefaultDir() string {
	if base := os.Getenv("XDG_STATE_HOME"); base != "" {
		return filepath.Join(base, appDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".local", "state", appDirName)
}
