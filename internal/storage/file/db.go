package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/avstrong/hostelscout/internal/logger"
)

type Config struct {
	L   *logger.Logger
	Dir string
}

// DB keeps each slot in its own file under the state directory. This is the
// default backend: a local, durable, string-keyed store with no server
// behind it.
type DB struct {
	l   *logger.Logger
	dir string
}

func New(conf Config) (*DB, error) {
	if err := os.MkdirAll(conf.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir %q: %w", conf.Dir, err)
	}

	return &DB{
		l:   conf.L,
		dir: conf.Dir,
	}, nil
}

func (db *DB) path(key string) string {
	return filepath.Join(db.dir, key+".json")
}

// Get reads the slot. A missing file is not an error: the slot is absent.
func (db *DB) Get(_ context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(db.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("read slot %q: %w", key, err)
	}

	return string(data), true, nil
}

// Set replaces the slot in full. The value lands in a temp file first and is
// renamed into place, so a crashed write never leaves a half-written slot.
func (db *DB) Set(_ context.Context, key, value string) error {
	tmp := db.path(key) + ".tmp"

	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write slot %q: %w", key, err)
	}

	if err := os.Rename(tmp, db.path(key)); err != nil {
		return fmt.Errorf("commit slot %q: %w", key, err)
	}

	return nil
}
