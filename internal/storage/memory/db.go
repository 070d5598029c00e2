package memory

import (
	"context"
	"sync"
)

// DB is an in-memory slot store. It backs tests and any run that should not
// touch disk; it satisfies the same contract as the file and redis backends.
type DB struct {
	mu    sync.Mutex
	slots map[string]string
}

func New() *DB {
	return &DB{
		slots: make(map[string]string),
	}
}

func (db *DB) Get(_ context.Context, key string) (string, bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	val, ok := db.slots[key]

	return val, ok, nil
}

func (db *DB) Set(_ context.Context, key, value string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.slots[key] = value

	return nil
}
