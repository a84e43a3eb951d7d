package datastore

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/cockroachdb/pebble"
	"github.com/holmberd/go-recordstore/keyfactory"
)

// PebbleDirName is the directory under the store root holding the pebble database.
const PebbleDirName = "pebble"

// PebbleClient stores artifacts in an embedded pebble database.
// Writes are synced before Put returns.
type PebbleClient struct {
	db     *pebble.DB
	dir    string
	closed atomic.Bool
}

// OpenPebbleClient opens (or creates) a pebble database under root.
func OpenPebbleClient(root string) (Client, error) {
	dir := filepath.Join(root, PebbleDirName)
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("datastore: failed to open pebble database '%s': %w", dir, err)
	}
	return &PebbleClient{db: db, dir: dir}, nil
}

// Dir returns the database directory.
func (c *PebbleClient) Dir() string {
	return c.dir
}

func (c *PebbleClient) Put(key *keyfactory.Key, data []byte) error {
	if key == nil {
		return nil // No-op for empty key.
	}
	if c.closed.Load() {
		return ErrClosed
	}
	if err := c.db.Set([]byte(key.Name()), data, pebble.Sync); err != nil {
		return fmt.Errorf("datastore: failed to write key '%s': %w", key, err)
	}
	return nil
}

func (c *PebbleClient) Get(key *keyfactory.Key) ([]byte, error) {
	if key == nil {
		return nil, nil // No-op for empty key.
	}
	if c.closed.Load() {
		return nil, ErrClosed
	}
	value, closer, err := c.db.Get([]byte(key.Name()))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("datastore: failed to read key '%s': %w", key, err)
	}
	defer closer.Close()

	// The value is only valid until the closer is closed.
	data := make([]byte, len(value))
	copy(data, value)
	return data, nil
}

func (c *PebbleClient) Exists(key *keyfactory.Key) (bool, error) {
	if key == nil {
		return false, nil // No-op for empty key.
	}
	if c.closed.Load() {
		return false, ErrClosed
	}
	_, closer, err := c.db.Get([]byte(key.Name()))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("datastore: %w", err)
	}
	closer.Close()
	return true, nil
}

func (c *PebbleClient) Delete(keys ...*keyfactory.Key) error {
	if len(keys) == 0 {
		return nil // No-op for empty keys.
	}
	if c.closed.Load() {
		return ErrClosed
	}
	batch := c.db.NewBatch()
	defer batch.Close()
	for _, key := range keys {
		if key == nil {
			continue
		}
		if err := batch.Delete([]byte(key.Name()), nil); err != nil {
			return fmt.Errorf("datastore: failed to delete key '%s': %w", key, err)
		}
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("datastore: failed to delete keys: %w", err)
	}
	return nil
}

// Close closes the database. Calling Close more than once is a no-op.
func (c *PebbleClient) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("datastore: failed to close pebble database: %w", err)
	}
	return nil
}
