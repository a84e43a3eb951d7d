package datastore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/holmberd/go-recordstore/keyfactory"
)

const tempPattern = ".put-*.tmp" // os.CreateTemp creates files with mode 0600.

// FileClient stores each artifact as a regular file directly under its root directory.
type FileClient struct {
	root   string
	closed atomic.Bool
}

// NewFileClient creates a client for an existing root directory.
func NewFileClient(root string) (Client, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("datastore: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("datastore: root '%s' is not a directory", root)
	}
	return &FileClient{root: root}, nil
}

// Root returns the directory the client writes into.
func (c *FileClient) Root() string {
	return c.root
}

// Path returns the file path of the key.
func (c *FileClient) Path(key *keyfactory.Key) string {
	return filepath.Join(c.root, key.Name())
}

// Put atomically writes the data to the key's file.
// The data is written to a temporary file in the root, synced and renamed over the target.
func (c *FileClient) Put(key *keyfactory.Key, data []byte) error {
	if key == nil {
		return nil // No-op for empty key.
	}
	if c.closed.Load() {
		return ErrClosed
	}
	tmp, err := os.CreateTemp(c.root, tempPattern)
	if err != nil {
		return fmt.Errorf("datastore: failed to write key '%s': %w", key, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // No-op once renamed.

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("datastore: failed to write key '%s': %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("datastore: failed to sync key '%s': %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("datastore: failed to write key '%s': %w", key, err)
	}
	if err := os.Rename(tmpName, c.Path(key)); err != nil {
		return fmt.Errorf("datastore: failed to write key '%s': %w", key, err)
	}
	return nil
}

func (c *FileClient) Get(key *keyfactory.Key) ([]byte, error) {
	if key == nil {
		return nil, nil // No-op for empty key.
	}
	if c.closed.Load() {
		return nil, ErrClosed
	}
	data, err := os.ReadFile(c.Path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("datastore: failed to read key '%s': %w", key, err)
	}
	return data, nil
}

func (c *FileClient) Exists(key *keyfactory.Key) (bool, error) {
	if key == nil {
		return false, nil // No-op for empty key.
	}
	if c.closed.Load() {
		return false, ErrClosed
	}
	info, err := os.Stat(c.Path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("datastore: %w", err)
	}
	return info.Mode().IsRegular(), nil
}

func (c *FileClient) Delete(keys ...*keyfactory.Key) error {
	if c.closed.Load() {
		return ErrClosed
	}
	var errs []error
	for _, key := range keys {
		if key == nil {
			continue
		}
		if err := os.Remove(c.Path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("datastore: failed to delete keys: %w", err)
	}
	return nil
}

// Close marks the client closed. Files are left in place.
func (c *FileClient) Close() error {
	c.closed.Store(true)
	return nil
}
