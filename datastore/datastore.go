// The datastore package provides byte sinks that store encoded artifacts under their artifact key.
package datastore

import (
	"errors"

	"github.com/holmberd/go-recordstore/keyfactory"
)

var (
	ErrKeyNotFound = errors.New("datastore: key not found")
	ErrClosed      = errors.New("datastore: client is closed")
)

// Client represents a datastore client storing one byte sequence per artifact key.
type Client interface {
	// Put writes the data under the key. If the key exists its data is replaced.
	Put(key *keyfactory.Key, data []byte) error

	// Get returns the data stored under the key.
	// ErrKeyNotFound is returned if the key is not found in the store.
	Get(key *keyfactory.Key) ([]byte, error)

	// Exists checks whether the key exists in the store.
	Exists(key *keyfactory.Key) (bool, error)

	// Delete deletes the provided keys. Missing keys are ignored.
	Delete(keys ...*keyfactory.Key) error

	Close() error
}

// Factory opens a client rooted at a store directory.
type Factory func(root string) (Client, error)
