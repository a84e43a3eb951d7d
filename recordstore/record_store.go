// Package recordstore persists records as self-describing artifact files under a scoped root directory.
package recordstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/holmberd/go-recordstore/datastore"
	"github.com/holmberd/go-recordstore/encoder"
	"github.com/holmberd/go-recordstore/eventemitter"
	"github.com/holmberd/go-recordstore/keyfactory"
	"github.com/sirupsen/logrus"
)

const (
	ErrNotOpen     = StoreError("recordstore: store is not open")
	ErrAlreadyOpen = StoreError("recordstore: store is already open")
	ErrClosed      = StoreError("recordstore: store is closed")
)

type StoreError string

func (e StoreError) Error() string { return string(e) }

// State is the lifecycle state of a store.
type State int

const (
	StateUninitialized State = iota
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateOpen:
		return "Open"
	case StateClosed:
		return "Closed"
	default:
		return fmt.Sprintf("state(%d)", s)
	}
}

type EventKind int

const (
	RecordSaved EventKind = iota
	RecordFetched
	RecordRemoved
	StoreTornDown
)

func (e EventKind) String() string {
	switch e {
	case RecordSaved:
		return "RecordSaved"
	case RecordFetched:
		return "RecordFetched"
	case RecordRemoved:
		return "RecordRemoved"
	case StoreTornDown:
		return "StoreTornDown"
	default:
		return fmt.Sprintf("event(%d)", e)
	}
}

// Event is emitted to store listeners.
type Event struct {
	Kind EventKind
	Name string // Artifact name; empty for StoreTornDown.
	Root string
}

type Record interface {
	ArtifactName() (string, error) // Deterministic artifact file name.
	Schema() string                // Schema descriptor embedded in every artifact.
}

// SerializableRecord represents a record that can be encoded into and decoded from an artifact.
type SerializableRecord[T Record] interface {
	*T // Ensures T is a value type and *T is a pointer.
	Record
	encoder.AvroMarshaler
	encoder.AvroUnmarshaler
}

// Store maps records to artifact files within its root directory.
//
// Lifecycle: Uninitialized -> Open (Open) -> Closed (Teardown).
// Save, Fetch, Exists, Remove and ReadRaw are only valid while the store is open.
// The store is not safe for concurrent use.
type Store[T Record, PT SerializableRecord[T]] struct {
	opts       options
	log        logrus.FieldLogger
	state      State
	root       string
	client     datastore.Client
	onSaved    *eventemitter.Emitter[Event]
	onFetched  *eventemitter.Emitter[Event]
	onRemoved  *eventemitter.Emitter[Event]
	onTornDown *eventemitter.Emitter[Event]
}

// New creates an uninitialized store.
func New[T Record, PT SerializableRecord[T]](opts ...Option) *Store[T, PT] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T, PT]{
		opts:       o,
		log:        o.logger.WithField("component", "recordstore"),
		state:      StateUninitialized,
		onSaved:    eventemitter.New[Event](RecordSaved.String()),
		onFetched:  eventemitter.New[Event](RecordFetched.String()),
		onRemoved:  eventemitter.New[Event](RecordRemoved.String()),
		onTornDown: eventemitter.New[Event](StoreTornDown.String()),
	}
}

// Open creates a fresh root directory and opens the datastore client in it.
func (s *Store[T, PT]) Open() error {
	switch s.state {
	case StateOpen:
		return ErrAlreadyOpen
	case StateClosed:
		return ErrClosed
	}
	root, err := os.MkdirTemp(s.opts.baseDir, s.opts.rootPattern)
	if err != nil {
		return fmt.Errorf("recordstore: failed to create root directory: %w", err)
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("recordstore: %w", err)
	}
	client, err := s.opts.datastore(root)
	if err != nil {
		if rmErr := removeTree(root); rmErr != nil {
			s.log.WithError(rmErr).WithField("root", root).Warn("failed to remove root directory")
		}
		return fmt.Errorf("recordstore: failed to open datastore: %w", err)
	}
	s.root = root
	s.client = client
	s.state = StateOpen
	s.log.WithField("root", root).Debug("opened store")
	return nil
}

func (s *Store[T, PT]) State() State {
	return s.state
}

// Root returns the absolute path of the root directory, or "" before Open.
func (s *Store[T, PT]) Root() string {
	return s.root
}

// Path returns the file path of an artifact name within the root directory.
func (s *Store[T, PT]) Path(fileName string) string {
	return filepath.Join(s.root, fileName)
}

func (s *Store[T, PT]) OnSaved() *eventemitter.Emitter[Event] {
	return s.onSaved
}

func (s *Store[T, PT]) OnFetched() *eventemitter.Emitter[Event] {
	return s.onFetched
}

func (s *Store[T, PT]) OnRemoved() *eventemitter.Emitter[Event] {
	return s.onRemoved
}

func (s *Store[T, PT]) OnTornDown() *eventemitter.Emitter[Event] {
	return s.onTornDown
}

func (s *Store[T, PT]) checkOpen() error {
	if s.state != StateOpen {
		return ErrNotOpen
	}
	return nil
}

// artifactKey validates an artifact name and requires it to name a known record kind.
func (s *Store[T, PT]) artifactKey(fileName string) (*keyfactory.Key, error) {
	key, _, err := keyfactory.ParseKey(fileName)
	if err != nil {
		return nil, fmt.Errorf("recordstore: %w", err)
	}
	return key, nil
}

func (s *Store[T, PT]) emit(emitter *eventemitter.Emitter[Event], event Event) {
	s.log.WithFields(logrus.Fields{
		"event":     emitter.EventName(),
		"name":      event.Name,
		"listeners": emitter.Len(),
	}).Trace("emitting event")
	emitter.Emit(event)
}

// Save encodes the record and writes it to its artifact file, returning the file name.
// If the artifact exists it's replaced.
func (s *Store[T, PT]) Save(record T) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}
	name, err := PT(&record).ArtifactName()
	if err != nil {
		return "", fmt.Errorf("recordstore: %w", err)
	}
	key, err := s.artifactKey(name)
	if err != nil {
		return "", err
	}
	data, err := s.opts.codec.Marshal(PT(&record))
	if err != nil {
		return "", fmt.Errorf("recordstore: failed to encode '%s': %w", name, err)
	}
	if err := s.client.Put(key, data); err != nil {
		return "", fmt.Errorf("recordstore: %w", err)
	}
	s.log.WithFields(logrus.Fields{
		"root":  s.root,
		"name":  name,
		"bytes": len(data),
	}).Debug("saved record")
	s.emit(s.onSaved, Event{Kind: RecordSaved, Name: name, Root: s.root})
	return name, nil
}

// Fetch reads an artifact file and decodes its first record into a new instance.
// datastore.ErrKeyNotFound is returned if the artifact does not exist and
// encoder.ErrMissingRecord if it holds no record.
func (s *Store[T, PT]) Fetch(fileName string) (PT, error) {
	data, err := s.ReadRaw(fileName)
	if err != nil {
		return nil, err
	}
	recordPtr := PT(new(T))
	if err := s.opts.codec.Unmarshal(data, recordPtr); err != nil {
		return nil, fmt.Errorf("recordstore: failed to decode '%s': %w", fileName, err)
	}
	s.log.WithFields(logrus.Fields{
		"root":  s.root,
		"name":  fileName,
		"bytes": len(data),
	}).Debug("fetched record")
	s.emit(s.onFetched, Event{Kind: RecordFetched, Name: fileName, Root: s.root})
	return recordPtr, nil
}

// ReadRaw returns the undecoded bytes of an artifact.
func (s *Store[T, PT]) ReadRaw(fileName string) ([]byte, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	key, err := s.artifactKey(fileName)
	if err != nil {
		return nil, err
	}
	data, err := s.client.Get(key)
	if err != nil {
		return nil, fmt.Errorf("recordstore: %w", err)
	}
	return data, nil
}

// Exists checks whether an artifact exists in the store.
func (s *Store[T, PT]) Exists(fileName string) (bool, error) {
	if err := s.checkOpen(); err != nil {
		return false, err
	}
	key, err := s.artifactKey(fileName)
	if err != nil {
		return false, err
	}
	exists, err := s.client.Exists(key)
	if err != nil {
		return false, fmt.Errorf("recordstore: %w", err)
	}
	return exists, nil
}

// Remove removes an artifact from the store. Removing a missing artifact is a no-op.
func (s *Store[T, PT]) Remove(fileName string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	key, err := s.artifactKey(fileName)
	if err != nil {
		return err
	}
	if err := s.client.Delete(key); err != nil {
		return fmt.Errorf("recordstore: %w", err)
	}
	s.emit(s.onRemoved, Event{Kind: RecordRemoved, Name: fileName, Root: s.root})
	return nil
}
