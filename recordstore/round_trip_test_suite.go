package recordstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/holmberd/go-recordstore/datastore"
	"github.com/holmberd/go-recordstore/encoder"
	"github.com/holmberd/go-recordstore/keyfactory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RoundTripTestSuite provides a full round-trip test suite for any record stored by a Store.
type RoundTripTestSuite[T Record, PT SerializableRecord[T]] struct {
	Name string

	// FileBacked reports whether artifacts are stored as files directly under the root,
	// which enables the file path assertions.
	FileBacked bool

	// SetupStore opens a new store with its own root and registers its teardown.
	SetupStore      func(t *testing.T) *Store[T, PT]
	GenerateRecords func(t *testing.T, num int) []T

	// AssertFields asserts field-wise equality of a decoded record with the original.
	AssertFields func(t *testing.T, want PT, got PT)
}

func NewRoundTripTestSuite[T Record, PT SerializableRecord[T]](
	name string,
	fileBacked bool,
	opts []Option,
	generateRecords func(t *testing.T, num int) []T,
	assertFields func(t *testing.T, want PT, got PT),
) *RoundTripTestSuite[T, PT] {
	return &RoundTripTestSuite[T, PT]{
		Name:       name,
		FileBacked: fileBacked,
		SetupStore: func(t *testing.T) *Store[T, PT] {
			store := New[T, PT](opts...)
			require.NoError(t, store.Open(), "should open store")

			// Each store owns a fresh root, released on every exit path.
			t.Cleanup(func() {
				if err := store.Teardown(); err != nil {
					t.Fatalf("failed to tear down store: %v", err)
				}
			})
			return store
		},
		GenerateRecords: generateRecords,
		AssertFields:    assertFields,
	}
}

func (s *RoundTripTestSuite[T, PT]) Run(t *testing.T) {
	t.Run(fmt.Sprintf("Test %s GenerateRecords", s.Name), s.TestGenerateRecords)
	t.Run(fmt.Sprintf("Test %s Serialize", s.Name), s.TestSerialize)
	t.Run(fmt.Sprintf("Test %s Deserialize", s.Name), s.TestDeserialize)
	t.Run(fmt.Sprintf("Test %s DistinctRecords", s.Name), s.TestDistinctRecords)
	t.Run(fmt.Sprintf("Test %s Remove", s.Name), s.TestRemove)
	t.Run(fmt.Sprintf("Test %s Teardown", s.Name), s.TestTeardown)
	t.Run(fmt.Sprintf("Test %s MissingRecord", s.Name), s.TestMissingRecord)
	t.Run(fmt.Sprintf("Test %s Events", s.Name), s.TestEvents)
}

func (s *RoundTripTestSuite[T, PT]) TestGenerateRecords(t *testing.T) {
	numRecords := 10
	records := s.GenerateRecords(t, numRecords)
	assert.Len(t, records, numRecords, "should generate the correct number of records")

	names := make(map[string]struct{}, numRecords)
	for _, r := range records {
		name, err := PT(&r).ArtifactName()
		require.NoError(t, err)
		names[name] = struct{}{}
	}
	assert.Len(t, names, numRecords, "should generate records with distinct artifact names")
}

func (s *RoundTripTestSuite[T, PT]) TestSerialize(t *testing.T) {
	store := s.SetupStore(t)
	record := s.GenerateRecords(t, 1)[0]
	expectedName, err := PT(&record).ArtifactName()
	require.NoError(t, err)

	name, err := store.Save(record)
	require.NoError(t, err, "should not error when saving a record")
	assert.Equal(t, expectedName, name, "should save under the deterministic artifact name")

	exists, err := store.Exists(name)
	assert.NoError(t, err)
	assert.True(t, exists, "should find the artifact after saving")
	if s.FileBacked {
		assert.FileExists(t, filepath.Join(store.Root(), expectedName))
	}

	raw, err := store.ReadRaw(name)
	require.NoError(t, err)
	text := string(raw)
	assert.Contains(t, text, PT(&record).Schema(), "should embed the schema descriptor")
	t.Log(text)
}

func (s *RoundTripTestSuite[T, PT]) TestDeserialize(t *testing.T) {
	store := s.SetupStore(t)
	record := s.GenerateRecords(t, 1)[0]
	original := PT(&record)

	name, err := store.Save(record)
	require.NoError(t, err)

	decoded, err := store.Fetch(name)
	require.NoError(t, err, "should not error when fetching a record")
	assert.NotSame(t, original, decoded, "should decode into a distinct instance")
	assert.Equal(t, original, decoded, "should decode an equal record")
	if s.AssertFields != nil {
		s.AssertFields(t, original, decoded)
	}

	t.Run("Fetch the same artifact twice", func(t *testing.T) {
		again, err := store.Fetch(name)
		require.NoError(t, err)
		assert.NotSame(t, decoded, again)
		assert.Equal(t, decoded, again)
	})
}

func (s *RoundTripTestSuite[T, PT]) TestDistinctRecords(t *testing.T) {
	store := s.SetupStore(t)
	records := s.GenerateRecords(t, 2)

	names := make([]string, len(records))
	for i, r := range records {
		name, err := store.Save(r)
		require.NoError(t, err)
		names[i] = name
	}
	assert.NotEqual(t, names[0], names[1], "should save distinct artifacts")

	for i, name := range names {
		decoded, err := store.Fetch(name)
		require.NoError(t, err)
		assert.Equal(t, PT(&records[i]), decoded, "should fetch the corresponding record")
	}

	if s.FileBacked {
		entries, err := os.ReadDir(store.Root())
		require.NoError(t, err)
		var artifacts []string
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), keyfactory.Extension) {
				artifacts = append(artifacts, e.Name())
			}
		}
		assert.ElementsMatch(t, names, artifacts, "should produce exactly one file per record")
	}
}

func (s *RoundTripTestSuite[T, PT]) TestRemove(t *testing.T) {
	store := s.SetupStore(t)
	record := s.GenerateRecords(t, 1)[0]
	name, err := store.Save(record)
	require.NoError(t, err)

	require.NoError(t, store.Remove(name))
	exists, err := store.Exists(name)
	assert.NoError(t, err)
	assert.False(t, exists, "should not find the artifact after removal")

	_, err = store.Fetch(name)
	assert.ErrorIs(t, err, datastore.ErrKeyNotFound)
	assert.NoError(t, store.Remove(name), "should ignore a missing artifact")
}

func (s *RoundTripTestSuite[T, PT]) TestTeardown(t *testing.T) {
	store := s.SetupStore(t)
	record := s.GenerateRecords(t, 1)[0]
	name, err := store.Save(record)
	require.NoError(t, err)
	root := store.Root()
	require.DirExists(t, root)

	require.NoError(t, store.Teardown(), "should tear down the store")
	assert.NoDirExists(t, root, "should remove the root directory")
	assert.Equal(t, StateClosed, store.State())

	assert.NoError(t, store.Teardown(), "should be a no-op on a closed store")

	_, err = store.Save(record)
	assert.ErrorIs(t, err, ErrNotOpen)
	_, err = store.Fetch(name)
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.ErrorIs(t, store.Open(), ErrClosed, "should not reopen a closed store")
}

func (s *RoundTripTestSuite[T, PT]) TestMissingRecord(t *testing.T) {
	record := s.GenerateRecords(t, 1)[0]
	name, err := PT(&record).ArtifactName()
	require.NoError(t, err)
	key, err := keyfactory.NewKey(name)
	require.NoError(t, err)

	t.Run("Container with zero records", func(t *testing.T) {
		store := s.SetupStore(t)
		empty, err := encoder.EmptyContainer(PT(&record).Schema())
		require.NoError(t, err)
		require.NoError(t, store.client.Put(key, empty))

		_, err = store.Fetch(name)
		assert.ErrorIs(t, err, encoder.ErrMissingRecord)
	})

	t.Run("Empty artifact", func(t *testing.T) {
		store := s.SetupStore(t)
		require.NoError(t, store.client.Put(key, []byte{}))

		_, err := store.Fetch(name)
		assert.ErrorIs(t, err, encoder.ErrMissingRecord)
	})

	t.Run("Corrupt artifact", func(t *testing.T) {
		store := s.SetupStore(t)
		require.NoError(t, store.client.Put(key, []byte("not a container")))

		_, err := store.Fetch(name)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, encoder.ErrMissingRecord)
	})

	t.Run("Missing artifact", func(t *testing.T) {
		store := s.SetupStore(t)
		_, err := store.Fetch(name)
		assert.ErrorIs(t, err, datastore.ErrKeyNotFound)
	})
}

func (s *RoundTripTestSuite[T, PT]) TestEvents(t *testing.T) {
	store := s.SetupStore(t)
	record := s.GenerateRecords(t, 1)[0]

	var received []Event
	listener := func(e Event) { received = append(received, e) }
	store.OnSaved().AddListener(listener)
	store.OnFetched().AddListener(listener)
	store.OnRemoved().AddListener(listener)
	store.OnTornDown().AddListener(listener)

	name, err := store.Save(record)
	require.NoError(t, err)
	_, err = store.Fetch(name)
	require.NoError(t, err)
	require.NoError(t, store.Remove(name))
	root := store.Root()
	require.NoError(t, store.Teardown())

	assert.Equal(t, []Event{
		{Kind: RecordSaved, Name: name, Root: root},
		{Kind: RecordFetched, Name: name, Root: root},
		{Kind: RecordRemoved, Name: name, Root: root},
		{Kind: StoreTornDown, Root: root},
	}, received)
}
