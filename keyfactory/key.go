// Package keyfactory provides utilities for constructing deterministic artifact keys.
//
// An artifact key is the file name under which a single encoded record is stored,
// e.g. "Order-<customerId>-<orderId>-order.avro".
package keyfactory

import (
	"fmt"
	"slices"
	"strings"

	"github.com/holmberd/go-recordstore/keyfactory/internal/filekey"
)

const (
	FragmentDelimiter = filekey.FragmentDelimiter // Separator between name fragments.
	Extension         = filekey.Extension         // Suffix of every artifact name.
)

// ValidateKeyFragment validates that the provided string is a valid name fragment.
func ValidateKeyFragment(f string) error {
	if err := filekey.ValidateFragment(f); err != nil {
		return fmt.Errorf("keyfactory: %w", err)
	}
	return nil
}

// Key represents a validated artifact key.
type Key struct {
	name string // Artifact file name.
}

// NewKey returns a key for an existing artifact name.
func NewKey(name string) (*Key, error) {
	if err := filekey.Validate(name); err != nil {
		return nil, fmt.Errorf("keyfactory: %w", err)
	}
	return &Key{name: name}, nil
}

// Name returns the artifact file name.
func (k *Key) Name() string {
	return k.name
}

// String returns a string representation of the key.
func (k *Key) String() string {
	if k == nil {
		return ""
	}
	return k.name
}

// Equal returns whether two keys name the same artifact.
func (k *Key) Equal(o *Key) bool {
	if k == nil || o == nil {
		return k == o
	}
	return k.name == o.name
}

// KeyBuilder builds an artifact key.
//   - Kind must be set.
//
// Key structure: "<Kind>-<fragment1>-...-<fragmentN>-<kind>.avro"
type KeyBuilder struct {
	kind      RecordKind
	fragments []string
}

func NewKeyBuilder() *KeyBuilder {
	return &KeyBuilder{}
}

func (b *KeyBuilder) Clone() *KeyBuilder {
	return &KeyBuilder{
		kind:      b.kind,
		fragments: slices.Clone(b.fragments),
	}
}

func (b *KeyBuilder) WithKind(kind RecordKind) {
	b.kind = kind
}

// WithFragments appends identifying fragments in order.
func (b *KeyBuilder) WithFragments(fragments ...string) {
	b.fragments = append(b.fragments, fragments...)
}

func (b *KeyBuilder) Reset() {
	b.kind = ""
	b.fragments = nil
}

// Build compiles the new key.
func (b *KeyBuilder) Build() (*Key, error) {
	return b.build()
}

// BuildAndReset compiles the new key and resets the builder state.
func (b *KeyBuilder) BuildAndReset() (*Key, error) {
	defer b.Reset()
	return b.build()
}

func (b *KeyBuilder) build() (*Key, error) {
	if err := validateRecordKind(b.kind); err != nil {
		return nil, err
	}
	if len(b.fragments) == 0 {
		return nil, fmt.Errorf("keyfactory: at least one key fragment is required")
	}
	for _, f := range b.fragments {
		if f == "" {
			return nil, fmt.Errorf("keyfactory: key fragment must not be empty")
		}
	}
	parts := make([]string, 0, len(b.fragments)+2)
	parts = append(parts, string(b.kind))
	parts = append(parts, b.fragments...)
	parts = append(parts, strings.ToLower(string(b.kind)))
	name, err := filekey.New(parts...)
	if err != nil {
		return nil, fmt.Errorf("keyfactory: %w", err)
	}
	return &Key{name: name}, nil
}
