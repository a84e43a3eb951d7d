package keyfactory

import (
	"fmt"
	"strings"

	"github.com/holmberd/go-recordstore/keyfactory/internal/filekey"
)

// ParseKey parses an artifact name into a Key and reports its record kind.
//
// The identifying fragments are not returned since they may contain the delimiter.
//
// Example:
//
//	key, kind, _ := ParseKey("Order-c1-o1-order.avro")
//	// key  => *Key{name: "Order-c1-o1-order.avro"}, kind => RecordKindOrder
func ParseKey(name string) (*Key, RecordKind, error) {
	key, err := NewKey(name)
	if err != nil {
		return nil, "", fmt.Errorf("keyfactory: failed to parse key '%s': %w", name, err)
	}
	stem := filekey.Stem(name)
	for _, kind := range validRecordKinds() {
		prefix := string(kind) + FragmentDelimiter
		suffix := FragmentDelimiter + strings.ToLower(string(kind))
		if len(stem) > len(prefix)+len(suffix) &&
			strings.HasPrefix(stem, prefix) &&
			strings.HasSuffix(stem, suffix) {
			return key, kind, nil
		}
	}
	return nil, "", fmt.Errorf("keyfactory: key '%s' does not name a known record kind", name)
}
