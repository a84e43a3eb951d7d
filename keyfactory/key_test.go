package keyfactory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyBuilder(t *testing.T) {
	tests := []struct {
		name        string
		kind        RecordKind
		fragments   []string
		expectKey   string
		expectError bool
	}{
		{
			name:      "Order key",
			kind:      RecordKindOrder,
			fragments: []string{"c1", "o1"},
			expectKey: "Order-c1-o1-order.avro",
		},
		{
			name: "Order key with UUID fragments",
			kind: RecordKindOrder,
			fragments: []string{
				"22222222-2222-2222-2222-222222222222",
				"11111111-1111-1111-1111-111111111111",
			},
			expectKey: "Order-22222222-2222-2222-2222-222222222222-11111111-1111-1111-1111-111111111111-order.avro",
		},
		{
			name:        "Missing kind",
			fragments:   []string{"c1", "o1"},
			expectError: true,
		},
		{
			name:        "Unknown kind",
			kind:        RecordKind("Invoice"),
			fragments:   []string{"c1"},
			expectError: true,
		},
		{
			name:        "Missing fragments",
			kind:        RecordKindOrder,
			expectError: true,
		},
		{
			name:        "Empty fragment",
			kind:        RecordKindOrder,
			fragments:   []string{"c1", ""},
			expectError: true,
		},
		{
			name:        "Fragment with path separator",
			kind:        RecordKindOrder,
			fragments:   []string{"c1", "../o1"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder := NewKeyBuilder()
			builder.WithKind(tt.kind)
			builder.WithFragments(tt.fragments...)
			key, err := builder.Build()

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, key)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectKey, key.Name())
			assert.Equal(t, tt.expectKey, key.String())
		})
	}
}

func TestKeyBuilderReset(t *testing.T) {
	builder := NewKeyBuilder()
	builder.WithKind(RecordKindOrder)
	builder.WithFragments("c1", "o1")
	clone := builder.Clone()

	key, err := builder.BuildAndReset()
	require.NoError(t, err)
	assert.Equal(t, "Order-c1-o1-order.avro", key.Name())

	_, err = builder.Build()
	assert.Error(t, err, "should error after reset")

	cloned, err := clone.Build()
	require.NoError(t, err)
	assert.True(t, key.Equal(cloned), "clone should build the same key")
}

func TestKeyEqual(t *testing.T) {
	a, err := NewKey("Order-c1-o1-order.avro")
	require.NoError(t, err)
	b, err := NewKey("Order-c1-o1-order.avro")
	require.NoError(t, err)
	c, err := NewKey("Order-c2-o1-order.avro")
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
	assert.Equal(t, "", (*Key)(nil).String())
}

func TestParseKey(t *testing.T) {
	key, kind, err := ParseKey("Order-c1-o1-order.avro")
	require.NoError(t, err)
	assert.Equal(t, RecordKindOrder, kind)
	assert.Equal(t, "Order-c1-o1-order.avro", key.Name())

	_, _, err = ParseKey("Order-order.avro")
	assert.Error(t, err, "should require identifying fragments")

	_, _, err = ParseKey("Invoice-c1-invoice.avro")
	assert.Error(t, err, "should reject unknown kinds")

	_, _, err = ParseKey("../Order-c1-o1-order.avro")
	assert.Error(t, err, "should reject invalid names")
}

func TestValidateKeyFragment(t *testing.T) {
	assert.NoError(t, ValidateKeyFragment("22222222-2222-2222-2222-222222222222"))
	assert.Error(t, ValidateKeyFragment(""))
	assert.NoError(t, ValidateKeyFragment("ACME Corp"))
	assert.NoError(t, ValidateKeyFragment(".hidden"))
	assert.Error(t, ValidateKeyFragment("a/b"))
	assert.Error(t, ValidateKeyFragment(".."))
}
