package keyfactory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOrderArtifactName(t *testing.T) {
	tests := []struct {
		name        string
		customerID  string
		orderID     string
		expectName  string
		expectError bool
	}{
		{
			name:       "Order artifact name",
			customerID: "22222222-2222-2222-2222-222222222222",
			orderID:    "11111111-1111-1111-1111-111111111111",
			expectName: "Order-22222222-2222-2222-2222-222222222222-11111111-1111-1111-1111-111111111111-order.avro",
		},
		{
			name:        "Empty customer ID",
			orderID:     "o1",
			expectError: true,
		},
		{
			name:        "Empty order ID",
			customerID:  "c1",
			expectError: true,
		},
		{
			name:        "Customer ID escapes root",
			customerID:  "../c1",
			orderID:     "o1",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, err := NewOrderArtifactName(tt.customerID, tt.orderID)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectName, name)
		})
	}
}

func TestNewArtifactNameIsDeterministic(t *testing.T) {
	first, err := NewArtifactName(RecordKindOrder, "c1", "o1")
	assert.NoError(t, err)
	second, err := NewArtifactName(RecordKindOrder, "c1", "o1")
	assert.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := NewArtifactName(RecordKindOrder, "o1", "c1")
	assert.NoError(t, err)
	assert.NotEqual(t, first, other, "fragment order should matter")
}
