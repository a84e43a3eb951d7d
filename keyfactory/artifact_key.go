package keyfactory

import (
	"fmt"
)

// RecordKind is the unqualified type name of a stored record.
type RecordKind string

const (
	RecordKindOrder RecordKind = "Order"
)

func validRecordKinds() []RecordKind {
	return []RecordKind{
		RecordKindOrder,
	}
}

func validateRecordKind(k RecordKind) error {
	if k == "" {
		return fmt.Errorf("keyfactory: record kind must not be empty")
	}
	for _, valid := range validRecordKinds() {
		if k == valid {
			return nil
		}
	}
	return fmt.Errorf("keyfactory: invalid record kind: %q", k)
}

// NewArtifactName returns the deterministic file name of a record artifact.
//
// Name structure:
//
//	<RecordKind>-<fragment1>-...-<fragmentN>-<recordkind>.avro
//
// Example:
//
//	name, _ := NewArtifactName(RecordKindOrder, "c1", "o1")
//	// name => "Order-c1-o1-order.avro"
func NewArtifactName(kind RecordKind, fragments ...string) (string, error) {
	kb := NewKeyBuilder()
	kb.WithKind(kind)
	kb.WithFragments(fragments...)
	key, err := kb.BuildAndReset()
	if err != nil {
		return "", err
	}
	return key.Name(), nil
}

// NewOrderArtifactName returns the artifact file name of an order.
//
// Name structure:
//
//	Order-<customerId>-<orderId>-order.avro
func NewOrderArtifactName(customerID string, orderID string) (string, error) {
	if customerID == "" {
		return "", fmt.Errorf("keyfactory: customer ID must not be empty")
	}
	if orderID == "" {
		return "", fmt.Errorf("keyfactory: order ID must not be empty")
	}
	return NewArtifactName(RecordKindOrder, customerID, orderID)
}
