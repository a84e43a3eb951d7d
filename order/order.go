// Package order defines the Order record and its Avro schema.
package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/holmberd/go-recordstore/keyfactory"
)

// Schema is the Avro schema descriptor shared by every Order.
const Schema = `{"type":"record","name":"Order","namespace":"com.techeule.examples.avro.schemas",` +
	`"fields":[{"name":"orderId","type":"string"},{"name":"customerId","type":"string"},` +
	`{"name":"orderDateEpochSecondsUTC","type":"long"}]}`

// TypeName is the unqualified record type name.
const TypeName = string(keyfactory.RecordKindOrder)

const (
	fieldOrderID   = "orderId"
	fieldCustomer  = "customerId"
	fieldOrderDate = "orderDateEpochSecondsUTC"
)

var (
	ErrEmptyOrderID    = errors.New("order: order ID must not be empty")
	ErrEmptyCustomerID = errors.New("order: customer ID must not be empty")
)

// Order is an immutable order record. Two orders are equal when all three fields are equal.
type Order struct {
	orderID                  string
	customerID               string
	orderDateEpochSecondsUTC int64
}

// New creates an order.
// Identifiers may hold any text that can appear in a file name, i.e. anything but a
// path separator, NUL, "." or "..".
func New(orderID string, customerID string, orderDateEpochSecondsUTC int64) (*Order, error) {
	if orderID == "" {
		return nil, ErrEmptyOrderID
	}
	if customerID == "" {
		return nil, ErrEmptyCustomerID
	}
	if err := keyfactory.ValidateKeyFragment(orderID); err != nil {
		return nil, fmt.Errorf("order: invalid order ID: %w", err)
	}
	if err := keyfactory.ValidateKeyFragment(customerID); err != nil {
		return nil, fmt.Errorf("order: invalid customer ID: %w", err)
	}
	return &Order{
		orderID:                  orderID,
		customerID:               customerID,
		orderDateEpochSecondsUTC: orderDateEpochSecondsUTC,
	}, nil
}

func (o Order) OrderID() string {
	return o.orderID
}

func (o Order) CustomerID() string {
	return o.customerID
}

// OrderDateEpochSecondsUTC returns the order date in seconds since the Unix epoch.
func (o Order) OrderDateEpochSecondsUTC() int64 {
	return o.orderDateEpochSecondsUTC
}

// OrderDate returns the order date as a UTC time.
func (o Order) OrderDate() time.Time {
	return time.Unix(o.orderDateEpochSecondsUTC, 0).UTC()
}

// Equal reports whether both orders carry the same field values.
func (o *Order) Equal(other *Order) bool {
	if o == nil || other == nil {
		return o == other
	}
	return *o == *other
}

func (o Order) Schema() string {
	return Schema
}

func (o Order) TypeName() string {
	return TypeName
}

// ArtifactName returns the file name the order is stored under.
func (o Order) ArtifactName() (string, error) {
	return keyfactory.NewOrderArtifactName(o.customerID, o.orderID)
}

func (o Order) String() string {
	return fmt.Sprintf("%s{orderId=%s, customerId=%s, orderDateEpochSecondsUTC=%d}",
		TypeName, o.orderID, o.customerID, o.orderDateEpochSecondsUTC)
}

// MarshalAvro returns the native Avro datum of the order (implements encoder.AvroMarshaler).
func (o Order) MarshalAvro() (map[string]any, error) {
	return map[string]any{
		fieldOrderID:   o.orderID,
		fieldCustomer:  o.customerID,
		fieldOrderDate: o.orderDateEpochSecondsUTC,
	}, nil
}

// UnmarshalAvro populates the order from a native Avro datum (implements encoder.AvroUnmarshaler).
func (o *Order) UnmarshalAvro(datum map[string]any) error {
	orderID, err := stringField(datum, fieldOrderID)
	if err != nil {
		return err
	}
	customerID, err := stringField(datum, fieldCustomer)
	if err != nil {
		return err
	}
	v, ok := datum[fieldOrderDate]
	if !ok {
		return fmt.Errorf("order: missing field %q", fieldOrderDate)
	}
	orderDate, ok := v.(int64)
	if !ok {
		return fmt.Errorf("order: field %q is %T, expected int64", fieldOrderDate, v)
	}
	decoded, err := New(orderID, customerID, orderDate)
	if err != nil {
		return err
	}
	*o = *decoded
	return nil
}

func stringField(datum map[string]any, name string) (string, error) {
	v, ok := datum[name]
	if !ok {
		return "", fmt.Errorf("order: missing field %q", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("order: field %q is %T, expected string", name, v)
	}
	return s, nil
}
