package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/holmberd/go-recordstore/order"
)

// NewRandomOrder returns an order with fresh random identifiers dated now.
func NewRandomOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.New(uuid.NewString(), uuid.NewString(), time.Now().Unix())
	if err != nil {
		t.Fatalf("failed to create random order: %v", err)
	}
	return o
}

// NewRandomOrders returns num orders with pairwise distinct identifiers.
func NewRandomOrders(t *testing.T, num int) []order.Order {
	t.Helper()
	orders := make([]order.Order, 0, num)
	for range num {
		orders = append(orders, *NewRandomOrder(t))
	}
	return orders
}
