package recordstore

import (
	"io"
	"testing"

	"github.com/holmberd/go-recordstore/datastore"
	"github.com/holmberd/go-recordstore/encoder"
	"github.com/holmberd/go-recordstore/order"
	"github.com/holmberd/go-recordstore/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func generateOrders(t *testing.T, num int) []order.Order {
	t.Helper()
	return testutil.NewRandomOrders(t, num)
}

func assertOrderFields(t *testing.T, want *order.Order, got *order.Order) {
	t.Helper()
	assert.Equal(t, want.OrderID(), got.OrderID(), "should preserve the order ID")
	assert.Equal(t, want.CustomerID(), got.CustomerID(), "should preserve the customer ID")
	assert.Equal(t, want.OrderDateEpochSecondsUTC(), got.OrderDateEpochSecondsUTC(), "should preserve the order date")
	assert.True(t, want.Equal(got))
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestOrderStore(t *testing.T) {
	tests := []struct {
		name       string
		fileBacked bool
		opts       []Option
	}{
		{
			name:       "Order file",
			fileBacked: true,
			opts:       []Option{WithLogger(quietLogger())},
		},
		{
			name:       "Order file deflate",
			fileBacked: true,
			opts: []Option{
				WithLogger(quietLogger()),
				WithCodec(encoder.OCFEncoder{Compression: encoder.CompressionDeflate}),
			},
		},
		{
			name:       "Order pebble",
			fileBacked: false,
			opts: []Option{
				WithLogger(quietLogger()),
				WithDatastore(datastore.OpenPebbleClient),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]Option{WithBaseDir(t.TempDir())}, tt.opts...)
			suite := NewRoundTripTestSuite[order.Order](
				tt.name,
				tt.fileBacked,
				opts,
				generateOrders,
				assertOrderFields,
			)
			suite.Run(t)
		})
	}
}
