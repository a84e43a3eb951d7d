package eventemitter

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/holmberd/go-recordstore/testutil"
	"github.com/stretchr/testify/assert"
)

func TestEmitter(t *testing.T) {
	t.Run("Return event name", func(t *testing.T) {
		e := New[string]("saved")
		assert.Equal(t, "saved", e.EventName(), "should return correct event name")
	})

	t.Run("Add listener and emit event", func(t *testing.T) {
		e := New[string]("saved")
		var received string
		token := e.AddListener(func(name string) { received = name })
		assert.NotZero(t, token, "should return a valid token")

		ok := e.Emit("Order-c1-o1-order.avro")
		assert.True(t, ok, "should return true if listeners are triggered")
		assert.Equal(t, "Order-c1-o1-order.avro", received, "should receive the event")
	})

	t.Run("Tokens are unique", func(t *testing.T) {
		e := New[int]("tick")
		t1 := e.AddListener(func(int) {})
		t2 := e.AddListener(func(int) {})
		assert.NotEqual(t, t1, t2)
		assert.Equal(t, 2, e.Len())
	})

	t.Run("Listeners are called in registration order", func(t *testing.T) {
		e := New[int]("tick")
		var order []int
		e.AddListener(func(int) { order = append(order, 1) })
		e.AddListener(func(int) { order = append(order, 2) })
		e.Emit(0)
		assert.Equal(t, []int{1, 2}, order)
	})

	t.Run("Emit event with no listeners", func(t *testing.T) {
		e := New[int]("empty")
		assert.False(t, e.Emit(1), "should return false if no listeners exist")
	})

	t.Run("Remove existing listener", func(t *testing.T) {
		e := New[int]("removable")
		called := false
		token := e.AddListener(func(int) { called = true })

		assert.True(t, e.RemoveListener(token), "should successfully remove listener")
		e.Emit(1)
		assert.False(t, called, "should not call listener after removal")
	})

	t.Run("Remove non-existent listener", func(t *testing.T) {
		e := New[int]("removable")
		assert.False(t, e.RemoveListener("non-existent-token"))
	})

	t.Run("Remove all listeners", func(t *testing.T) {
		e := New[int]("wipe")
		e.AddListener(func(int) {})
		e.AddListener(func(int) {})

		assert.True(t, e.RemoveAllListeners(), "should remove all listeners")
		assert.False(t, e.Emit(1), "should not emit after removing all listeners")
		assert.False(t, e.RemoveAllListeners(), "should return false when nothing is registered")
	})

	t.Run("Listener removes itself while emitting", func(t *testing.T) {
		e := New[int]("once")
		calls := 0
		var token ListenerToken
		token = e.AddListener(func(int) {
			calls++
			e.RemoveListener(token)
		})
		e.Emit(1)
		e.Emit(2)
		assert.Equal(t, 1, calls)
		assert.Zero(t, e.Len())
	})

	t.Run("Emit concurrent events", func(t *testing.T) {
		e := New[int]("tick")
		const numListeners = 100
		const numEmitters = 50
		var wg sync.WaitGroup
		var called atomic.Int32

		for range numListeners {
			e.AddListener(func(int) { called.Add(1) })
		}
		for i := range numEmitters {
			wg.Add(1)
			go func() {
				defer wg.Done()
				e.Emit(i)
			}()
		}
		testutil.WaitGroupWithTimeout(t, &wg, time.Second)
		assert.Equal(t, numListeners*numEmitters, int(called.Load()), "should have called all listeners for each emit")
	})

	t.Run("Handle events with asynchronous listeners", func(t *testing.T) {
		e := New[int]("tick")
		const numListeners = 100
		var wg sync.WaitGroup
		var called atomic.Int32

		for range numListeners {
			e.AddListener(func(int) {
				wg.Add(1)
				go func() {
					defer wg.Done()
					called.Add(1)
				}()
			})
		}
		e.Emit(1)
		testutil.WaitGroupWithTimeout(t, &wg, time.Second)
		assert.Equal(t, numListeners, int(called.Load()), "should have called each asynchronous listener")
	})
}
