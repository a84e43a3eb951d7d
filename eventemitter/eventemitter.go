// Package eventemitter provides a typed event emitter that allows registering
// synchronous or asynchronous listeners for a single named event.
//
// Each listener is called synchronously, in registration order, when the event is emitted.
// If you want asynchronous (non-blocking) listeners, wrap your listener in a go routine.
//
// Example:
//
//	e := eventemitter.New[string]("saved")
//	token := e.AddListener(func(name string) { fmt.Println(name) })
//	e.Emit("Order-c1-o1-order.avro") // Output: Order-c1-o1-order.avro
//	e.RemoveListener(token)
package eventemitter

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

// ListenerToken is the token returned when a listener is added.
type ListenerToken string

type listener[E any] struct {
	token   ListenerToken
	handler func(E)
}

// Emitter dispatches events of type E to its listeners and is safe for concurrent use.
type Emitter[E any] struct {
	mu        sync.RWMutex
	eventName string
	listeners []listener[E]
}

// New creates an emitter for the named event.
func New[E any](eventName string) *Emitter[E] {
	return &Emitter[E]{eventName: eventName}
}

func (e *Emitter[E]) EventName() string {
	return e.eventName
}

// AddListener registers a listener and returns its removal token.
func (e *Emitter[E]) AddListener(handler func(E)) ListenerToken {
	e.mu.Lock()
	defer e.mu.Unlock()

	token := ListenerToken(uuid.NewString())
	e.listeners = append(e.listeners, listener[E]{token: token, handler: handler})
	return token
}

// RemoveListener removes a listener by token.
func (e *Emitter[E]) RemoveListener(token ListenerToken) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := slices.IndexFunc(e.listeners, func(l listener[E]) bool { return l.token == token })
	if i < 0 {
		return false
	}
	e.listeners = slices.Delete(e.listeners, i, i+1)
	return true
}

// RemoveAllListeners removes every listener.
func (e *Emitter[E]) RemoveAllListeners() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.listeners) == 0 {
		return false
	}
	e.listeners = nil
	return true
}

// Len returns the number of registered listeners.
func (e *Emitter[E]) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners)
}

// Emit calls each listener synchronously with the event.
// Listeners run outside the lock and may add or remove listeners.
func (e *Emitter[E]) Emit(event E) bool {
	e.mu.RLock()
	listeners := slices.Clone(e.listeners)
	e.mu.RUnlock()

	if len(listeners) == 0 {
		return false
	}
	for _, l := range listeners {
		l.handler(event)
	}
	return true
}
