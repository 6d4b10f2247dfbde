package event

import (
	"go.uber.org/zap"
	"sync"
)

var (
	mu        sync.RWMutex
	listeners = make(map[Type][]func(msg interface{}))
)

// AddEventListener registers a callback for eventType. Callbacks run in the
// order they were registered, on the emitting goroutine.
func AddEventListener(eventType Type, callback func(msg interface{})) {
	zap.L().With(zap.String("type", string(eventType))).Debug("EventManager: AddListener")

	mu.Lock()
	listeners[eventType] = append(listeners[eventType], callback)
	mu.Unlock()
}

// EmitEvent dispatches msg to every listener registered for eventType. The
// emitted state is already committed; listeners only observe it.
func EmitEvent(eventType Type, msg interface{}) {
	mu.RLock()
	callbacks := listeners[eventType]
	mu.RUnlock()

	if len(callbacks) == 0 {
		zap.L().With(zap.String("type", string(eventType))).Debug("EventManager: No listeners")
		return
	}

	zap.L().With(zap.String("type", string(eventType))).Debug("EventManager: Emitting event")
	for _, callback := range callbacks {
		callback(msg)
	}
}
