package common

import "sync"

// ListenerID identifies a registered listener so it can be removed later.
// The zero value never identifies a live listener.
type ListenerID uint64

// Listeners is an ordered registry of callbacks of type F.
// It is safe for concurrent use; Snapshot lets callers invoke listeners without holding the lock.
type Listeners[F any] struct {
	mu     sync.Mutex
	nextID ListenerID
	ids    []ListenerID
	fns    []F
}

// Add registers fn and returns its handle.
//
// Parameters:
//   - fn: the callback to register
//
// Returns:
//   - ListenerID: handle used to remove the callback
func (l *Listeners[F]) Add(fn F) ListenerID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	l.ids = append(l.ids, l.nextID)
	l.fns = append(l.fns, fn)
	return l.nextID
}

// Remove unregisters the listener with the given handle. Unknown handles are ignored.
//
// Parameters:
//   - id: the handle returned by Add
//
// Returns:
//   - bool: true if a listener was removed
func (l *Listeners[F]) Remove(id ListenerID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, lid := range l.ids {
		if lid == id {
			l.ids = append(l.ids[:i:i], l.ids[i+1:]...)
			l.fns = append(l.fns[:i:i], l.fns[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every listener.
func (l *Listeners[F]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ids = nil
	l.fns = nil
}

// Len returns the number of registered listeners.
func (l *Listeners[F]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fns)
}

// Snapshot returns a copy of the registered callbacks in registration order.
//
// Returns:
//   - []F: the callbacks
func (l *Listeners[F]) Snapshot() []F {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]F, len(l.fns))
	copy(out, l.fns)
	return out
}
