package controls

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-orbit/common"
)

// EventKind identifies a controller lifecycle event.
type EventKind int

const (
	// EventStart fires when a gesture begins.
	EventStart EventKind = iota
	// EventEnd fires when a gesture ends.
	EventEnd
	// EventChange fires when Update or Reset moved the camera.
	EventChange

	eventKindCount
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventEnd:
		return "end"
	case EventChange:
		return "change"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is delivered to lifecycle listeners.
type Event struct {
	Kind EventKind
	// Mode is the interaction mode at the time the event was queued.
	Mode InteractionMode
}

// eventBus holds one listener registry per event kind.
type eventBus struct {
	listeners [eventKindCount]common.Listeners[func(Event)]
}

func (b *eventBus) add(kind EventKind, fn func(Event)) common.ListenerID {
	if kind < 0 || kind >= eventKindCount || fn == nil {
		return 0
	}
	return b.listeners[kind].Add(fn)
}

func (b *eventBus) remove(kind EventKind, id common.ListenerID) bool {
	if kind < 0 || kind >= eventKindCount {
		return false
	}
	return b.listeners[kind].Remove(id)
}

func (b *eventBus) clear() {
	for i := range b.listeners {
		b.listeners[i].Clear()
	}
}

// emit invokes listeners for each event in order. Must be called without the controller mutex held.
func (b *eventBus) emit(events []Event) {
	for _, ev := range events {
		for _, fn := range b.listeners[ev.Kind].Snapshot() {
			fn(ev)
		}
	}
}
