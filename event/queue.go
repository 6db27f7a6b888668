package event

import (
	"sync/atomic"

	"github.com/lixenwraith/perimeter/parameter"
)

// EventQueue is a lock-free multi-producer ring drained once per frame
// Producers are the input goroutine, the skin service and systems emitting follow-ups
// When full the oldest unread intents are overwritten and counted in Dropped
type EventQueue struct {
	slots [parameter.EventQueueSize]slot
	head  atomic.Uint64 // Next slot to drain
	tail  atomic.Uint64 // Next slot to claim

	dropped atomic.Uint64
}

type slot struct {
	ev    GameEvent
	ready atomic.Bool // Set after ev is written, cleared after it is drained
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push claims the next slot and publishes ev into it
func (eq *EventQueue) Push(ev GameEvent) {
	var claimed uint64
	for {
		claimed = eq.tail.Load()
		if eq.tail.CompareAndSwap(claimed, claimed+1) {
			break
		}
	}

	s := &eq.slots[claimed&parameter.EventBufferMask]
	s.ev = ev
	s.ready.Store(true)

	// Lapped the reader: move head past the overwritten slot
	if head := eq.head.Load(); claimed+1-head > parameter.EventQueueSize {
		if eq.head.CompareAndSwap(head, claimed+1-parameter.EventQueueSize) {
			eq.dropped.Add(claimed + 1 - parameter.EventQueueSize - head)
		}
	}
}

// Consume drains published events in FIFO order
// Draining stops at the first claimed slot whose producer is still writing
func (eq *EventQueue) Consume() []GameEvent {
	for {
		seen := eq.head.Load()
		tail := eq.tail.Load()
		if tail == seen {
			return nil
		}
		head := seen
		if tail-head > parameter.EventQueueSize {
			head = tail - parameter.EventQueueSize
		}

		var out []GameEvent
		for i := head; i < tail; i++ {
			s := &eq.slots[i&parameter.EventBufferMask]
			if !s.ready.Load() {
				break
			}
			out = append(out, s.ev)
		}

		if eq.head.CompareAndSwap(seen, head+uint64(len(out))) {
			for i := range out {
				eq.slots[(head+uint64(i))&parameter.EventBufferMask].ready.Store(false)
			}
			return out
		}
	}
}

// Len returns the approximate pending count
func (eq *EventQueue) Len() int {
	head, tail := eq.head.Load(), eq.tail.Load()
	switch {
	case tail <= head:
		return 0
	case tail-head > parameter.EventQueueSize:
		return parameter.EventQueueSize
	default:
		return int(tail - head)
	}
}

// Dropped returns how many events were overwritten before being drained
func (eq *EventQueue) Dropped() uint64 {
	return eq.dropped.Load()
}
