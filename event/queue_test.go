package event

import (
	"sync"
	"testing"

	"github.com/lixenwraith/perimeter/parameter"
)

func TestQueueFIFO(t *testing.T) {
	q := NewEventQueue()
	for i := 0; i < 5; i++ {
		q.Push(GameEvent{Type: EventPulseRequest, Frame: int64(i)})
	}

	if q.Len() != 5 {
		t.Errorf("Expected 5 pending, got %d", q.Len())
	}

	events := q.Consume()
	if len(events) != 5 {
		t.Fatalf("Expected 5 events, got %d", len(events))
	}
	for i, ev := range events {
		if ev.Frame != int64(i) {
			t.Errorf("Expected frame %d at %d, got %d", i, i, ev.Frame)
		}
	}
	if q.Consume() != nil {
		t.Error("Expected empty queue after consume")
	}
}

func TestQueueOverwritesOldest(t *testing.T) {
	q := NewEventQueue()
	total := parameter.EventQueueSize + 10
	for i := 0; i < total; i++ {
		q.Push(GameEvent{Type: EventPulseRequest, Frame: int64(i)})
	}

	events := q.Consume()
	if len(events) != parameter.EventQueueSize {
		t.Fatalf("Expected %d events, got %d", parameter.EventQueueSize, len(events))
	}
	if events[0].Frame != 10 {
		t.Errorf("Expected oldest surviving frame 10, got %d", events[0].Frame)
	}
	if events[len(events)-1].Frame != int64(total-1) {
		t.Errorf("Expected newest frame %d, got %d", total-1, events[len(events)-1].Frame)
	}
	if q.Dropped() != 10 {
		t.Errorf("Expected 10 dropped, got %d", q.Dropped())
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewEventQueue()
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 30; i++ {
				q.Push(GameEvent{Type: EventSoundRequest})
			}
		}()
	}
	wg.Wait()

	if got := len(q.Consume()); got != 120 {
		t.Errorf("Expected 120 events, got %d", got)
	}
}

type recordingHandler struct {
	types []EventType
	seen  []EventType
}

func (h *recordingHandler) HandleEvent(ev GameEvent)  { h.seen = append(h.seen, ev.Type) }
func (h *recordingHandler) EventTypes() []EventType { return h.types }

func TestRouterDispatch(t *testing.T) {
	q := NewEventQueue()
	r := NewRouter(q)

	a := &recordingHandler{types: []EventType{EventPulseRequest, EventSellRequest}}
	b := &recordingHandler{types: []EventType{EventSellRequest}}
	r.Register(a)
	r.Register(b)

	if r.HandlerCount(EventSellRequest) != 2 {
		t.Errorf("Expected 2 handlers, got %d", r.HandlerCount(EventSellRequest))
	}

	q.Push(GameEvent{Type: EventPulseRequest})
	q.Push(GameEvent{Type: EventSellRequest})
	q.Push(GameEvent{Type: EventDerailed})

	if n := r.DispatchAll(); n != 3 {
		t.Errorf("Expected 3 dispatched, got %d", n)
	}
	if len(a.seen) != 2 || a.seen[0] != EventPulseRequest || a.seen[1] != EventSellRequest {
		t.Errorf("Unexpected handler a sequence: %v", a.seen)
	}
	if len(b.seen) != 1 {
		t.Errorf("Expected handler b to see 1 event, got %d", len(b.seen))
	}
}

func TestEventNames(t *testing.T) {
	for et := EventNone; et < eventTypeCount; et++ {
		name := et.String()
		if name == "unknown" {
			t.Errorf("Event type %d has no name", et)
			continue
		}
		back, ok := GetEventType(name)
		if !ok || back != et {
			t.Errorf("Expected %s to round trip to %d, got %d", name, et, back)
		}
	}
	if !EventPulseRequest.IsIntent() || EventDerailed.IsIntent() {
		t.Error("Intent classification mismatch")
	}
}
