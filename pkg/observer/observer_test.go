package observer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// collector records delivered events and lets tests wait for an expected
// count, since Notify fans out on goroutines.
type collector struct {
	mu     sync.Mutex
	events []Event
	seen   chan struct{}
}

func newCollector() *collector {
	return &collector{seen: make(chan struct{}, 64)}
}

func (c *collector) OnEvent(_ context.Context, e Event) {
	c.mu.Lock()
	c.events = append(c.events, e)
	c.mu.Unlock()
	c.seen <- struct{}{}
}

func (c *collector) wait(t *testing.T, n int) []Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for i := 0; i < n; i++ {
		select {
		case <-c.seen:
		case <-deadline:
			t.Fatalf("timed out waiting for event %d of %d", i+1, n)
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

func TestNotify_DeliversToAllObservers(t *testing.T) {
	a, b := newCollector(), newCollector()
	m := NewManager(a, b)

	m.Notify(context.Background(), Event{Type: EventTaskStart, ExecutionID: "e1", TaskID: "t1"})

	for _, c := range []*collector{a, b} {
		events := c.wait(t, 1)
		if events[0].Type != EventTaskStart || events[0].TaskID != "t1" {
			t.Errorf("delivered event = %+v", events[0])
		}
	}
}

func TestNotify_StampsTimestamp(t *testing.T) {
	c := newCollector()
	m := NewManager(c)

	m.Notify(context.Background(), Event{Type: EventNodeSuccess, ExecutionID: "e1"})

	if events := c.wait(t, 1); events[0].Timestamp.IsZero() {
		t.Error("Notify did not stamp a zero timestamp")
	}
}

func TestNotify_RecoversPanickingObserver(t *testing.T) {
	c := newCollector()
	m := NewManager(panicObserver{}, c)

	m.Notify(context.Background(), Event{Type: EventTaskFailure, Error: errors.New("boom")})

	// The healthy observer must still receive the event.
	events := c.wait(t, 1)
	if events[0].Error == nil {
		t.Error("event error dropped")
	}
}

type panicObserver struct{}

func (panicObserver) OnEvent(context.Context, Event) { panic("unruly observer") }

func TestNotify_NilManagerIsNoOp(t *testing.T) {
	var m *Manager
	m.Notify(context.Background(), Event{Type: EventTaskStart}) // must not panic
	if m.Count() != 0 {
		t.Errorf("nil manager Count() = %d", m.Count())
	}
}

func TestRegister_IgnoresNil(t *testing.T) {
	m := NewManager()
	m.Register(nil)
	if m.Count() != 0 {
		t.Errorf("Count() = %d after registering nil", m.Count())
	}
}
