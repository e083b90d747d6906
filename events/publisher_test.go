package events

import (
	"context"
	"errors"
	"testing"
)

type recorder struct {
	events []Event
	err    error
}

func (r *recorder) Publish(_ context.Context, e Event) error {
	r.events = append(r.events, e)
	return r.err
}

func (r *recorder) Close() error { return nil }

func TestEmitStampsOccurredAt(t *testing.T) {
	rec := &recorder{}
	prev := Bus
	Bus = rec
	t.Cleanup(func() { Bus = prev })

	Emit(context.Background(), "req", Event{Type: OrderPlaced, OrderID: 4})

	if len(rec.events) != 1 {
		t.Fatalf("published %d events, want 1", len(rec.events))
	}
	if rec.events[0].OccurredAt.IsZero() {
		t.Error("OccurredAt not set")
	}
}

func TestEmitSwallowsPublishErrors(t *testing.T) {
	rec := &recorder{err: errors.New("broker down")}
	prev := Bus
	Bus = rec
	t.Cleanup(func() { Bus = prev })

	Emit(context.Background(), "req", Event{Type: OrderModified, OrderID: 5})
	if len(rec.events) != 1 {
		t.Fatalf("publish not attempted")
	}
}

func TestInitWithoutURLKeepsNoop(t *testing.T) {
	prev := Bus
	t.Cleanup(func() { Bus = prev })
	Bus = Noop{}

	Init("")
	if _, ok := Bus.(Noop); !ok {
		t.Fatalf("Bus = %T, want Noop", Bus)
	}
}
