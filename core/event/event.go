package event

import (
	"context"
	"sync"

	"github.com/gaze-network/tokensale/pkg/logger"
	"github.com/gaze-network/tokensale/pkg/logger/slogx"
)

// Event is an observable side effect of a successful mutating call.
type Event interface {
	EventName() string
}

// Emitter receives events in the order mutations occur.
type Emitter interface {
	Emit(ctx context.Context, e Event)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(ctx context.Context, e Event)

func (f EmitterFunc) Emit(ctx context.Context, e Event) {
	f(ctx, e)
}

// Discard drops every event.
var Discard Emitter = EmitterFunc(func(context.Context, Event) {})

// Record is an event tagged with the contract that emitted it.
type Record struct {
	Source string
	Event  Event
}

// Journal collects events from many sources into one ordered log.
type Journal struct {
	mu      sync.Mutex
	records []Record
}

func NewJournal() *Journal {
	return &Journal{}
}

// Source returns an Emitter that tags every event with source.
func (j *Journal) Source(source string) Emitter {
	return EmitterFunc(func(ctx context.Context, e Event) {
		j.mu.Lock()
		j.records = append(j.records, Record{Source: source, Event: e})
		j.mu.Unlock()

		logger.DebugContext(ctx, "emitted event",
			slogx.String("source", source),
			slogx.String("event", e.EventName()),
		)
	})
}

// Records returns a copy of the collected records.
func (j *Journal) Records() []Record {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Record, len(j.records))
	copy(out, j.records)
	return out
}

// Drain returns the collected records and empties the journal.
func (j *Journal) Drain() []Record {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := j.records
	j.records = nil
	return out
}

// Names returns the event names of records, in order.
func Names(records []Record) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Event.EventName()
	}
	return names
}
