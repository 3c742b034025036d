// Package uistate holds the only two pieces of state shared across
// concurrency contexts: the UI event queue and the last-answer slot.
// Everything else in the process is owned by exactly one goroutine.
package uistate

import "sync"

// Event is a discrete UI command carried from input-listening goroutines
// into the UI tick goroutine.
type Event int

const (
	// EventToggle flips overlay visibility
	EventToggle Event = iota
)

// Queue is a mutex-protected FIFO safe for any number of concurrent
// producers and a single draining consumer. Unbounded: toggle events are
// rare and idempotent in effect, so backpressure is deliberately omitted.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

// NewQueue creates an empty event queue
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an event; safe from any goroutine
func (q *Queue) Push(e Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, e)
}

// Drain removes and returns all queued events in FIFO order without
// blocking. Intended for the single consumer on the UI tick.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	events := q.events
	q.events = nil
	return events
}

// Len reports the number of queued events
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
