// Copyright © 2026 chrona-physics Contributors
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// clock.go implements the discrete-event scheduler that drives the whole
// engine. There is no fixed timestep: Clock advances time by replaying
// scheduled events in time order, interleaved with one-shot preprocesses
// that PhysicsObject uses to batch its recalculations (object.go).
//
// The event heap is a container/heap priority queue with invalidate-on-pop
// (tombstone) semantics, the same lazy decrease-key idiom used for
// graph search priority queues: push new entries rather than mutate
// existing ones, and let stale entries get silently discarded when they
// reach the front of the queue.

import (
	"container/heap"
	"fmt"

	"github.com/google/uuid"
)

// ClockEvent is a single scheduled callback. An event popped from the heap
// with Valid false is silently skipped; Cancel is how callers achieve O(log n)
// removal without rebuilding the heap.
type ClockEvent struct {
	id       uuid.UUID
	time     float64
	seq      uint64 // insertion-order tie-break for equal-time events.
	valid    bool
	callback func(*Clock)
}

// ID returns the event's identity, useful for log correlation.
func (e *ClockEvent) ID() uuid.UUID { return e.id }

// Time returns the instant this event is scheduled to fire.
func (e *ClockEvent) Time() float64 { return e.time }

// Valid reports whether this event will still fire when popped.
func (e *ClockEvent) Valid() bool { return e.valid }

// ClockEvent
// ============================================================================
// eventHeap: container/heap min-heap keyed by (time, seq).

type eventHeap []*ClockEvent

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].time != h[j].time {
		return h[i].time < h[j].time
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x interface{}) { *h = append(*h, x.(*ClockEvent)) }

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// eventHeap
// ============================================================================
// Clock

// Clock drives all progress in the engine. It is single-threaded and
// cooperative: no operation blocks, and callbacks run to completion
// synchronously while the clock is stopped at a specific instant.
type Clock struct {
	time    float64
	cycle   uint64
	events  eventHeap
	seq     uint64
	cfg     clockConfig
	loops   map[uuid.UUID]bool
	pending []func(*Clock) // preprocesses queued for the NEXT cycle.
	running []func(*Clock) // preprocesses queued for THIS cycle.
	gen     uint64         // monotonic recalculation generation counter.
}

// nextGen returns a fresh, clock-scoped monotonically increasing
// generation number, used by PhysicsObject.lastRecalculation (object.go)
// to detect stale candidates across different objects sharing this clock.
func (c *Clock) nextGen() uint64 {
	c.gen++
	return c.gen
}

// NewClock creates a Clock starting at time 0.
func NewClock(opts ...ClockOption) *Clock {
	cfg := clockDefaults
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Clock{
		cfg:   cfg,
		loops: map[uuid.UUID]bool{},
	}
}

// Time returns the clock's current time.
func (c *Clock) Time() float64 { return c.time }

// Cycle returns the number of preprocess/event rounds completed so far.
func (c *Clock) Cycle() uint64 { return c.cycle }

// Schedule pushes one or more events whose time is at or after the clock's
// current time and returns the ones actually scheduled (events in the past
// are discarded silently, with a warning logged for visibility).
func (c *Clock) Schedule(events ...*ClockEvent) []*ClockEvent {
	scheduled := make([]*ClockEvent, 0, len(events))
	for _, e := range events {
		if e.time < c.time {
			c.cfg.logger.Warn("chrona: discarding event scheduled in the past",
				"event_id", e.id, "event_time", e.time, "clock_time", c.time)
			continue
		}
		e.seq = c.nextSeq()
		e.valid = true
		heap.Push(&c.events, e)
		scheduled = append(scheduled, e)
	}
	return scheduled
}

// ScheduleEvent is a convenience wrapper that builds and schedules a single
// ClockEvent for the given time and callback, returning it (or nil if t is
// in the past).
func (c *Clock) ScheduleEvent(t float64, callback func(*Clock)) *ClockEvent {
	e := &ClockEvent{id: uuid.New(), time: t, callback: callback}
	scheduled := c.Schedule(e)
	if len(scheduled) == 0 {
		return nil
	}
	return scheduled[0]
}

// Cancel invalidates event e. A cancelled event popped from the heap is
// silently skipped rather than executed.
func (c *Clock) Cancel(e *ClockEvent) {
	if e != nil {
		e.valid = false
	}
}

// AddPreprocess appends one or more one-shot callbacks to run at the start
// of the next cycle. Preprocesses may themselves schedule events and further
// preprocesses, but any preprocess added while preprocesses are running is
// deferred to the following cycle rather than joining the current batch.
func (c *Clock) AddPreprocess(callbacks ...func(*Clock)) {
	c.pending = append(c.pending, callbacks...)
}

func (c *Clock) nextSeq() uint64 {
	c.seq++
	return c.seq
}

// runPreprocesses runs every pending preprocess in insertion order, then
// increments the cycle counter. Preprocesses scheduled during this step land
// in c.pending (the NEXT cycle), not c.running (THIS cycle).
func (c *Clock) runPreprocesses() {
	c.running, c.pending = c.pending, nil
	for _, cb := range c.running {
		cb(c)
	}
	c.running = nil
	c.cycle++
}

// RunTo advances time up to target, running every preprocess/event cycle in
// between. It fails with ErrInvalidTime if target is before the clock's
// current time, and with ErrCycleLimitExceeded if more than the configured
// cycle limit (default 10,000) elapse within this call -- a symptom of a
// zero-delay event cascade that never settles.
func (c *Clock) RunTo(target float64) error {
	if target < c.time {
		return fmt.Errorf("chrona: RunTo(%g) from %g: %w", target, c.time, ErrInvalidTime)
	}
	cycles := 0
	for {
		c.runPreprocesses()
		cycles++
		if cycles > c.cfg.cycleLimit {
			return fmt.Errorf("chrona: RunTo(%g) after %d cycles: %w", target, cycles, ErrCycleLimitExceeded)
		}

		if c.events.Len() == 0 || c.events[0].time >= target {
			c.time = target
			return nil
		}
		e := heap.Pop(&c.events).(*ClockEvent)
		if !e.valid {
			continue
		}
		c.time = e.time
		e.callback(c)
	}
}

// Advance runs cycles until exactly one valid event fires, returning true,
// or until the event heap is exhausted without ever finding one, returning
// false. Preprocesses run as usual before each check.
func (c *Clock) Advance() bool {
	for {
		c.runPreprocesses()
		if c.events.Len() == 0 {
			return false
		}
		e := heap.Pop(&c.events).(*ClockEvent)
		if !e.valid {
			continue
		}
		c.time = e.time
		e.callback(c)
		return true
	}
}

// Clock
// ============================================================================
// timing helpers: schedule/cancel and self-perpetuating loops.

// Schedule creates and enqueues a ClockEvent for the given time and
// callback, returning it (or nil if t has already passed).
func Schedule(clock *Clock, t float64, callback func(*Clock)) *ClockEvent {
	return clock.ScheduleEvent(t, callback)
}

// Cancel invalidates a previously scheduled event.
func Cancel(event *ClockEvent) {
	if event != nil {
		event.valid = false
	}
}

// ScheduleLoop enters a self-perpetuating schedule: each firing invokes cb
// then schedules the next firing at previousTime+delay. It returns an id
// that CancelLoop uses to stop the chain. Loop ids are per-clock (per the
// design note in spec.md §9 about avoiding global loop-id state) and are
// uuid-based rather than a bare incrementing counter, matching the rest of
// the engine's identifier scheme.
func ScheduleLoop(clock *Clock, start, delay float64, cb func(*Clock)) uuid.UUID {
	id := uuid.New()
	clock.loops[id] = true
	var fire func(t float64)
	fire = func(t float64) {
		clock.ScheduleEvent(t, func(c *Clock) {
			if !clock.loops[id] {
				return // cancelled: decline to enqueue the successor.
			}
			cb(c)
			if clock.loops[id] {
				fire(t + delay)
			}
		})
	}
	fire(start)
	return id
}

// CancelLoop retires a loop id. The next firing in progress will see the id
// is no longer active and decline to schedule its successor.
func CancelLoop(clock *Clock, id uuid.UUID) {
	delete(clock.loops, id)
}
