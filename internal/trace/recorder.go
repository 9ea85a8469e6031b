package trace

import "sync"

// Recorder keeps the last events in memory, oldest first. Library users
// and tests read them back with Events.
type Recorder struct {
	mu     sync.Mutex
	level  Level
	events []Event
	next   int
	full   bool
}

// NewRecorder keeps up to capacity events (4096 when capacity <= 0).
func NewRecorder(capacity int, level Level) *Recorder {
	if capacity <= 0 {
		capacity = 4096
	}
	return &Recorder{level: level, events: make([]Event, capacity)}
}

func (r *Recorder) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !r.level.ShouldEmit(ev.Scope) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[r.next] = *ev
	r.next++
	if r.next == len(r.events) {
		r.next, r.full = 0, true
	}
}

// Events returns a copy of the kept events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.full {
		return append([]Event(nil), r.events[:r.next]...)
	}
	out := make([]Event, 0, len(r.events))
	out = append(out, r.events[r.next:]...)
	return append(out, r.events[:r.next]...)
}

// Of returns the kept events of kind.
func (r *Recorder) Of(kind Kind) []Event {
	var out []Event
	for _, ev := range r.Events() {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

func (r *Recorder) Flush() error  { return nil }
func (r *Recorder) Close() error  { return nil }
func (r *Recorder) Level() Level  { return r.level }
func (r *Recorder) Enabled() bool { return r.level > LevelOff }
