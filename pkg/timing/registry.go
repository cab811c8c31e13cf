package timing

import (
	"sync"
	"time"
)

// Entry is one tag's accumulated state at snapshot time.
type Entry struct {
	// Tag identifies the measured region.
	Tag string

	// Total is the cumulative wall-clock time recorded under Tag.
	Total time.Duration

	// Calls is the number of completed measurements recorded under Tag.
	Calls int64
}

// Snapshot is a consistent point-in-time copy of a registry. Entries
// appear in first-insertion order, so repeated snapshots list tags in the
// same order and reports stay stable.
type Snapshot struct {
	Entries []Entry

	// Elapsed is the wall-clock time since the registry was created or
	// last reset.
	Elapsed time.Duration
}

// Registry accumulates per-tag durations and call counts for the life of
// the process. It is the single owner of all per-tag state; spans and
// wrappers hold nothing beyond one in-flight measurement. All methods are
// safe for concurrent use from any number of goroutines.
type Registry struct {
	clock Clock

	mu      sync.Mutex
	order   []string
	entries map[string]*entry
	started time.Time
}

type entry struct {
	total time.Duration
	calls int64
}

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithClock substitutes the registry's time source. Spans started from
// the registry inherit it. Intended for tests.
func WithClock(c Clock) Option {
	return func(r *Registry) {
		r.clock = c
	}
}

// New constructs an empty Registry and stamps its startup time. The
// registry lives for the process lifetime unless explicitly Reset.
func New(opts ...Option) *Registry {
	r := &Registry{
		clock:   SystemClock(),
		entries: make(map[string]*entry),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.started = r.clock.Now()

	return r
}

// Record adds one completed measurement to tag, creating the entry on
// first use. The duration and call count land as a single atomic unit, so
// the two never drift relative to each other under concurrent callers.
// Negative durations are clamped to zero.
func (r *Registry) Record(tag string, d time.Duration) {
	if d < 0 {
		d = 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[tag]
	if !ok {
		e = &entry{}
		r.entries[tag] = e
		r.order = append(r.order, tag)
	}

	e.total += d
	e.calls++
}

// Snapshot returns a consistent copy of all entries in first-insertion
// order plus the elapsed time since startup. The copy is taken under the
// same lock as Record, so no entry is ever observed with a duration that
// lacks its matching count.
func (r *Registry) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := Snapshot{
		Entries: make([]Entry, 0, len(r.order)),
		Elapsed: r.clock.Now().Sub(r.started),
	}

	for _, tag := range r.order {
		e := r.entries[tag]
		snap.Entries = append(snap.Entries, Entry{
			Tag:   tag,
			Total: e.total,
			Calls: e.calls,
		})
	}

	return snap
}

// Reset atomically discards all entries and re-stamps the startup time.
// A Record racing with Reset lands either in the old generation or the
// new one, never split across both.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[string]*entry)
	r.order = nil
	r.started = r.clock.Now()
}
