package timing

import "time"

// Span is one in-flight measurement of a named region. Obtain one from
// Registry.Start and release it with Stop, conventionally in a defer so
// the measurement records on every exit path, including a panic unwinding
// through the caller.
type Span struct {
	reg   *Registry
	tag   string
	start time.Time
	done  bool
}

// Start opens a span for tag, capturing the start time now.
func (r *Registry) Start(tag string) *Span {
	return &Span{
		reg:   r,
		tag:   tag,
		start: r.clock.Now(),
	}
}

// Stop closes the span and records its duration into the registry.
// Exactly one measurement is recorded per span; calls after the first are
// no-ops.
func (s *Span) Stop() {
	if s.done {
		return
	}

	s.done = true
	s.reg.Record(s.tag, s.reg.clock.Now().Sub(s.start))
}

// Time runs fn inside a span for tag and returns fn's error unchanged.
// The measurement records on every exit path: normal return, error
// return, or a panic propagating out of fn.
func (r *Registry) Time(tag string, fn func() error) error {
	defer r.Start(tag).Stop()

	return fn()
}
