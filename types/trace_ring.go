// A fixed-capacity circular buffer for codec trace lines. Kept deliberately
// simple, in the spirit of container/ring, but backed by a slice so that the
// wrap point and the empty state are explicit.

package types

// A TraceRing retains the most recent trace lines in insertion order. Once
// full, each new line silently overwrites the oldest one. The zero value is
// not usable; use NewTraceRing.
type TraceRing struct {
	entries []string
	next    int // index the next line will be written to
	count   int // number of valid entries, 0 means empty
}

// NewTraceRing creates a ring retaining at most capacity lines.
func NewTraceRing(capacity int) *TraceRing {
	if capacity <= 0 {
		capacity = 1
	}
	return &TraceRing{
		entries: make([]string, capacity),
	}
}

// Append stores one line, overwriting the oldest retained line when the ring
// is full.
func (r *TraceRing) Append(line string) {
	r.entries[r.next] = line
	r.next = (r.next + 1) % len(r.entries)
	if r.count < len(r.entries) {
		r.count++
	}
}

// Len reports how many lines are currently retained.
func (r *TraceRing) Len() int {
	return r.count
}

// Drain returns the retained lines in chronological order, oldest first,
// spanning the wrap point when the ring has overwritten old entries.
func (r *TraceRing) Drain() []string {
	lines := make([]string, 0, r.count)
	first := (r.next - r.count + len(r.entries)) % len(r.entries)
	for i := 0; i < r.count; i++ {
		lines = append(lines, r.entries[(first+i)%len(r.entries)])
	}
	return lines
}
