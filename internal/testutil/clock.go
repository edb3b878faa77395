package testutil

// SeqClock hands out trace sequence numbers for one program execution.
//
// Programs are single-threaded, so SeqClock carries no lock. The first call
// to Next returns 1; Reset starts the sequence over so a scenario rerun
// produces byte-identical traces.
type SeqClock struct {
	seq int64
}

// NewSeqClock creates a clock starting at 0.
func NewSeqClock() *SeqClock {
	return &SeqClock{}
}

// Next increments and returns the next sequence number.
func (c *SeqClock) Next() int64 {
	c.seq++
	return c.seq
}

// Current returns the last issued sequence number.
func (c *SeqClock) Current() int64 {
	return c.seq
}

// Reset rewinds the clock to 0.
func (c *SeqClock) Reset() {
	c.seq = 0
}
