package strloin

// RangeBuffer is a reusable range sequence. Pushing into a buffer and
// calling Take repeatedly keeps the backing array across requests.
// A RangeBuffer is not safe for concurrent use.
type RangeBuffer struct {
	ranges []Range
}

// NewRangeBuffer returns a buffer with room for capacity ranges.
func NewRangeBuffer(capacity int) *RangeBuffer {
	return &RangeBuffer{ranges: make([]Range, 0, capacity)}
}

// Push appends [start, end).
func (b *RangeBuffer) Push(start, end int) {
	b.ranges = append(b.ranges, Range{Start: start, End: end})
}

// PushRange appends r.
func (b *RangeBuffer) PushRange(r Range) {
	b.ranges = append(b.ranges, r)
}

// Len returns the number of buffered ranges.
func (b *RangeBuffer) Len() int { return len(b.ranges) }

// Ranges returns the buffered ranges. The slice is only valid until the next
// Push or Reset.
func (b *RangeBuffer) Ranges() []Range { return b.ranges }

// Reset empties the buffer, keeping its capacity.
func (b *RangeBuffer) Reset() { b.ranges = b.ranges[:0] }

// Take resolves the buffered ranges against s and resets the buffer.
func (b *RangeBuffer) Take(s *Strloin) (Cow, error) {
	c, err := s.FromRanges(b.ranges)
	b.Reset()
	return c, err
}
