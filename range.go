package strloin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidRange reports a range with Start > End, a negative Start, or an
// End beyond the backing string.
var ErrInvalidRange = errors.New("invalid range")

// Range is a half-open byte interval [Start, End) over a backing string.
type Range struct {
	Start int
	End   int
}

// NewRange is shorthand for Range{Start: start, End: end}.
func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

// Len returns the number of bytes covered by r, or 0 when r is reversed.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Empty reports whether r covers no bytes.
func (r Range) Empty() bool {
	return r.Start == r.End
}

// Valid reports whether r may index a string of length n.
func (r Range) Valid(n int) bool {
	return 0 <= r.Start && r.Start <= r.End && r.End <= n
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// invalidRange builds the error returned for r against a string of length n.
func invalidRange(r Range, n int) error {
	return fmt.Errorf("%w: %s over length %d", ErrInvalidRange, r, n)
}

// ParseRanges parses a comma separated list of "start:end" pairs, e.g.
// "0:5,6:11". Whitespace around items is ignored and an empty input yields
// no ranges. Reversed pairs parse fine; validity is checked against a
// backing string later.
func ParseRanges(s string) ([]Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ranges := make([]Range, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		lo, hi, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("range %q: missing ':'", part)
		}
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("range %q: bad start: %w", part, err)
		}
		end, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return nil, fmt.Errorf("range %q: bad end: %w", part, err)
		}
		ranges = append(ranges, Range{Start: start, End: end})
	}
	return ranges, nil
}
