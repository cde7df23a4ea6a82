package strloin

// Policy decides what the checked entry points do with invalid ranges.
type Policy int

const (
	// SkipInvalid treats an invalid range as empty.
	SkipInvalid Policy = iota
	// RejectInvalid fails the whole call with ErrInvalidRange.
	RejectInvalid
)

func (p Policy) String() string {
	switch p {
	case SkipInvalid:
		return "skip"
	case RejectInvalid:
		return "reject"
	default:
		return "unknown"
	}
}

// Outcome is the verdict of Analyze.
type Outcome struct {
	// Contiguous is set when the non-empty ranges, in sequence order, chain
	// into the single span Bounds.
	Contiguous bool
	Bounds     Range
	// Size is the summed length of all valid ranges.
	Size int
	// Skipped counts invalid ranges dropped under SkipInvalid.
	Skipped int
}

// Analyze decides whether ranges, taken in order, describe exactly one
// contiguous span of a string of length n.
//
// Empty ranges never break contiguity. No ranges at all, or only empty ones,
// yield the empty span [0,0). With two or more non-empty ranges each one must
// start exactly where the previous one ended; an overlap, a gap, a duplicate
// or a range that is adjacent only out of sequence order makes the outcome
// fragmented, since the borrowed span would not equal the in-order
// concatenation.
//
// Invalid ranges are counted and skipped under SkipInvalid. Under
// RejectInvalid the first one aborts the call with an error wrapping
// ErrInvalidRange.
func Analyze(ranges []Range, n int, policy Policy) (Outcome, error) {
	var (
		out  = Outcome{Contiguous: true}
		seen bool
	)
	for _, r := range ranges {
		if !r.Valid(n) {
			if policy == RejectInvalid {
				return Outcome{}, invalidRange(r, n)
			}
			out.Skipped++
			continue
		}
		out.Size += r.End - r.Start
		if r.Empty() || !out.Contiguous {
			continue
		}
		if !seen {
			out.Bounds, seen = r, true
			continue
		}
		if r.Start != out.Bounds.End {
			out.Contiguous = false
			out.Bounds = Range{}
			continue
		}
		out.Bounds.End = r.End
	}
	return out, nil
}

// analyzeUnchecked is Analyze without bounds checks. Callers guarantee every
// range is valid for the backing string. A reversed range still forces the
// fragmented outcome so that building the result slices it and panics
// instead of stretching a borrowed span over it.
func analyzeUnchecked(ranges []Range) Outcome {
	out := Outcome{Contiguous: true}
	seen := false
	for _, r := range ranges {
		if r.End < r.Start {
			out.Contiguous = false
			out.Bounds = Range{}
			continue
		}
		out.Size += r.End - r.Start
		if r.Empty() || !out.Contiguous {
			continue
		}
		if !seen {
			out.Bounds, seen = r, true
			continue
		}
		if r.Start != out.Bounds.End {
			out.Contiguous = false
			out.Bounds = Range{}
			continue
		}
		out.Bounds.End = r.End
	}
	return out
}
