// Package strloin extracts text from a backing string by index ranges,
// borrowing a subslice when the ranges are contiguous and copying only when
// they are not.
package strloin

import (
	"github.com/sirupsen/logrus"
)

// Strloin holds a source string for conditionally borrowing. It is immutable
// after New and safe for concurrent use.
type Strloin struct {
	source string
	policy Policy
	joiner Joiner
}

// Option configures a Strloin.
type Option func(*Strloin)

// WithPolicy sets how checked calls treat invalid ranges. The default is
// SkipInvalid.
func WithPolicy(p Policy) Option {
	return func(s *Strloin) {
		s.policy = p
	}
}

// WithJoiner sets the strategy used to build owned results.
func WithJoiner(j Joiner) Option {
	return func(s *Strloin) {
		if j != nil {
			s.joiner = j
		}
	}
}

// New constructs a Strloin over source.
func New(source string, opts ...Option) *Strloin {
	s := &Strloin{
		source: source,
		policy: SkipInvalid,
		joiner: BuilderJoiner{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Source returns the backing string.
func (s *Strloin) Source() string { return s.source }

// Len returns the length of the backing string.
func (s *Strloin) Len() int { return len(s.source) }

// Policy returns the invalid-range policy in effect.
func (s *Strloin) Policy() Policy { return s.policy }

// Analyze runs the contiguity analysis against the backing string.
func (s *Strloin) Analyze(ranges []Range) (Outcome, error) {
	return Analyze(ranges, len(s.source), s.policy)
}

// FromRanges extracts the concatenation of the given ranges. If they form a
// single contiguous region the result borrows from the source string;
// otherwise they are collected into an owned string.
//
//	s := strloin.New("hello world")
//	s.FromRanges([]strloin.Range{{0, 5}})          // borrowed "hello"
//	s.FromRanges([]strloin.Range{{0, 5}, {5, 11}}) // borrowed "hello world"
//	s.FromRanges([]strloin.Range{{0, 5}, {6, 11}}) // owned "helloworld"
//
// The error is non-nil only under RejectInvalid.
func (s *Strloin) FromRanges(ranges []Range) (Cow, error) {
	out, err := s.Analyze(ranges)
	if err != nil {
		return Cow{}, err
	}
	if out.Skipped > 0 {
		logrus.Debugf("strloin: skipped %d invalid of %d ranges over length %d", out.Skipped, len(ranges), len(s.source))
		if !out.Contiguous {
			ranges = validRanges(ranges, len(s.source))
		}
	}
	return s.build(out, ranges), nil
}

// FromRange is FromRanges for a single range.
func (s *Strloin) FromRange(r Range) (Cow, error) {
	if !r.Valid(len(s.source)) {
		if s.policy == RejectInvalid {
			return Cow{}, invalidRange(r, len(s.source))
		}
		logrus.Debugf("strloin: skipped invalid range %s over length %d", r, len(s.source))
		return Cow{}, nil
	}
	if r.Empty() {
		return Cow{}, nil
	}
	return Borrowed(s.source, r), nil
}

// FromRangesUnchecked is FromRanges without validation, for callers that
// have already checked their ranges. An out-of-bounds or reversed range
// panics with a runtime slice error.
func (s *Strloin) FromRangesUnchecked(ranges []Range) Cow {
	return s.build(analyzeUnchecked(ranges), ranges)
}

// build materialises out. ranges must all be valid for the source.
func (s *Strloin) build(out Outcome, ranges []Range) Cow {
	if out.Contiguous {
		return Borrowed(s.source, out.Bounds)
	}
	return Owned(s.joiner.Join(s.source, ranges, out.Size))
}

// validRanges returns the ranges of rs that are valid for length n.
func validRanges(rs []Range, n int) []Range {
	kept := make([]Range, 0, len(rs))
	for _, r := range rs {
		if r.Valid(n) {
			kept = append(kept, r)
		}
	}
	return kept
}
