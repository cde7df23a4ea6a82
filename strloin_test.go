package strloin

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"unsafe"
)

const hello = "hello world"

func fromRangesOK(t *testing.T, s *Strloin, ranges []Range, want string, borrow bool) Cow {
	t.Helper()
	got, err := s.FromRanges(ranges)
	if err != nil {
		t.Fatalf("FromRanges(%v) failed: %v", ranges, err)
	}
	if !got.EqualString(want) {
		t.Fatalf("FromRanges(%v) = %q, want %q", ranges, got, want)
	}
	if borrow && !got.IsBorrowed() {
		t.Fatalf("FromRanges(%v): expected borrow", ranges)
	}
	if !borrow && !got.IsOwned() {
		t.Fatalf("FromRanges(%v): expected owned", ranges)
	}
	return got
}

func TestFromRanges(t *testing.T) {
	s := New(hello)

	fromRangesOK(t, s, nil, "", true)
	fromRangesOK(t, s, []Range{{0, 5}}, "hello", true)
	fromRangesOK(t, s, []Range{{6, 11}}, "world", true)
	fromRangesOK(t, s, []Range{{0, 5}, {5, 11}}, "hello world", true)
	fromRangesOK(t, s, []Range{{0, 5}, {6, 11}}, "helloworld", false)
	fromRangesOK(t, s, []Range{{6, 11}, {0, 5}}, "worldhello", false)
	fromRangesOK(t, s, []Range{{6, 11}, {5, 6}, {0, 5}}, "world hello", false)
	fromRangesOK(t, s, []Range{{0, 6}, {0, 5}}, "hello hello", false)
	fromRangesOK(t, s, []Range{{3, 3}}, "", true)
	fromRangesOK(t, s, []Range{{0, 3}, {3, 3}, {3, 5}}, "hello", true)
}

func TestFromRangesSharesSource(t *testing.T) {
	src := strings.Repeat("abcdefgh", 8)
	s := New(src)

	got := fromRangesOK(t, s, []Range{{8, 16}, {16, 40}}, src[8:40], true)
	if unsafe.StringData(got.String()) != unsafe.StringData(src[8:]) {
		t.Fatal("borrowed result does not share the source bytes")
	}
	if b, ok := got.Bounds(); !ok || b != (Range{8, 40}) {
		t.Fatalf("Bounds = %s, %v", b, ok)
	}

	owned := fromRangesOK(t, s, []Range{{0, 8}, {16, 24}}, src[0:8]+src[16:24], false)
	if unsafe.StringData(owned.String()) == unsafe.StringData(src) {
		t.Fatal("owned result aliases the source")
	}
	if _, ok := owned.Bounds(); ok {
		t.Fatal("owned result reported bounds")
	}
}

func TestFromRangesContiguousDoesNotAllocate(t *testing.T) {
	s := New(hello)
	ranges := []Range{{0, 2}, {2, 5}, {5, 5}, {5, 11}}
	allocs := testing.AllocsPerRun(100, func() {
		if _, err := s.FromRanges(ranges); err != nil {
			t.Fatal(err)
		}
	})
	if allocs != 0 {
		t.Fatalf("contiguous FromRanges allocated %.1f times", allocs)
	}
}

func TestFromRangesOwnedAllocatesOnce(t *testing.T) {
	s := New(hello)
	ranges := []Range{{6, 11}, {5, 6}, {0, 5}}
	allocs := testing.AllocsPerRun(100, func() {
		if _, err := s.FromRanges(ranges); err != nil {
			t.Fatal(err)
		}
	})
	if allocs != 1 {
		t.Fatalf("fragmented FromRanges allocated %.1f times, want 1", allocs)
	}
}

func TestFromRangesSkipInvalid(t *testing.T) {
	s := New(hello)

	fromRangesOK(t, s, []Range{{0, 20}}, "", true)
	fromRangesOK(t, s, []Range{{5, 1}}, "", true)
	fromRangesOK(t, s, []Range{{2, 1}, {1, 4}}, "ell", true)
	fromRangesOK(t, s, []Range{{0, 5}, {9, 3}, {5, 11}}, "hello world", true)
	fromRangesOK(t, s, []Range{{6, 11}, {-1, 2}, {0, 5}}, "worldhello", false)
}

func TestFromRangesRejectInvalid(t *testing.T) {
	s := New(hello, WithPolicy(RejectInvalid))
	if s.Policy() != RejectInvalid {
		t.Fatalf("Policy = %s", s.Policy())
	}

	for _, rs := range [][]Range{
		{{0, 20}},
		{{1, 0}},
		{{2, 1}, {1, 4}},
		{{6, 11}, {-1, 2}, {0, 5}},
	} {
		c, err := s.FromRanges(rs)
		if !errors.Is(err, ErrInvalidRange) {
			t.Errorf("FromRanges(%v): expected ErrInvalidRange, got %v", rs, err)
		}
		if c.Len() != 0 {
			t.Errorf("FromRanges(%v): expected empty result on error, got %q", rs, c)
		}
	}

	fromRangesOK(t, s, []Range{{0, 5}, {6, 11}}, "helloworld", false)
}

func TestFromRange(t *testing.T) {
	s := New(hello)

	c, err := s.FromRange(NewRange(6, 11))
	if err != nil {
		t.Fatalf("FromRange failed: %v", err)
	}
	if !c.IsBorrowed() || !c.EqualString("world") {
		t.Fatalf("FromRange = %q (borrowed=%v)", c, c.IsBorrowed())
	}

	if c, err = s.FromRange(NewRange(4, 4)); err != nil || !c.IsBorrowed() || c.Len() != 0 {
		t.Fatalf("empty FromRange = %q, %v", c, err)
	}
	if c, err = s.FromRange(NewRange(0, 20)); err != nil || c.Len() != 0 {
		t.Fatalf("skipped FromRange = %q, %v", c, err)
	}

	strict := New(hello, WithPolicy(RejectInvalid))
	if _, err := strict.FromRange(NewRange(0, 20)); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestFromRangesUnchecked(t *testing.T) {
	s := New(hello)

	c := s.FromRangesUnchecked([]Range{{0, 5}, {5, 11}})
	if !c.IsBorrowed() || !c.EqualString(hello) {
		t.Fatalf("unchecked contiguous = %q (borrowed=%v)", c, c.IsBorrowed())
	}
	c = s.FromRangesUnchecked([]Range{{6, 11}, {0, 5}})
	if !c.IsOwned() || !c.EqualString("worldhello") {
		t.Fatalf("unchecked fragmented = %q (owned=%v)", c, c.IsOwned())
	}
}

func TestFromRangesUncheckedPanicsOutOfBounds(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-bounds range")
		}
	}()
	New(hello).FromRangesUnchecked([]Range{{0, 20}})
}

func TestFromRangesUncheckedPanicsReversed(t *testing.T) {
	s := New(hello)
	for _, rs := range [][]Range{
		{{0, 5}, {5, 3}},
		{{0, 5}, {5, 3}, {3, 11}},
		{{5, 3}, {3, 11}},
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("FromRangesUnchecked(%v) did not panic", rs)
				}
			}()
			got := s.FromRangesUnchecked(rs)
			t.Errorf("FromRangesUnchecked(%v) = %q (borrowed=%v)", rs, got, got.IsBorrowed())
		}()
	}
}

func TestFromRangesIdempotent(t *testing.T) {
	s := New(hello)
	for _, rs := range [][]Range{{{0, 5}, {5, 11}}, {{6, 11}, {0, 5}}} {
		a, _ := s.FromRanges(rs)
		b, _ := s.FromRanges(rs)
		if !a.Equal(b) || a.IsBorrowed() != b.IsBorrowed() {
			t.Fatalf("FromRanges(%v) not idempotent: %q vs %q", rs, a, b)
		}
	}
}

// chained is a straightforward restatement of the contiguity rule used to
// cross-check Analyze on random inputs.
func chained(rs []Range, n int) bool {
	var prev *Range
	for i := range rs {
		r := rs[i]
		if !r.Valid(n) || r.Empty() {
			continue
		}
		if prev != nil && prev.End != r.Start {
			return false
		}
		prev = &rs[i]
	}
	return true
}

func TestFromRangesRandomRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	src := "the quick brown fox jumps over the lazy dog"
	s := New(src)

	for i := 0; i < 2000; i++ {
		rs := make([]Range, rng.Intn(5))
		pos := rng.Intn(len(src) + 1)
		for j := range rs {
			switch rng.Intn(4) {
			case 0:
				// continue the chain
				end := pos + rng.Intn(len(src)-pos+1)
				rs[j] = Range{pos, end}
				pos = end
			default:
				rs[j] = Range{rng.Intn(len(src)+4) - 2, rng.Intn(len(src)+4) - 2}
			}
		}

		var want strings.Builder
		for _, r := range rs {
			if r.Valid(len(src)) {
				want.WriteString(src[r.Start:r.End])
			}
		}

		got, err := s.FromRanges(rs)
		if err != nil {
			t.Fatalf("FromRanges(%v) failed: %v", rs, err)
		}
		if !got.EqualString(want.String()) {
			t.Fatalf("FromRanges(%v) = %q, want %q", rs, got, want.String())
		}
		if got.IsBorrowed() != chained(rs, len(src)) {
			t.Fatalf("FromRanges(%v): borrowed = %v, want %v", rs, got.IsBorrowed(), !got.IsBorrowed())
		}
	}
}

func TestFromRangesConcurrent(t *testing.T) {
	s := New(hello)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				c, err := s.FromRanges([]Range{{6, 11}, {5, 6}, {0, 5}})
				if err != nil || !c.EqualString("world hello") {
					t.Errorf("FromRanges = %q, %v", c, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestWithJoiner(t *testing.T) {
	s := New(hello, WithJoiner(InternJoiner{}))
	a := fromRangesOK(t, s, []Range{{6, 11}, {0, 5}}, "worldhello", false)
	b := fromRangesOK(t, s, []Range{{6, 11}, {0, 5}}, "worldhello", false)
	if unsafe.StringData(a.String()) != unsafe.StringData(b.String()) {
		t.Fatal("interned results do not share storage")
	}

	if New(hello, WithJoiner(nil)).joiner == nil {
		t.Fatal("nil joiner replaced the default")
	}
}
