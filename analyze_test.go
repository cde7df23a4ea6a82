package strloin

import (
	"errors"
	"testing"
)

func TestAnalyzeContiguity(t *testing.T) {
	cases := []struct {
		name   string
		ranges []Range
		ok     bool
		bounds Range
	}{
		{"none", nil, true, Range{0, 0}},
		{"empty", []Range{{0, 0}}, true, Range{0, 0}},
		{"empty mid", []Range{{3, 3}}, true, Range{0, 0}},
		{"single", []Range{{0, 2}}, true, Range{0, 2}},
		{"adjacent", []Range{{0, 2}, {2, 4}}, true, Range{0, 4}},
		{"chain", []Range{{0, 2}, {2, 4}, {4, 6}}, true, Range{0, 6}},
		{"empty between", []Range{{0, 2}, {7, 7}, {2, 4}}, true, Range{0, 4}},
		{"empty first", []Range{{5, 5}, {2, 4}}, true, Range{2, 4}},
		{"gap", []Range{{0, 2}, {4, 6}}, false, Range{}},
		{"gap of one", []Range{{0, 2}, {3, 4}}, false, Range{}},
		{"out of order", []Range{{2, 4}, {0, 2}}, false, Range{}},
		{"overlap", []Range{{0, 2}, {0, 4}}, false, Range{}},
		{"duplicate", []Range{{0, 2}, {0, 2}}, false, Range{}},
		{"contained", []Range{{0, 6}, {2, 4}}, false, Range{}},
		{"gaps", []Range{{0, 2}, {3, 5}, {6, 8}}, false, Range{}},
		{"gap then chain", []Range{{0, 2}, {3, 5}, {5, 7}}, false, Range{}},
		{"chain then gap", []Range{{0, 2}, {2, 5}, {6, 7}}, false, Range{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := Analyze(c.ranges, 8, RejectInvalid)
			if err != nil {
				t.Fatalf("Analyze failed: %v", err)
			}
			if out.Contiguous != c.ok {
				t.Fatalf("Contiguous = %v, want %v", out.Contiguous, c.ok)
			}
			if out.Bounds != c.bounds {
				t.Fatalf("Bounds = %s, want %s", out.Bounds, c.bounds)
			}
		})
	}
}

func TestAnalyzeSize(t *testing.T) {
	out, err := Analyze([]Range{{6, 11}, {5, 6}, {0, 5}, {3, 3}}, 11, SkipInvalid)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if out.Size != 11 {
		t.Fatalf("Size = %d, want 11", out.Size)
	}
}

func TestAnalyzeSkipInvalid(t *testing.T) {
	cases := []struct {
		name    string
		ranges  []Range
		ok      bool
		bounds  Range
		skipped int
	}{
		{"reversed alone", []Range{{2, 0}}, true, Range{0, 0}, 1},
		{"beyond length", []Range{{0, 20}}, true, Range{0, 0}, 1},
		{"negative", []Range{{-2, 3}}, true, Range{0, 0}, 1},
		{"reversed first", []Range{{3, 2}, {2, 4}}, true, Range{2, 4}, 1},
		{"reversed last", []Range{{0, 2}, {2, 1}}, true, Range{0, 2}, 1},
		{"invalid between", []Range{{0, 2}, {9, 30}, {2, 4}}, true, Range{0, 4}, 1},
		{"invalid with gap", []Range{{0, 2}, {5, 1}, {3, 4}}, false, Range{}, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := Analyze(c.ranges, 11, SkipInvalid)
			if err != nil {
				t.Fatalf("Analyze failed: %v", err)
			}
			if out.Contiguous != c.ok || out.Bounds != c.bounds {
				t.Fatalf("got (%v, %s), want (%v, %s)", out.Contiguous, out.Bounds, c.ok, c.bounds)
			}
			if out.Skipped != c.skipped {
				t.Fatalf("Skipped = %d, want %d", out.Skipped, c.skipped)
			}
		})
	}
}

func TestAnalyzeRejectInvalid(t *testing.T) {
	for _, rs := range [][]Range{
		{{2, 0}},
		{{0, 20}},
		{{3, 2}, {2, 4}},
		{{0, 2}, {2, 1}},
		{{0, 2}, {4, 6}, {12, 12}},
	} {
		if _, err := Analyze(rs, 11, RejectInvalid); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("Analyze(%v): expected ErrInvalidRange, got %v", rs, err)
		}
	}
}

func TestAnalyzeUncheckedMatchesChecked(t *testing.T) {
	for _, rs := range [][]Range{
		nil,
		{{0, 5}},
		{{0, 5}, {5, 11}},
		{{0, 5}, {6, 11}},
		{{6, 11}, {0, 5}},
		{{3, 3}, {0, 2}, {2, 2}, {2, 4}},
	} {
		want, err := Analyze(rs, 11, RejectInvalid)
		if err != nil {
			t.Fatalf("Analyze failed: %v", err)
		}
		if got := analyzeUnchecked(rs); got != want {
			t.Errorf("analyzeUnchecked(%v) = %+v, want %+v", rs, got, want)
		}
	}
}

func TestAnalyzeUncheckedReversed(t *testing.T) {
	for _, rs := range [][]Range{
		{{5, 3}},
		{{0, 5}, {5, 3}},
		{{0, 5}, {5, 3}, {3, 11}},
	} {
		if out := analyzeUnchecked(rs); out.Contiguous {
			t.Errorf("analyzeUnchecked(%v) = %+v, want fragmented", rs, out)
		}
	}
}
