package strloin

import (
	"io"
	"strings"
)

// Cow is a copy-on-write string: either a borrowed slice of a backing string
// or an owned, freshly allocated string. The zero value is an empty borrowed
// view.
//
// A borrowed Cow shares memory with its backing string and keeps it
// reachable for as long as the Cow is.
type Cow struct {
	s      string
	bounds Range
	owned  bool
}

// Borrowed returns a Cow viewing src[bounds.Start:bounds.End] without
// copying. It panics if bounds is not valid for src.
func Borrowed(src string, bounds Range) Cow {
	return Cow{s: src[bounds.Start:bounds.End], bounds: bounds}
}

// Owned wraps s as an owned Cow.
func Owned(s string) Cow {
	return Cow{s: s, owned: true}
}

// IsBorrowed reports whether c shares memory with a backing string.
func (c Cow) IsBorrowed() bool { return !c.owned }

// IsOwned reports whether c holds its own copy of the content.
func (c Cow) IsOwned() bool { return c.owned }

// Bounds returns the span of the backing string a borrowed Cow covers.
// ok is false for owned values.
func (c Cow) Bounds() (bounds Range, ok bool) {
	if c.owned {
		return Range{}, false
	}
	return c.bounds, true
}

// Len returns the content length in bytes.
func (c Cow) Len() int { return len(c.s) }

func (c Cow) String() string { return c.s }

// Bytes returns a copy of the content.
func (c Cow) Bytes() []byte { return []byte(c.s) }

// Equal compares content only; a borrowed and an owned Cow with the same
// bytes are equal.
func (c Cow) Equal(other Cow) bool { return c.s == other.s }

// EqualString reports whether c's content is s.
func (c Cow) EqualString(s string) bool { return c.s == s }

// WriteTo writes the content to w.
func (c Cow) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, c.s)
	return int64(n), err
}

// Detach returns an owned copy of c, releasing any reference to the backing
// string. Owned values are returned as is.
func (c Cow) Detach() Cow {
	if c.owned {
		return c
	}
	return Owned(strings.Clone(c.s))
}
