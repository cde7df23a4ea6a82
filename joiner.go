package strloin

import (
	"strings"
	"unique"
)

// Joiner materialises the owned result of a fragmented request. Join must
// return the concatenation of src[r.Start:r.End] for every r in ranges, in
// order. Every range is valid for src and size is their summed length.
type Joiner interface {
	Join(src string, ranges []Range, size int) string
}

// BuilderJoiner concatenates into a strings.Builder grown to the final size,
// so the result is a single allocation.
type BuilderJoiner struct{}

func (BuilderJoiner) Join(src string, ranges []Range, size int) string {
	var b strings.Builder
	b.Grow(size)
	for _, r := range ranges {
		b.WriteString(src[r.Start:r.End])
	}
	return b.String()
}

// InternJoiner canonicalises owned results so that repeated fragmented
// requests yielding the same content share one string. Useful when a server
// answers the same scattered ranges many times over.
type InternJoiner struct{}

func (InternJoiner) Join(src string, ranges []Range, size int) string {
	s := BuilderJoiner{}.Join(src, ranges, size)
	return unique.Make(s).Value()
}
