package strloin

// Document is an immutable backing string held by a Corpus cache.
type Document struct {
	s string
}

// NewDocument wraps text as a Document.
func NewDocument(text string) Document {
	return Document{s: text}
}

// Len reports the document size for cache byte accounting.
func (d Document) Len() int {
	return len(d.s)
}

func (d Document) String() string {
	return d.s
}

// Strloin returns a holder borrowing from the document.
func (d Document) Strloin(opts ...Option) *Strloin {
	return New(d.s, opts...)
}
