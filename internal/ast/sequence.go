package ast

import "github.com/mago-go/phrix/internal/span"

// Sequence is an ordered list of T with no separators.
type Sequence[T any] struct {
	Items []T
}

// TokenSeparatedSequence is an ordered list of items plus an
// equal-or-one-shorter list of separator (comma) spans, preserving
// trailing-separator information: len(Separators) is always either
// len(Items) or len(Items)-1.
type TokenSeparatedSequence[T any] struct {
	Items      []T
	Separators []span.Span
}

// HasTrailingSeparator reports whether the last separator appears
// after the last item (i.e. len(Separators) == len(Items)).
func (s TokenSeparatedSequence[T]) HasTrailingSeparator() bool {
	return len(s.Separators) == len(s.Items) && len(s.Items) > 0
}

// Valid reports whether the separator-accounting invariant holds.
func (s TokenSeparatedSequence[T]) Valid() bool {
	return len(s.Separators) == len(s.Items) || len(s.Separators) == len(s.Items)-1
}
