package attr

import "github.com/artpar/attrgate/core/diag"

// Slot is single-assignment storage for a decoded attribute value, its
// provenance, and the duplicate policy that governs a second write. The zero
// value is an empty slot with a zero (Silent) policy; declared slots should
// be built with NewSlot.
//
// Slots follow a consume-and-return discipline: Update returns the new slot
// and the receiver must be considered spent.
type Slot[T any] struct {
	value T
	set   bool
	span  diag.Span
	dup   diag.DuplicatePolicy
}

// NewSlot returns an empty slot governed by the given duplicate policy.
func NewSlot[T any](dup diag.DuplicatePolicy) Slot[T] {
	return Slot[T]{dup: dup}
}

// Update fills the slot on first write. On a later write the duplicate policy
// is invoked against sink with the new and previous spans, the incoming value
// is discarded, and the first value is retained. A duplicate is reported,
// never adopted.
func (s Slot[T]) Update(sink diag.Sink, value T, span diag.Span) Slot[T] {
	if s.set {
		s.dup.Issue(sink, span, s.span)
		return s
	}
	s.value = value
	s.set = true
	s.span = span
	return s
}

// HasValue reports whether the slot has been filled.
func (s Slot[T]) HasValue() bool { return s.set }

// Value returns the held value and whether one is present.
func (s Slot[T]) Value() (T, bool) { return s.value, s.set }

// ValueOr returns the held value, or def when the slot is empty.
func (s Slot[T]) ValueOr(def T) T {
	if !s.set {
		return def
	}
	return s.value
}

// Span returns the location of the first write, or the zero span when empty.
func (s Slot[T]) Span() diag.Span { return s.span }
