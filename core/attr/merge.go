package attr

import (
	"fmt"

	"github.com/artpar/attrgate/core/diag"
)

// Merger combines two independently populated instances of the same declared
// schema shape into one, slot by slot. When both sides hold a value the
// merger's duplicate policy decides how the collision is reported; the first
// input's value is kept.
//
// Merge panics when the inputs are not instances of one declared schema node
// (different names, different model variants, different literal kinds, or
// nested schemas of different lengths). Those are construction errors in the
// calling code, not user-facing diagnostics.
type Merger struct {
	sink diag.Sink
	dup  diag.DuplicatePolicy
}

// NewMerger returns a merger reporting duplicate collisions to sink under dup.
func NewMerger(sink diag.Sink, dup diag.DuplicatePolicy) *Merger {
	return &Merger{sink: sink, dup: dup}
}

// MergeSchema merges two schemas node-wise. Both must come from the same
// declaration and therefore have equal length and order.
func (mg *Merger) MergeSchema(a, b Schema) Schema {
	if len(a) != len(b) {
		panic(fmt.Sprintf("attr: merge of schemas with different lengths (%d vs %d)", len(a), len(b)))
	}
	out := make(Schema, len(a))
	for i := range a {
		out[i] = mg.Merge(a[i], b[i])
	}
	return out
}

// Merge merges two instances of one declared attribute.
//
// Nested sub-schemas merge position-wise (first sub-node with first sub-node,
// and so on), not by name lookup. This assumes both inputs enumerate
// sub-attributes in declaration order, which holds whenever both were built
// from the same schema declaration.
func (mg *Merger) Merge(a, b Node) Node {
	if a.Name != b.Name {
		panic(fmt.Sprintf("attr: merge of different attributes %q and %q", a.Name, b.Name))
	}
	switch am := a.Model.(type) {
	case Flag:
		bm, ok := b.Model.(Flag)
		if !ok {
			panic(modelMismatchPanic(a.Name))
		}
		am.Slot = mergeSlot(mg, am.Slot, bm.Slot)
		a.Model = am
	case KeyLit:
		bm, ok := b.Model.(KeyLit)
		if !ok {
			panic(modelMismatchPanic(a.Name))
		}
		am.Lit = mg.mergeLit(a.Name, am.Lit, bm.Lit)
		a.Model = am
	case Sub:
		bm, ok := b.Model.(Sub)
		if !ok {
			panic(modelMismatchPanic(a.Name))
		}
		am.Schema = mg.MergeSchema(am.Schema, bm.Schema)
		a.Model = am
	default:
		panic("attr: unhandled model")
	}
	return a
}

func (mg *Merger) mergeLit(name string, a, b LitModel) LitModel {
	if a.Kind() != b.Kind() {
		panic(fmt.Sprintf("attr: merge of attribute %q with literal kinds %s and %s",
			name, a.Kind(), b.Kind()))
	}
	switch am := a.(type) {
	case StrLit:
		am.Slot = mergeSlot(mg, am.Slot, b.(StrLit).Slot)
		return am
	case BytesLit:
		am.Slot = mergeSlot(mg, am.Slot, b.(BytesLit).Slot)
		return am
	case ByteLit:
		am.Slot = mergeSlot(mg, am.Slot, b.(ByteLit).Slot)
		return am
	case CharLit:
		am.Slot = mergeSlot(mg, am.Slot, b.(CharLit).Slot)
		return am
	case IntLit:
		am.Slot = mergeSlot(mg, am.Slot, b.(IntLit).Slot)
		return am
	case UintLit:
		am.Slot = mergeSlot(mg, am.Slot, b.(UintLit).Slot)
		return am
	case IntUnsuffixedLit:
		am.Slot = mergeSlot(mg, am.Slot, b.(IntUnsuffixedLit).Slot)
		return am
	case FloatLit:
		am.Slot = mergeSlot(mg, am.Slot, b.(FloatLit).Slot)
		return am
	case FloatUnsuffixedLit:
		am.Slot = mergeSlot(mg, am.Slot, b.(FloatUnsuffixedLit).Slot)
		return am
	case NilLit:
		am.Slot = mergeSlot(mg, am.Slot, b.(NilLit).Slot)
		return am
	case BoolLit:
		am.Slot = mergeSlot(mg, am.Slot, b.(BoolLit).Slot)
		return am
	default:
		panic("attr: unhandled literal model")
	}
}

// mergeSlot keeps the only filled side, or a's value when both are filled.
// A double fill is reported once through the merger's policy, at b's span,
// with a note pointing at a's span.
func mergeSlot[T any](mg *Merger, a, b Slot[T]) Slot[T] {
	switch {
	case !a.set:
		return b
	case !b.set:
		return a
	default:
		mg.dup.Issue(mg.sink, b.span, a.span)
		return a
	}
}

func modelMismatchPanic(name string) string {
	return fmt.Sprintf("attr: merge of attribute %q with different models", name)
}
