package attr

import "fmt"

// Accessors for reading values out of a final (post-matching/merging) schema.
// All of them panic on contract violations: the schema is statically declared
// by the caller, so querying a name that was never declared, or requesting a
// kind other than the declared one, is a bug in the calling code.

// ByName returns the node declared under name. Panics if name is absent.
func ByName(s Schema, name string) Node {
	for _, n := range s {
		if n.Name == name {
			return n
		}
	}
	panic(fmt.Sprintf("attr: no attribute %q in schema", name))
}

// PlainValue returns the presence slot of a flag attribute.
func PlainValue(s Schema, name string) Slot[Unit] {
	m, ok := ByName(s, name).Model.(Flag)
	if !ok {
		panic(fmt.Sprintf("attr: attribute %q is not a flag", name))
	}
	return m.Slot
}

// PlainValueOr reports whether the flag attribute was present, or def when
// the slot is empty.
func PlainValueOr(s Schema, name string, def bool) bool {
	if PlainValue(s, name).HasValue() {
		return true
	}
	return def
}

// SubModel returns the nested schema of a sub-attribute.
func SubModel(s Schema, name string) Schema {
	m, ok := ByName(s, name).Model.(Sub)
	if !ok {
		panic(fmt.Sprintf("attr: attribute %q has no sub-attributes", name))
	}
	return m.Schema
}

// LitOf returns the literal model of a key=literal attribute.
func LitOf(s Schema, name string) LitModel {
	m, ok := ByName(s, name).Model.(KeyLit)
	if !ok {
		panic(fmt.Sprintf("attr: attribute %q is not a key=value attribute", name))
	}
	return m.Lit
}

// StrValue returns the slot of a string attribute.
func StrValue(s Schema, name string) Slot[string] {
	return litSlot[string, StrLit](s, name, func(l StrLit) Slot[string] { return l.Slot })
}

// BytesValue returns the slot of a binary attribute.
func BytesValue(s Schema, name string) Slot[[]byte] {
	return litSlot[[]byte, BytesLit](s, name, func(l BytesLit) Slot[[]byte] { return l.Slot })
}

// ByteValue returns the slot of a byte attribute.
func ByteValue(s Schema, name string) Slot[byte] {
	return litSlot[byte, ByteLit](s, name, func(l ByteLit) Slot[byte] { return l.Slot })
}

// CharValue returns the slot of a char attribute.
func CharValue(s Schema, name string) Slot[rune] {
	return litSlot[rune, CharLit](s, name, func(l CharLit) Slot[rune] { return l.Slot })
}

// IntValue returns the slot of a suffixed signed integer attribute.
func IntValue(s Schema, name string) Slot[IntVal] {
	return litSlot[IntVal, IntLit](s, name, func(l IntLit) Slot[IntVal] { return l.Slot })
}

// UintValue returns the slot of a suffixed unsigned integer attribute.
func UintValue(s Schema, name string) Slot[UintVal] {
	return litSlot[UintVal, UintLit](s, name, func(l UintLit) Slot[UintVal] { return l.Slot })
}

// IntUnsuffixedValue returns the slot of an unsuffixed integer attribute.
func IntUnsuffixedValue(s Schema, name string) Slot[uint64] {
	return litSlot[uint64, IntUnsuffixedLit](s, name, func(l IntUnsuffixedLit) Slot[uint64] { return l.Slot })
}

// FloatValue returns the slot of a suffixed float attribute.
func FloatValue(s Schema, name string) Slot[FloatVal] {
	return litSlot[FloatVal, FloatLit](s, name, func(l FloatLit) Slot[FloatVal] { return l.Slot })
}

// FloatUnsuffixedValue returns the slot of an unsuffixed float attribute.
func FloatUnsuffixedValue(s Schema, name string) Slot[float64] {
	return litSlot[float64, FloatUnsuffixedLit](s, name, func(l FloatUnsuffixedLit) Slot[float64] { return l.Slot })
}

// NilValue returns the slot of a nil attribute.
func NilValue(s Schema, name string) Slot[Unit] {
	return litSlot[Unit, NilLit](s, name, func(l NilLit) Slot[Unit] { return l.Slot })
}

// BoolValue returns the slot of a boolean attribute.
func BoolValue(s Schema, name string) Slot[bool] {
	return litSlot[bool, BoolLit](s, name, func(l BoolLit) Slot[bool] { return l.Slot })
}

func litSlot[T any, L LitModel](s Schema, name string, slot func(L) Slot[T]) Slot[T] {
	lit := LitOf(s, name)
	l, ok := lit.(L)
	if !ok {
		panic(fmt.Sprintf("attr: attribute %q is declared as %s, not %s",
			name, lit.Kind(), kindOf[L]()))
	}
	return slot(l)
}

func kindOf[L LitModel]() LitKind {
	var zero L
	return zero.Kind()
}
