package attr

import "github.com/artpar/attrgate/core/diag"

// LitKind identifies one of the closed set of primitive literal shapes a
// key=value attribute may carry. The set is closed: every switch over LitKind
// or LitModel in this package lists all kinds, so adding one forces every
// consumer to be updated.
type LitKind int

const (
	KindStr LitKind = iota
	KindBytes
	KindByte
	KindChar
	KindInt
	KindUint
	KindIntUnsuffixed
	KindFloat
	KindFloatUnsuffixed
	KindNil
	KindBool
)

// String returns the display name used in diagnostics.
func (k LitKind) String() string {
	switch k {
	case KindStr:
		return "string"
	case KindBytes:
		return "binary"
	case KindByte:
		return "byte"
	case KindChar:
		return "char"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindIntUnsuffixed:
		return "unsuffixed int"
	case KindFloat:
		return "float"
	case KindFloatUnsuffixed:
		return "unsuffixed float"
	case KindNil:
		return "nil"
	case KindBool:
		return "boolean"
	default:
		return "unknown"
	}
}

// Example returns a canonical example literal for the kind, used to build
// kind-mismatch messages.
func (k LitKind) Example() string {
	switch k {
	case KindStr:
		return `"hello world"`
	case KindBytes:
		return "0b01010101"
	case KindByte:
		return "b'9'"
	case KindChar:
		return "'a'"
	case KindInt:
		return "38"
	case KindUint:
		return "38u8"
	case KindIntUnsuffixed:
		return "42"
	case KindFloat:
		return "0.01f32"
	case KindFloatUnsuffixed:
		return "0.1"
	case KindNil:
		return "()"
	case KindBool:
		return "true"
	default:
		return "?"
	}
}

// Unit is the payload of presence-only and nil slots.
type Unit struct{}

// IntSuffix is the width tag of a signed integer literal (i8..i64).
type IntSuffix string

// UintSuffix is the width tag of an unsigned integer literal (u8..u64).
type UintSuffix string

// FloatSuffix is the width tag of a float literal (f32 or f64).
type FloatSuffix string

// IntVal is a signed integer literal with its width suffix.
type IntVal struct {
	Value  int64
	Suffix IntSuffix
}

// UintVal is an unsigned integer literal with its width suffix.
type UintVal struct {
	Value  uint64
	Suffix UintSuffix
}

// FloatVal is a suffixed float literal.
type FloatVal struct {
	Value  float64
	Suffix FloatSuffix
}

// LitModel is the declared side of a key=literal attribute: one variant per
// literal kind, each wrapping a slot typed to that kind's payload. The
// selected variant is fixed when the owning node is declared; matching and
// merging only change the wrapped slot's contents.
type LitModel interface {
	// Kind returns the declared literal kind.
	Kind() LitKind

	litModel()
}

// StrLit declares a string literal.
type StrLit struct{ Slot Slot[string] }

// BytesLit declares a binary blob literal.
type BytesLit struct{ Slot Slot[[]byte] }

// ByteLit declares a single byte literal.
type ByteLit struct{ Slot Slot[byte] }

// CharLit declares a character literal.
type CharLit struct{ Slot Slot[rune] }

// IntLit declares a signed integer literal with a width suffix.
type IntLit struct{ Slot Slot[IntVal] }

// UintLit declares an unsigned integer literal with a width suffix.
type UintLit struct{ Slot Slot[UintVal] }

// IntUnsuffixedLit declares an integer literal without a width suffix.
type IntUnsuffixedLit struct{ Slot Slot[uint64] }

// FloatLit declares a suffixed float literal.
type FloatLit struct{ Slot Slot[FloatVal] }

// FloatUnsuffixedLit declares a float literal without a suffix.
type FloatUnsuffixedLit struct{ Slot Slot[float64] }

// NilLit declares a nil/unit literal.
type NilLit struct{ Slot Slot[Unit] }

// BoolLit declares a boolean literal.
type BoolLit struct{ Slot Slot[bool] }

func (StrLit) Kind() LitKind             { return KindStr }
func (BytesLit) Kind() LitKind           { return KindBytes }
func (ByteLit) Kind() LitKind            { return KindByte }
func (CharLit) Kind() LitKind            { return KindChar }
func (IntLit) Kind() LitKind             { return KindInt }
func (UintLit) Kind() LitKind            { return KindUint }
func (IntUnsuffixedLit) Kind() LitKind   { return KindIntUnsuffixed }
func (FloatLit) Kind() LitKind           { return KindFloat }
func (FloatUnsuffixedLit) Kind() LitKind { return KindFloatUnsuffixed }
func (NilLit) Kind() LitKind             { return KindNil }
func (BoolLit) Kind() LitKind            { return KindBool }

func (StrLit) litModel()             {}
func (BytesLit) litModel()           {}
func (ByteLit) litModel()            {}
func (CharLit) litModel()            {}
func (IntLit) litModel()             {}
func (UintLit) litModel()            {}
func (IntUnsuffixedLit) litModel()   {}
func (FloatLit) litModel()           {}
func (FloatUnsuffixedLit) litModel() {}
func (NilLit) litModel()             {}
func (BoolLit) litModel()            {}

// NewLit returns an empty literal model of the given kind, its slot governed
// by dup. Panics on an unknown kind: the kind set is closed and a caller
// passing an out-of-range value is a construction bug.
func NewLit(kind LitKind, dup diag.DuplicatePolicy) LitModel {
	switch kind {
	case KindStr:
		return StrLit{Slot: NewSlot[string](dup)}
	case KindBytes:
		return BytesLit{Slot: NewSlot[[]byte](dup)}
	case KindByte:
		return ByteLit{Slot: NewSlot[byte](dup)}
	case KindChar:
		return CharLit{Slot: NewSlot[rune](dup)}
	case KindInt:
		return IntLit{Slot: NewSlot[IntVal](dup)}
	case KindUint:
		return UintLit{Slot: NewSlot[UintVal](dup)}
	case KindIntUnsuffixed:
		return IntUnsuffixedLit{Slot: NewSlot[uint64](dup)}
	case KindFloat:
		return FloatLit{Slot: NewSlot[FloatVal](dup)}
	case KindFloatUnsuffixed:
		return FloatUnsuffixedLit{Slot: NewSlot[float64](dup)}
	case KindNil:
		return NilLit{Slot: NewSlot[Unit](dup)}
	case KindBool:
		return BoolLit{Slot: NewSlot[bool](dup)}
	default:
		panic("attr: unknown literal kind")
	}
}
