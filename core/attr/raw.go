package attr

import "github.com/artpar/attrgate/core/diag"

// NodeShape is the syntactic shape of a raw annotation node.
type NodeShape int

const (
	// ShapeWord is a bare name with no value.
	ShapeWord NodeShape = iota
	// ShapeKeyValue is a name paired with a literal payload.
	ShapeKeyValue
	// ShapeList is a name paired with a nested list of raw nodes.
	ShapeList
)

// RawNode is one annotation instance found on a host construct, as supplied
// by a front end. Lit is meaningful only for ShapeKeyValue, Items only for
// ShapeList.
type RawNode struct {
	Name  string
	Span  diag.Span
	Shape NodeShape
	Lit   Lit
	Items []RawNode
}

// Lit is a decoded raw literal: a kind tag plus the payload field for that
// kind. Only the field selected by Kind is meaningful.
type Lit struct {
	Kind            LitKind
	Str             string
	Bytes           []byte
	Byte            byte
	Char            rune
	Int             IntVal
	Uint            UintVal
	IntUnsuffixed   uint64
	Float           FloatVal
	FloatUnsuffixed float64
	Bool            bool
}

// WordNode builds a bare-word raw node.
func WordNode(name string, span diag.Span) RawNode {
	return RawNode{Name: name, Span: span, Shape: ShapeWord}
}

// KeyValueNode builds a name=literal raw node.
func KeyValueNode(name string, span diag.Span, lit Lit) RawNode {
	return RawNode{Name: name, Span: span, Shape: ShapeKeyValue, Lit: lit}
}

// ListNode builds a raw node carrying nested sub-nodes.
func ListNode(name string, span diag.Span, items ...RawNode) RawNode {
	return RawNode{Name: name, Span: span, Shape: ShapeList, Items: items}
}

// StrVal builds a string literal payload.
func StrVal(s string) Lit { return Lit{Kind: KindStr, Str: s} }

// BytesVal builds a binary blob literal payload.
func BytesVal(b []byte) Lit { return Lit{Kind: KindBytes, Bytes: b} }

// ByteVal builds a single-byte literal payload.
func ByteVal(b byte) Lit { return Lit{Kind: KindByte, Byte: b} }

// CharVal builds a character literal payload.
func CharVal(r rune) Lit { return Lit{Kind: KindChar, Char: r} }

// IntLitVal builds a suffixed signed integer literal payload.
func IntLitVal(v int64, suffix IntSuffix) Lit {
	return Lit{Kind: KindInt, Int: IntVal{Value: v, Suffix: suffix}}
}

// UintLitVal builds a suffixed unsigned integer literal payload.
func UintLitVal(v uint64, suffix UintSuffix) Lit {
	return Lit{Kind: KindUint, Uint: UintVal{Value: v, Suffix: suffix}}
}

// IntUnsuffixedVal builds an unsuffixed integer literal payload.
func IntUnsuffixedVal(v uint64) Lit { return Lit{Kind: KindIntUnsuffixed, IntUnsuffixed: v} }

// FloatLitVal builds a suffixed float literal payload.
func FloatLitVal(v float64, suffix FloatSuffix) Lit {
	return Lit{Kind: KindFloat, Float: FloatVal{Value: v, Suffix: suffix}}
}

// FloatUnsuffixedVal builds an unsuffixed float literal payload.
func FloatUnsuffixedVal(v float64) Lit { return Lit{Kind: KindFloatUnsuffixed, FloatUnsuffixed: v} }

// NilVal builds a nil literal payload.
func NilVal() Lit { return Lit{Kind: KindNil} }

// BoolVal builds a boolean literal payload.
func BoolVal(b bool) Lit { return Lit{Kind: KindBool, Bool: b} }
