package attr

import (
	"fmt"

	"github.com/artpar/attrgate/core/diag"
)

// MatchAll applies each raw node to the schema in input order and returns the
// updated schema. The walk never stops early: every problem is reported to
// sink so a caller sees everything from one pass. Repeated invocations
// accumulate further nodes into the same schema, with duplicates reported by
// each slot's policy rather than overwritten.
func MatchAll(sink diag.Sink, schema Schema, nodes []RawNode) Schema {
	for _, node := range nodes {
		schema = matchNode(sink, schema, node)
	}
	return schema
}

// matchNode matches one raw node against the schema. An unrecognized name is
// reported and the node dropped; there is no side bucket for unknown nodes.
func matchNode(sink diag.Sink, schema Schema, node RawNode) Schema {
	out := make(Schema, len(schema))
	found := false
	for i, decl := range schema {
		if decl.Name == node.Name {
			found = true
			out[i] = matchModel(sink, decl, node)
		} else {
			out[i] = decl
		}
	}
	if !found {
		sink.Report(diag.Error, node.Span, fmt.Sprintf("unknown attribute %q", node.Name))
	}
	return out
}

// matchModel dispatches on (declared model, node shape). A shape that does
// not pair with the declared model is reported and the declaration returned
// unchanged.
func matchModel(sink diag.Sink, decl Node, node RawNode) Node {
	switch m := decl.Model.(type) {
	case Flag:
		if node.Shape == ShapeWord {
			m.Slot = m.Slot.Update(sink, Unit{}, node.Span)
			decl.Model = m
			return decl
		}
	case KeyLit:
		if node.Shape == ShapeKeyValue {
			m.Lit = matchLit(sink, m.Lit, node.Lit, node.Span)
			decl.Model = m
			return decl
		}
	case Sub:
		if node.Shape == ShapeList {
			m.Schema = MatchAll(sink, m.Schema, node.Items)
			decl.Model = m
			return decl
		}
	}
	sink.Report(diag.Error, node.Span, fmt.Sprintf(
		"model mismatch: attribute %q expects %s", decl.Name, modelShape(decl.Model)))
	return decl
}

// matchLit updates the wrapped slot when the raw literal's kind agrees with
// the declared kind. On disagreement the mismatch is reported with the
// display name and a canonical example of both kinds, and the declared model
// is returned unchanged; the mismatched value is never consumed.
func matchLit(sink diag.Sink, decl LitModel, lit Lit, span diag.Span) LitModel {
	if decl.Kind() != lit.Kind {
		sink.Report(diag.Error, span, fmt.Sprintf(
			"expected %s literal (e.g. `key = %s`) but got %s literal (e.g. `key = %s`)",
			decl.Kind(), decl.Kind().Example(), lit.Kind, lit.Kind.Example()))
		return decl
	}
	switch m := decl.(type) {
	case StrLit:
		m.Slot = m.Slot.Update(sink, lit.Str, span)
		return m
	case BytesLit:
		m.Slot = m.Slot.Update(sink, lit.Bytes, span)
		return m
	case ByteLit:
		m.Slot = m.Slot.Update(sink, lit.Byte, span)
		return m
	case CharLit:
		m.Slot = m.Slot.Update(sink, lit.Char, span)
		return m
	case IntLit:
		m.Slot = m.Slot.Update(sink, lit.Int, span)
		return m
	case UintLit:
		m.Slot = m.Slot.Update(sink, lit.Uint, span)
		return m
	case IntUnsuffixedLit:
		m.Slot = m.Slot.Update(sink, lit.IntUnsuffixed, span)
		return m
	case FloatLit:
		m.Slot = m.Slot.Update(sink, lit.Float, span)
		return m
	case FloatUnsuffixedLit:
		m.Slot = m.Slot.Update(sink, lit.FloatUnsuffixed, span)
		return m
	case NilLit:
		m.Slot = m.Slot.Update(sink, Unit{}, span)
		return m
	case BoolLit:
		m.Slot = m.Slot.Update(sink, lit.Bool, span)
		return m
	default:
		panic("attr: unhandled literal model")
	}
}

func modelShape(m Model) string {
	switch m.(type) {
	case Flag:
		return "a bare flag"
	case KeyLit:
		return "a key=value pair"
	case Sub:
		return "a nested attribute list"
	default:
		panic("attr: unhandled model")
	}
}
