// Package attr implements a schema-driven validation-and-merge engine for
// nested, typed attribute trees.
//
// A caller declares a Schema once: an ordered list of named nodes, each
// carrying a Model that says whether the attribute is presence-only, a typed
// key=literal, or a nested sub-schema. MatchAll then walks raw annotation
// nodes against the schema, filling slots, rejecting unknown names and shape
// or kind mismatches, and reporting duplicates through each slot's policy.
// Merger combines two populated instances of the same declared shape.
//
// User-facing problems accumulate in a diag.Sink and never stop a walk.
// Violations of caller contracts (accessing a name that was never declared,
// requesting the wrong model or literal kind, merging schemas of different
// shapes) are defects in calling code against a statically known schema;
// those panic.
package attr

import "github.com/artpar/attrgate/core/diag"

// Model describes one attribute's expected shape. It is a closed union:
// Flag, KeyLit, or Sub. The variant is fixed at declaration and never changes
// across matching or merging; only slot contents change.
type Model interface {
	model()
}

// Flag declares a presence-only attribute (a bare word with no value).
type Flag struct{ Slot Slot[Unit] }

// KeyLit declares a key=literal attribute.
type KeyLit struct{ Lit LitModel }

// Sub declares an attribute carrying a nested list of sub-attributes.
type Sub struct{ Schema Schema }

func (Flag) model()   {}
func (KeyLit) model() {}
func (Sub) model()    {}

// Node is one declared attribute: a unique name, a human description, and
// the expected shape.
type Node struct {
	Name  string
	Desc  string
	Model Model
}

// Schema is an ordered collection of declared nodes. Names are unique within
// one schema by construction contract; a caller building a schema with
// duplicate names has a bug, and the engine does not check for it.
type Schema []Node

// NewNode declares an attribute with an explicit model.
func NewNode(name, desc string, model Model) Node {
	return Node{Name: name, Desc: desc, Model: model}
}

// FlagNode declares a presence-only attribute that warns on duplicates.
func FlagNode(name, desc string) Node {
	return Node{Name: name, Desc: desc, Model: Flag{Slot: NewSlot[Unit](diag.WarnOnDuplicate())}}
}

// KeyLitNode declares a key=literal attribute.
func KeyLitNode(name, desc string, lit LitModel) Node {
	return Node{Name: name, Desc: desc, Model: KeyLit{Lit: lit}}
}

// SubNode declares an attribute holding a nested sub-schema.
func SubNode(name, desc string, sub Schema) Node {
	return Node{Name: name, Desc: desc, Model: Sub{Schema: sub}}
}
