package yamlattr

import (
	"reflect"
	"strings"
	"testing"

	"github.com/artpar/attrgate/core/attr"
	"github.com/artpar/attrgate/core/diag"
)

func TestParseDocShapes(t *testing.T) {
	src := `
- flag
- name: "widget"
- children:
    - id: 5
`
	nodes, err := ParseDoc("doc.yaml", []byte(src))
	if err != nil {
		t.Fatalf("ParseDoc() error: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("len(nodes) = %d, want 3", len(nodes))
	}

	if nodes[0].Shape != attr.ShapeWord || nodes[0].Name != "flag" {
		t.Errorf("nodes[0] = %+v, want bare word flag", nodes[0])
	}
	if nodes[1].Shape != attr.ShapeKeyValue || nodes[1].Lit.Kind != attr.KindStr || nodes[1].Lit.Str != "widget" {
		t.Errorf("nodes[1] = %+v, want name=\"widget\"", nodes[1])
	}
	if nodes[2].Shape != attr.ShapeList || len(nodes[2].Items) != 1 {
		t.Fatalf("nodes[2] = %+v, want nested list with one item", nodes[2])
	}
	id := nodes[2].Items[0]
	if id.Lit.Kind != attr.KindIntUnsuffixed || id.Lit.IntUnsuffixed != 5 {
		t.Errorf("children item = %+v, want id=5", id)
	}
}

func TestParseDocSpans(t *testing.T) {
	src := "- flag\n- name: \"widget\"\n"
	nodes, err := ParseDoc("doc.yaml", []byte(src))
	if err != nil {
		t.Fatalf("ParseDoc() error: %v", err)
	}

	want := []diag.Span{
		{File: "doc.yaml", Line: 1, Col: 3},
		{File: "doc.yaml", Line: 2, Col: 3},
	}
	for i, w := range want {
		if nodes[i].Span != w {
			t.Errorf("nodes[%d].Span = %v, want %v", i, nodes[i].Span, w)
		}
	}
}

func TestParseDocLiterals(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want attr.Lit
	}{
		{"string", `- v: "hello"`, attr.StrVal("hello")},
		{"unsuffixed int", "- v: 42", attr.IntUnsuffixedVal(42)},
		{"negative int", "- v: -7", attr.IntLitVal(-7, "i64")},
		{"unsuffixed float", "- v: 0.5", attr.FloatUnsuffixedVal(0.5)},
		{"boolean", "- v: true", attr.BoolVal(true)},
		{"nil", "- v: null", attr.NilVal()},
		{"suffixed int", `- v: "38i32"`, attr.IntLitVal(38, "i32")},
		{"suffixed uint", `- v: "7u8"`, attr.UintLitVal(7, "u8")},
		{"suffixed float", `- v: "0.01f32"`, attr.FloatLitVal(0.01, "f32")},
		{"char", `- v: "'a'"`, attr.CharVal('a')},
		{"byte", `- v: "b'9'"`, attr.ByteVal('9')},
		{"binary", "- v: !!binary VQ==", attr.BytesVal([]byte{0x55})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := ParseDoc("doc.yaml", []byte(tt.src))
			if err != nil {
				t.Fatalf("ParseDoc() error: %v", err)
			}
			if len(nodes) != 1 {
				t.Fatalf("len(nodes) = %d, want 1", len(nodes))
			}
			got := nodes[0].Lit
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("lit = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseDocErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"top level mapping", "v: 1\n"},
		{"nested mapping value", "- v:\n    k: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDoc("doc.yaml", []byte(tt.src))
			if err == nil {
				t.Fatal("ParseDoc() succeeded, want error")
			}
			if !strings.Contains(err.Error(), "doc.yaml:") {
				t.Errorf("error %q missing position", err)
			}
		})
	}
}

func TestParseDocEmpty(t *testing.T) {
	nodes, err := ParseDoc("doc.yaml", nil)
	if err != nil {
		t.Fatalf("ParseDoc() error: %v", err)
	}
	if len(nodes) != 0 {
		t.Errorf("len(nodes) = %d, want 0", len(nodes))
	}
}

// End-to-end: declaration + document through the matcher.
func TestDeclAndDocThroughMatcher(t *testing.T) {
	decl, err := ParseSchema([]byte(widgetDecl))
	if err != nil {
		t.Fatal(err)
	}
	nodes, err := ParseDoc("doc.yaml", []byte("- flag\n- name: \"widget\"\n- children:\n    - id: 5\n"))
	if err != nil {
		t.Fatal(err)
	}

	var c diag.Collector
	s := attr.MatchAll(&c, decl.Schema, nodes)

	if c.Len() != 0 {
		t.Fatalf("emitted %d diagnostics: %v", c.Len(), c.Diagnostics())
	}
	if got := attr.StrValue(s, "name").ValueOr(""); got != "widget" {
		t.Errorf("name = %q, want widget", got)
	}
	if got := attr.IntUnsuffixedValue(attr.SubModel(s, "children"), "id").ValueOr(0); got != 5 {
		t.Errorf("children.id = %d, want 5", got)
	}
}
