package yamlattr

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/artpar/attrgate/core/attr"
)

const widgetDecl = `
schema: widget
description: test widget schema
attributes:
  - name: flag
    desc: marks the construct
    model: flag
  - name: name
    desc: display name
    model: string
    duplicate: { level: error, note: only one name per widget }
  - name: children
    desc: nested settings
    model: sub
    attributes:
      - name: id
        desc: child identifier
        model: unsuffixed_int
`

func TestParseSchema(t *testing.T) {
	decl, err := ParseSchema([]byte(widgetDecl))
	if err != nil {
		t.Fatalf("ParseSchema() error: %v", err)
	}

	if decl.Name != "widget" {
		t.Errorf("Name = %q, want %q", decl.Name, "widget")
	}
	if len(decl.Schema) != 3 {
		t.Fatalf("len(Schema) = %d, want 3", len(decl.Schema))
	}
	if _, ok := decl.Schema[0].Model.(attr.Flag); !ok {
		t.Errorf("flag model = %T, want attr.Flag", decl.Schema[0].Model)
	}
	if got := attr.LitOf(decl.Schema, "name").Kind(); got != attr.KindStr {
		t.Errorf("name kind = %s, want string", got)
	}
	sub := attr.SubModel(decl.Schema, "children")
	if got := attr.LitOf(sub, "id").Kind(); got != attr.KindIntUnsuffixed {
		t.Errorf("children.id kind = %s, want unsuffixed int", got)
	}
}

func TestParseSchemaEveryKindName(t *testing.T) {
	kinds := map[string]attr.LitKind{
		"string":           attr.KindStr,
		"binary":           attr.KindBytes,
		"byte":             attr.KindByte,
		"char":             attr.KindChar,
		"int":              attr.KindInt,
		"uint":             attr.KindUint,
		"unsuffixed_int":   attr.KindIntUnsuffixed,
		"float":            attr.KindFloat,
		"unsuffixed_float": attr.KindFloatUnsuffixed,
		"nil":              attr.KindNil,
		"boolean":          attr.KindBool,
	}

	for name, want := range kinds {
		t.Run(name, func(t *testing.T) {
			src := "schema: s\nattributes:\n  - name: v\n    model: " + name + "\n"
			decl, err := ParseSchema([]byte(src))
			if err != nil {
				t.Fatalf("ParseSchema() error: %v", err)
			}
			if got := attr.LitOf(decl.Schema, "v").Kind(); got != want {
				t.Errorf("kind = %s, want %s", got, want)
			}
		})
	}
}

func TestParseSchemaErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			"missing schema name",
			"attributes:\n  - name: v\n    model: flag\n",
			"schema name is required",
		},
		{
			"no attributes",
			"schema: s\n",
			"at least one attribute",
		},
		{
			"unknown model",
			"schema: s\nattributes:\n  - name: v\n    model: quux\n",
			`unknown model "quux"`,
		},
		{
			"duplicate attribute",
			"schema: s\nattributes:\n  - name: v\n    model: flag\n  - name: v\n    model: flag\n",
			"declared twice",
		},
		{
			"sub without children",
			"schema: s\nattributes:\n  - name: v\n    model: sub\n",
			"requires nested attributes",
		},
		{
			"bad duplicate level",
			"schema: s\nattributes:\n  - name: v\n    model: flag\n    duplicate: { level: loud }\n",
			`unknown duplicate level "loud"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSchema([]byte(tt.src))
			if err == nil {
				t.Fatal("ParseSchema() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q missing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseSchemaAccumulatesErrors(t *testing.T) {
	src := "schema: s\nattributes:\n  - name: a\n    model: quux\n  - name: b\n    model: zork\n"
	_, err := ParseSchema([]byte(src))
	if err == nil {
		t.Fatal("ParseSchema() succeeded, want error")
	}
	for _, part := range []string{"quux", "zork"} {
		if !strings.Contains(err.Error(), part) {
			t.Errorf("error %q missing %q", err, part)
		}
	}
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "widget.yaml", widgetDecl)
	writeFile(t, dir, "gadget.yml", "schema: gadget\nattributes:\n  - name: enabled\n    model: flag\n")
	writeFile(t, dir, "notes.txt", "not a schema")

	decls, err := ParseDir(dir)
	if err != nil {
		t.Fatalf("ParseDir() error: %v", err)
	}
	if len(decls) != 2 {
		t.Errorf("len(decls) = %d, want 2", len(decls))
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
