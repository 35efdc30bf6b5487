// Package yamlattr is the YAML front end for the attribute engine: it loads
// schema declarations and decodes annotation documents into raw nodes that
// carry real source positions.
package yamlattr

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/artpar/attrgate/core/attr"
	"github.com/artpar/attrgate/core/diag"
)

// Decl is a named schema declaration loaded from YAML.
type Decl struct {
	Name        string
	Description string
	Schema      attr.Schema
}

type declFile struct {
	Schema      string     `yaml:"schema"`
	Description string     `yaml:"description"`
	Attributes  []attrDecl `yaml:"attributes"`
}

type attrDecl struct {
	Name       string     `yaml:"name"`
	Desc       string     `yaml:"desc"`
	Model      string     `yaml:"model"`
	Duplicate  *dupDecl   `yaml:"duplicate,omitempty"`
	Attributes []attrDecl `yaml:"attributes,omitempty"`
}

type dupDecl struct {
	Level string `yaml:"level"`
	Note  string `yaml:"note,omitempty"`
}

// ParseSchemaFile parses a schema declaration from a YAML file.
func ParseSchemaFile(path string) (Decl, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Decl{}, fmt.Errorf("read file %s: %w", path, err)
	}

	decl, err := ParseSchema(data)
	if err != nil {
		return Decl{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return decl, nil
}

// ParseSchema parses a schema declaration from YAML bytes. Declaration
// problems are construction errors returned to the caller, never diagnostics:
// a broken schema means the host project is misconfigured, not that a
// document is invalid.
func ParseSchema(data []byte) (Decl, error) {
	var f declFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Decl{}, fmt.Errorf("parse yaml: %w", err)
	}

	var errs []string
	if f.Schema == "" {
		errs = append(errs, "schema name is required")
	}
	if len(f.Attributes) == 0 {
		errs = append(errs, "schema must declare at least one attribute")
	}

	schema := buildSchema(f.Schema, f.Attributes, &errs)

	if len(errs) > 0 {
		return Decl{}, fmt.Errorf("invalid schema declaration:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return Decl{Name: f.Schema, Description: f.Description, Schema: schema}, nil
}

// ParseDir parses every .yaml/.yml schema declaration in a directory.
func ParseDir(dir string) ([]Decl, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var decls []Decl
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		decl, err := ParseSchemaFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}

	return decls, nil
}

func buildSchema(scope string, decls []attrDecl, errs *[]string) attr.Schema {
	schema := make(attr.Schema, 0, len(decls))
	seen := make(map[string]bool, len(decls))

	for _, d := range decls {
		where := scope + "." + d.Name
		if d.Name == "" {
			*errs = append(*errs, fmt.Sprintf("%s: attribute name is required", scope))
			continue
		}
		if seen[d.Name] {
			*errs = append(*errs, fmt.Sprintf("%s: attribute declared twice", where))
			continue
		}
		seen[d.Name] = true

		dup, err := buildPolicy(d.Duplicate)
		if err != nil {
			*errs = append(*errs, fmt.Sprintf("%s: %v", where, err))
			continue
		}

		switch d.Model {
		case "flag":
			schema = append(schema, attr.NewNode(d.Name, d.Desc,
				attr.Flag{Slot: attr.NewSlot[attr.Unit](dup)}))
		case "sub":
			if len(d.Attributes) == 0 {
				*errs = append(*errs, fmt.Sprintf("%s: sub model requires nested attributes", where))
				continue
			}
			schema = append(schema, attr.SubNode(d.Name, d.Desc,
				buildSchema(where, d.Attributes, errs)))
		case "":
			*errs = append(*errs, fmt.Sprintf("%s: model is required", where))
		default:
			kind, ok := kindFromName(d.Model)
			if !ok {
				*errs = append(*errs, fmt.Sprintf("%s: unknown model %q", where, d.Model))
				continue
			}
			if len(d.Attributes) > 0 {
				*errs = append(*errs, fmt.Sprintf("%s: only the sub model may declare nested attributes", where))
				continue
			}
			schema = append(schema, attr.KeyLitNode(d.Name, d.Desc, attr.NewLit(kind, dup)))
		}
	}

	return schema
}

func buildPolicy(d *dupDecl) (diag.DuplicatePolicy, error) {
	if d == nil {
		return diag.WarnOnDuplicate(), nil
	}
	switch d.Level {
	case "silent":
		return diag.NewDuplicatePolicy(diag.Silent, d.Note), nil
	case "warn", "":
		return diag.NewDuplicatePolicy(diag.Warn, d.Note), nil
	case "error":
		return diag.NewDuplicatePolicy(diag.Error, d.Note), nil
	default:
		return diag.DuplicatePolicy{}, fmt.Errorf("unknown duplicate level %q", d.Level)
	}
}

// kindFromName maps a declaration model name to a literal kind.
func kindFromName(name string) (attr.LitKind, bool) {
	switch name {
	case "string":
		return attr.KindStr, true
	case "binary":
		return attr.KindBytes, true
	case "byte":
		return attr.KindByte, true
	case "char":
		return attr.KindChar, true
	case "int":
		return attr.KindInt, true
	case "uint":
		return attr.KindUint, true
	case "unsuffixed_int":
		return attr.KindIntUnsuffixed, true
	case "float":
		return attr.KindFloat, true
	case "unsuffixed_float":
		return attr.KindFloatUnsuffixed, true
	case "nil":
		return attr.KindNil, true
	case "boolean", "bool":
		return attr.KindBool, true
	default:
		return 0, false
	}
}
