package yamlattr

import (
	"encoding/base64"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/artpar/attrgate/core/attr"
	"github.com/artpar/attrgate/core/diag"
)

// ParseDocFile parses an annotation document from a YAML file.
func ParseDocFile(path string) ([]attr.RawNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	return ParseDoc(path, data)
}

// ParseDoc decodes an annotation document into raw nodes. The document is a
// YAML sequence; a plain scalar is a bare-word attribute, a mapping entry
// with a scalar value is a key=literal attribute, and a mapping entry with a
// sequence value is a nested attribute list:
//
//	- flag
//	- name: "widget"
//	- children:
//	    - id: 5
//
// filename is recorded in every node's span along with the YAML line and
// column, so diagnostics point back into the source text. Malformed document
// structure is returned as an error; validity of the attributes themselves is
// the matcher's concern.
func ParseDoc(filename string, data []byte) ([]attr.RawNode, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil
	}
	return parseItems(filename, root.Content[0])
}

func parseItems(filename string, n *yaml.Node) ([]attr.RawNode, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%s:%d:%d: expected an attribute list", filename, n.Line, n.Column)
	}

	var nodes []attr.RawNode
	for _, item := range n.Content {
		item = resolveAlias(item)
		switch item.Kind {
		case yaml.ScalarNode:
			nodes = append(nodes, attr.WordNode(item.Value, nodeSpan(filename, item)))
		case yaml.MappingNode:
			for i := 0; i+1 < len(item.Content); i += 2 {
				key := item.Content[i]
				val := resolveAlias(item.Content[i+1])
				node, err := parseEntry(filename, key, val)
				if err != nil {
					return nil, err
				}
				nodes = append(nodes, node)
			}
		default:
			return nil, fmt.Errorf("%s:%d:%d: expected an attribute or key: value entry",
				filename, item.Line, item.Column)
		}
	}
	return nodes, nil
}

func parseEntry(filename string, key, val *yaml.Node) (attr.RawNode, error) {
	span := nodeSpan(filename, key)
	switch val.Kind {
	case yaml.ScalarNode:
		lit, err := parseLit(filename, val)
		if err != nil {
			return attr.RawNode{}, err
		}
		return attr.KeyValueNode(key.Value, span, lit), nil
	case yaml.SequenceNode:
		items, err := parseItems(filename, val)
		if err != nil {
			return attr.RawNode{}, err
		}
		return attr.ListNode(key.Value, span, items...), nil
	default:
		return attr.RawNode{}, fmt.Errorf("%s:%d:%d: attribute %q must carry a literal or a nested list",
			filename, val.Line, val.Column, key.Value)
	}
}

var (
	intSuffixRe   = regexp.MustCompile(`^(-?\d+)(i8|i16|i32|i64)$`)
	uintSuffixRe  = regexp.MustCompile(`^(\d+)(u8|u16|u32|u64)$`)
	floatSuffixRe = regexp.MustCompile(`^(-?\d+(?:\.\d+)?)(f32|f64)$`)
)

// parseLit decodes one scalar into a raw literal. Native YAML scalars map
// directly (int, float, bool, null, binary). Quoted strings additionally
// recognize the width-suffixed forms 38i32 / 7u8 / 0.5f32, char literals 'a',
// and byte literals b'9'; everything else is a plain string.
func parseLit(filename string, n *yaml.Node) (attr.Lit, error) {
	bad := func(err error) (attr.Lit, error) {
		return attr.Lit{}, fmt.Errorf("%s:%d:%d: %v", filename, n.Line, n.Column, err)
	}

	switch n.Tag {
	case "!!null":
		return attr.NilVal(), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return bad(fmt.Errorf("bad boolean %q", n.Value))
		}
		return attr.BoolVal(b), nil
	case "!!int":
		if strings.HasPrefix(n.Value, "-") {
			// The unsuffixed carrier is unsigned; negatives decode as i64.
			v, err := strconv.ParseInt(n.Value, 10, 64)
			if err != nil {
				return bad(fmt.Errorf("bad integer %q", n.Value))
			}
			return attr.IntLitVal(v, "i64"), nil
		}
		v, err := strconv.ParseUint(n.Value, 10, 64)
		if err != nil {
			return bad(fmt.Errorf("bad integer %q", n.Value))
		}
		return attr.IntUnsuffixedVal(v), nil
	case "!!float":
		v, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return bad(fmt.Errorf("bad float %q", n.Value))
		}
		return attr.FloatUnsuffixedVal(v), nil
	case "!!binary":
		raw, err := base64.StdEncoding.DecodeString(n.Value)
		if err != nil {
			return bad(fmt.Errorf("bad binary payload: %v", err))
		}
		return attr.BytesVal(raw), nil
	case "!!str":
		return parseStrLit(n.Value), nil
	default:
		return bad(fmt.Errorf("unsupported literal tag %s", n.Tag))
	}
}

func parseStrLit(s string) attr.Lit {
	if m := intSuffixRe.FindStringSubmatch(s); m != nil {
		if v, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			return attr.IntLitVal(v, attr.IntSuffix(m[2]))
		}
	}
	if m := uintSuffixRe.FindStringSubmatch(s); m != nil {
		if v, err := strconv.ParseUint(m[1], 10, 64); err == nil {
			return attr.UintLitVal(v, attr.UintSuffix(m[2]))
		}
	}
	if m := floatSuffixRe.FindStringSubmatch(s); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return attr.FloatLitVal(v, attr.FloatSuffix(m[2]))
		}
	}
	if runes := []rune(s); len(runes) == 3 && runes[0] == '\'' && runes[2] == '\'' {
		return attr.CharVal(runes[1])
	}
	if len(s) == 4 && s[0] == 'b' && s[1] == '\'' && s[3] == '\'' {
		return attr.ByteVal(s[2])
	}
	return attr.StrVal(s)
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func nodeSpan(filename string, n *yaml.Node) diag.Span {
	return diag.Span{File: filename, Line: n.Line, Col: n.Column}
}
