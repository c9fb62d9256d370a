package toolschema

import "sort"

// kindFor maps an explicit "type" value to a Kind. Absent or unrecognised
// values default to object: tool advertisement stays resilient to partially
// authored schemas.
func kindFor(v any) Kind {
	s, _ := v.(string)
	switch Kind(s) {
	case KindObject, KindArray, KindString, KindInteger, KindNumber, KindBoolean:
		return Kind(s)
	default:
		return KindObject
	}
}

// Compile converts an untyped nested description into a typed schema tree.
// It is pure: the same description always compiles to a structurally equal
// tree, and the input is never mutated.
func Compile(description map[string]any) *Node {
	n := &Node{Kind: kindFor(description["type"])}

	if d, ok := description["description"].(string); ok {
		n.Description = d
	}

	if ap, ok := description["additionalProperties"].(bool); ok {
		n.AdditionalProperties = ap
	}

	if enum, ok := description["enum"].([]any); ok {
		for _, v := range enum {
			if s, ok := v.(string); ok {
				n.Enum = append(n.Enum, s)
			}
		}
	}

	if props, ok := description["properties"].(map[string]any); ok && n.Kind == KindObject {
		n.Properties = make(map[string]*Node, len(props))
		for _, name := range sortedKeys(props) {
			child, ok := props[name].(map[string]any)
			if !ok {
				child = map[string]any{}
			}
			n.Properties[name] = Compile(child)
		}
	}

	if req, ok := description["required"].([]any); ok {
		for _, v := range req {
			name, ok := v.(string)
			if !ok {
				continue
			}
			// Required must stay a subset of the declared properties.
			if _, declared := n.Properties[name]; declared {
				n.Required = append(n.Required, name)
			}
		}
		sort.Strings(n.Required)
	}

	if n.Kind == KindArray {
		items, ok := description["items"].(map[string]any)
		if !ok {
			items = map[string]any{}
		}
		n.Items = Compile(items)
	}

	return n
}
