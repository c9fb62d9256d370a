// Package toolschema compiles untyped tool-parameter descriptions into a
// typed schema tree and loads the tool catalogue resource.
//
// The catalogue is static, pre-deployment configuration: a malformed or
// missing resource aborts startup rather than degrading silently.
package toolschema

import (
	"encoding/json"
	"sort"
)

// Kind is the type of a schema node.
type Kind string

const (
	KindObject  Kind = "object"
	KindArray   Kind = "array"
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
)

// Node is one node of a compiled parameter schema tree.
//
// Invariants: a KindArray node always has Items set; Required names are a
// subset of Properties keys and sorted; the tree is acyclic.
type Node struct {
	Kind                 Kind
	Description          string
	Properties           map[string]*Node // KindObject only
	Items                *Node            // KindArray only
	Required             []string
	AdditionalProperties bool // default false: steer the model toward well-shaped output
	Enum                 []string
}

// wireNode is the JSON-Schema-like advertisement form consumed by the
// model-facing transport.
type wireNode struct {
	Type                 string               `json:"type"`
	Description          string               `json:"description,omitempty"`
	Properties           map[string]*wireNode `json:"properties,omitempty"`
	Items                *wireNode            `json:"items,omitempty"`
	Required             []string             `json:"required,omitempty"`
	AdditionalProperties *bool                `json:"additionalProperties,omitempty"`
	Enum                 []string             `json:"enum,omitempty"`
}

func (n *Node) toWire() *wireNode {
	w := &wireNode{
		Type:        string(n.Kind),
		Description: n.Description,
		Required:    n.Required,
		Enum:        n.Enum,
	}
	if n.Kind == KindObject {
		ap := n.AdditionalProperties
		w.AdditionalProperties = &ap
		if len(n.Properties) > 0 {
			w.Properties = make(map[string]*wireNode, len(n.Properties))
			for name, child := range n.Properties {
				w.Properties[name] = child.toWire()
			}
		}
	}
	if n.Items != nil {
		w.Items = n.Items.toWire()
	}
	return w
}

// MarshalJSON serialises the node per the advertisement convention:
// type, description, properties, items, required, additionalProperties, enum.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toWire())
}

// AsMap returns the advertisement form as a generic map, ready to embed in
// an OpenAI function-calling tool definition.
func (n *Node) AsMap() map[string]any {
	data, err := json.Marshal(n)
	if err != nil {
		return map[string]any{"type": "object"}
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return map[string]any{"type": "object"}
	}
	return out
}

// sortedKeys returns the sorted property names, used to keep Required
// deterministic across compilations of the same description.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
