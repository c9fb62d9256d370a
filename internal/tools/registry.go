// Package tools holds the tool catalogue registry, the dispatch boundary,
// and the context-gathering tool handlers advertised to the LLM.
package tools

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/huntboard/huntboard/internal/schema"
	"github.com/huntboard/huntboard/internal/toolschema"
)

// Registry is the immutable catalogue of tools: handler implementations
// bound by name to their compiled argument schemas. Built once at startup,
// read-only afterwards, so no locking is needed.
type Registry struct {
	tools       map[string]schema.Tool
	descriptors map[string]toolschema.Descriptor
	names       []string // sorted, for stable advertisement order
}

// Get returns the tool with the given name, or nil.
func (r *Registry) Get(name string) schema.Tool {
	return r.tools[name]
}

// Names returns the sorted tool names.
func (r *Registry) Names() []string {
	return r.names
}

// Descriptor returns the advertised descriptor for one tool.
func (r *Registry) Descriptor(name string) (toolschema.Descriptor, bool) {
	d, ok := r.descriptors[name]
	return d, ok
}

// Definitions returns all tools in OpenAI function-calling format, ready
// to hand to the provider on every chat request.
func (r *Registry) Definitions() []map[string]any {
	out := make([]map[string]any, 0, len(r.names))
	for _, name := range r.names {
		d := r.descriptors[name]
		out = append(out, map[string]any{
			"type": "function",
			"function": map[string]any{
				"name":        d.Name,
				"description": d.Description,
				"parameters":  d.ArgumentSchema.AsMap(),
			},
		})
	}
	return out
}

// AdvertisementJSON serialises the published contract, one entry per tool.
func (r *Registry) AdvertisementJSON() (string, error) {
	data, err := json.MarshalIndent(r.Definitions(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal tool advertisement: %w", err)
	}
	return string(data), nil
}

// RegistryBuilder accumulates tools during the construction phase.
// Call Build() to produce an immutable Registry ready for use.
type RegistryBuilder struct {
	catalog map[string]toolschema.Descriptor
	tools   map[string]schema.Tool
}

// NewRegistryBuilder returns a builder bound to the compiled catalogue.
// Every registered tool must have a catalogue entry of the same name.
func NewRegistryBuilder(catalog []toolschema.Descriptor) *RegistryBuilder {
	byName := make(map[string]toolschema.Descriptor, len(catalog))
	for _, d := range catalog {
		byName[d.Name] = d
	}
	return &RegistryBuilder{
		catalog: byName,
		tools:   make(map[string]schema.Tool),
	}
}

// WithTool adds a tool and returns the builder, enabling chaining.
func (b *RegistryBuilder) WithTool(tool schema.Tool) *RegistryBuilder {
	b.tools[tool.Name()] = tool

	return b
}

// Build produces an immutable Registry. A handler without a catalogue
// entry is a configuration error: the advertised contract and the
// dispatchable set must never drift apart.
func (b *RegistryBuilder) Build() (*Registry, error) {
	tools := make(map[string]schema.Tool, len(b.tools))
	descriptors := make(map[string]toolschema.Descriptor, len(b.tools))
	names := make([]string, 0, len(b.tools))

	for name, tool := range b.tools {
		d, ok := b.catalog[name]
		if !ok {
			return nil, fmt.Errorf("tool %q has no catalogue entry", name)
		}
		tools[name] = tool
		descriptors[name] = d
		names = append(names, name)
	}
	sort.Strings(names)

	return &Registry{tools: tools, descriptors: descriptors, names: names}, nil
}
