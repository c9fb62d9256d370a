package toolschema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed catalog.json
var embeddedCatalog []byte

// Descriptor is one advertised tool: immutable once built, published to the
// model-facing transport as {name, description, parameters}.
type Descriptor struct {
	Name           string
	Description    string
	ArgumentSchema *Node
}

// catalogFile is the on-disk shape of the catalogue resource.
type catalogFile struct {
	Tools []struct {
		Name        string         `json:"name"`
		Description string         `json:"description"`
		Parameters  map[string]any `json:"parameters"`
	} `json:"tools"`
}

// ParseCatalog compiles the catalogue resource into descriptors.
// source is used in error messages only.
func ParseCatalog(data []byte, source string) ([]Descriptor, error) {
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("tool catalogue %s: parse: %w", source, err)
	}
	if len(file.Tools) == 0 {
		return nil, fmt.Errorf("tool catalogue %s: no tools declared", source)
	}

	seen := make(map[string]bool, len(file.Tools))
	out := make([]Descriptor, 0, len(file.Tools))
	for i, t := range file.Tools {
		if t.Name == "" {
			return nil, fmt.Errorf("tool catalogue %s: tool #%d has no name", source, i)
		}
		if seen[t.Name] {
			return nil, fmt.Errorf("tool catalogue %s: duplicate tool %q", source, t.Name)
		}
		seen[t.Name] = true

		params := t.Parameters
		if params == nil {
			params = map[string]any{}
		}
		out = append(out, Descriptor{
			Name:           t.Name,
			Description:    t.Description,
			ArgumentSchema: Compile(params),
		})
	}
	return out, nil
}

// LoadCatalog returns the compiled catalogue. With an empty path the
// embedded resource is used; otherwise the file at path overrides it.
// Any failure here is a fatal configuration error: callers abort startup.
func LoadCatalog(path string) ([]Descriptor, error) {
	if path == "" {
		return ParseCatalog(embeddedCatalog, "embedded catalog.json")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tool catalogue %s: %w", path, err)
	}
	return ParseCatalog(data, path)
}
