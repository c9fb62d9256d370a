package agent

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed prompts/*.md
var builtinPrompts embed.FS

// promptMeta is the YAML frontmatter of a prompt file. Model and
// Temperature override the agent defaults for that workflow only.
type promptMeta struct {
	Description string  `yaml:"description"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
}

// Prompt is one loaded workflow prompt: system text plus per-workflow
// model overrides.
type Prompt struct {
	Name   string
	Meta   promptMeta
	System string
}

// PromptLoader resolves workflow prompts. A file in the workspace
// prompts/ directory overrides the builtin prompt of the same name.
type PromptLoader struct {
	workspacePrompts string
}

// NewPromptLoader creates a loader rooted at the workspace directory.
func NewPromptLoader(workspace string) *PromptLoader {
	return &PromptLoader{workspacePrompts: filepath.Join(workspace, "prompts")}
}

// Load returns the prompt for the named workflow.
func (pl *PromptLoader) Load(name string) (Prompt, error) {
	content, err := pl.read(name)
	if err != nil {
		return Prompt{}, err
	}

	meta, body := splitFrontmatter(content)
	var m promptMeta
	if meta != "" {
		if err := yaml.Unmarshal([]byte(meta), &m); err != nil {
			return Prompt{}, fmt.Errorf("prompt %s: parse frontmatter: %w", name, err)
		}
	}
	return Prompt{Name: name, Meta: m, System: body}, nil
}

func (pl *PromptLoader) read(name string) (string, error) {
	// Workspace prompts have highest priority.
	p := filepath.Join(pl.workspacePrompts, name+".md")
	if data, err := os.ReadFile(p); err == nil {
		return string(data), nil
	}
	data, err := builtinPrompts.ReadFile("prompts/" + name + ".md")
	if err != nil {
		return "", fmt.Errorf("prompt %s: no workspace or builtin file", name)
	}
	return string(data), nil
}

// splitFrontmatter separates the leading --- ... --- YAML block from the
// markdown body. Content without a block returns ("", content).
func splitFrontmatter(content string) (meta, body string) {
	if !strings.HasPrefix(content, "---") {
		return "", strings.TrimSpace(content)
	}
	rest := content[3:]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return "", strings.TrimSpace(content)
	}
	return rest[:end], strings.TrimSpace(rest[end+4:])
}
