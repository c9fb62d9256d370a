package schema

import "context"

// Tool is the interface all LLM-callable context tools must satisfy.
//
// A tool never performs an action: it gathers read-only application
// context and returns the payload fields of a context_provided envelope,
// including the verbatim "instruction" string that steers the model.
// The dispatcher owns envelope assembly and error conversion; a tool is
// free to return an error and may assume the dispatcher never lets it
// escape to the caller.
type Tool interface {
	Name() string
	Description() string
	Execute(ctx context.Context, args map[string]any) (map[string]any, error)
}
