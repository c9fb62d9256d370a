package providers

import "github.com/huntboard/huntboard/internal/schema"

// Params are the raw values needed to construct a schema.LLMProvider.
// Extracted from config.Config by the caller to avoid an import cycle.
type Params struct {
	APIKey       string
	APIBase      string
	DefaultModel string
}

// New creates the schema.LLMProvider for the given params. Every endpoint
// the app targets speaks the OpenAI chat completion protocol.
func New(p Params) schema.LLMProvider {
	return NewOpenAIProvider(p.APIKey, p.APIBase, p.DefaultModel)
}
