package tools

import (
	"github.com/huntboard/huntboard/internal/schema"
	"github.com/huntboard/huntboard/internal/toolschema"
)

// BuildDefaultRegistry wires the standard tool set over one context
// provider. fetchMaxChars bounds the fetch_posting extraction.
func BuildDefaultRegistry(catalog []toolschema.Descriptor, provider schema.ContextProvider, fetchMaxChars int) (*Registry, error) {
	return NewRegistryBuilder(catalog).
		WithTool(NewDailyTasksTool(provider)).
		WithTool(NewJobContextTool(provider)).
		WithTool(NewPipelineSummaryTool(provider)).
		WithTool(NewSourceURLsTool(provider)).
		WithTool(NewContactInteractionsTool(provider)).
		WithTool(NewEventContextTool(provider)).
		WithTool(NewUserPreferencesTool(provider)).
		WithTool(NewResumeSnapshotTool(provider)).
		WithTool(NewFetchPostingTool(fetchMaxChars)).
		WithTool(NewInterviewPrepTool(provider, provider, provider)).
		Build()
}
