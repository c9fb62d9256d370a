// Package agent runs the LLM ↔ tool iteration loop and the workflows
// built on top of it.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/huntboard/huntboard/internal/ops"
	"github.com/huntboard/huntboard/internal/schema"
	"github.com/huntboard/huntboard/internal/shared/llmutils"
	"github.com/huntboard/huntboard/internal/tools"
)

// Runner executes the LLM ↔ tool iteration loop, recording every step in
// the operation tracker.
type Runner struct {
	provider   schema.LLMProvider
	registry   *tools.Registry
	dispatcher *tools.Dispatcher
	tracker    *ops.Tracker
	settings   schema.AgentSettings
}

func NewRunner(
	provider schema.LLMProvider,
	registry *tools.Registry,
	dispatcher *tools.Dispatcher,
	tracker *ops.Tracker,
	settings schema.AgentSettings,
) *Runner {
	return &Runner{
		provider:   provider,
		registry:   registry,
		dispatcher: dispatcher,
		tracker:    tracker,
		settings:   settings,
	}
}

// Run drives one tracked conversation to a terminal model response.
// opID must already be tracked; the caller owns the terminal transition.
func (r *Runner) Run(ctx context.Context, opID string, conversation schema.Messages, opts schema.ChatOptions) (string, error) {
	if opts.Model == "" {
		opts.Model = r.settings.Model
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = r.settings.MaxTokens
	}
	if opts.Temperature <= 0 {
		opts.Temperature = r.settings.Temperature
	}

	// The loop appends to the conversation; work on an independent copy
	// so the caller's slice is never aliased.
	conversation = conversation.Clone()

	definitions := r.registry.Definitions()

	for i := 0; i < r.settings.MaxIter; i++ {
		r.tracker.UpdatePhase(opID, "thinking")
		r.tracker.AppendTranscript(opID, ops.EntryModelRequest,
			fmt.Sprintf("request %d/%d", i+1, r.settings.MaxIter),
			fmt.Sprintf("%d messages", len(conversation.Messages)))

		resp, err := r.provider.Chat(ctx, conversation, definitions, opts)
		if err != nil {
			slog.Error("LLM error", "op", opID, "err", err)
			return "", fmt.Errorf("model call failed: %w", err)
		}

		r.tracker.AddTokenUsage(opID, resp.Usage.InputTokens, resp.Usage.OutputTokens)

		content := ""
		if resp.Content != nil {
			content = *resp.Content
		}
		r.tracker.AppendTranscript(opID, ops.EntryModelResponse,
			llmutils.Truncate(content, 2000), llmutils.ToolHint(resp.ToolCalls))

		if !resp.HasToolCalls() {
			return content, nil
		}

		conversation.AddAssistant(resp.Content, resp.ToolCalls)

		r.tracker.UpdatePhase(opID, "gathering context")
		for _, tc := range resp.ToolCalls {
			argsJSON, _ := json.Marshal(tc.Arguments)
			result := r.dispatcher.Execute(ctx, tc.Name, string(argsJSON))
			conversation.AddToolResult(tc.ID, tc.Name, result)
		}
	}

	return "", fmt.Errorf("no final answer after %d tool iterations", r.settings.MaxIter)
}
