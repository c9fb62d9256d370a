package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/huntboard/huntboard/internal/ops"
	"github.com/huntboard/huntboard/internal/schema"
	"github.com/huntboard/huntboard/internal/tools"
	"github.com/huntboard/huntboard/internal/toolschema"
)

// scriptedProvider replays a fixed sequence of responses, recording the
// last request for assertions.
type scriptedProvider struct {
	responses []schema.LLMResponse
	err       error
	calls     int
	lastOpts  schema.ChatOptions
	lastMsgs  schema.Messages
}

func (p *scriptedProvider) Chat(ctx context.Context, messages schema.Messages, tls []map[string]any, opts schema.ChatOptions) (schema.LLMResponse, error) {
	p.lastOpts = opts
	p.lastMsgs = messages
	if p.err != nil {
		return schema.LLMResponse{}, p.err
	}
	if p.calls >= len(p.responses) {
		return schema.LLMResponse{}, errors.New("script exhausted")
	}
	resp := p.responses[p.calls]
	p.calls++
	return resp, nil
}

func (p *scriptedProvider) DefaultModel() string { return "test-model" }

// stubProvider is a minimal ContextProvider for wiring the registry.
type stubProvider struct{}

func (stubProvider) DailyTaskContext(ctx context.Context) (map[string]any, error) {
	return map[string]any{"today": []string{"follow up"}}, nil
}
func (stubProvider) JobSnapshot(ctx context.Context, jobID string) (map[string]any, error) {
	return map[string]any{"id": jobID}, nil
}
func (stubProvider) PipelineSummary(ctx context.Context) (map[string]any, error) {
	return map[string]any{"applied": 1}, nil
}
func (stubProvider) ExistingSourceURLs(ctx context.Context) ([]string, error) {
	return nil, nil
}
func (stubProvider) ContactInteractions(ctx context.Context, contactID string) ([]map[string]any, error) {
	return nil, nil
}
func (stubProvider) ContactsForJob(ctx context.Context, jobID string) ([]map[string]any, error) {
	return nil, nil
}
func (stubProvider) EventContext(ctx context.Context, eventID string) (map[string]any, error) {
	return map[string]any{"id": eventID}, nil
}
func (stubProvider) UpcomingEvents(ctx context.Context) ([]map[string]any, error) {
	return nil, nil
}
func (stubProvider) Preferences(ctx context.Context) (map[string]any, error) {
	return map[string]any{"remote": true}, nil
}
func (stubProvider) ResumeSnapshot(ctx context.Context) (map[string]any, error) {
	return map[string]any{"sections": []string{"experience"}}, nil
}

func testHarness(t *testing.T, llm schema.LLMProvider) (*Runner, *ops.Tracker) {
	t.Helper()
	catalog, err := toolschema.LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	registry, err := tools.BuildDefaultRegistry(catalog, stubProvider{}, 50000)
	if err != nil {
		t.Fatalf("BuildDefaultRegistry: %v", err)
	}
	tracker := ops.NewTracker()
	settings := schema.NewAgentSettings("test-model", 5, 0.3, 4096)
	runner := NewRunner(llm, registry, tools.NewDispatcher(registry), tracker, settings)
	return runner, tracker
}

func strPtr(s string) *string { return &s }

func TestRunnerTerminalResponse(t *testing.T) {
	llm := &scriptedProvider{responses: []schema.LLMResponse{
		{Content: strPtr("all done"), FinishReason: "stop", Usage: schema.TokenUsage{InputTokens: 10, OutputTokens: 4}},
	}}
	runner, tracker := testHarness(t, llm)
	tracker.Track("op-1", ops.KindWorkflow, "test")

	out, err := runner.Run(context.Background(), "op-1", schema.NewMessages(schema.NewUserMessage("hi")), schema.ChatOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "all done" {
		t.Fatalf("out = %q", out)
	}

	op, _ := tracker.Get("op-1")
	if op.InputTokens != 10 || op.OutputTokens != 4 {
		t.Fatalf("token usage not recorded: %+v", op)
	}
}

func TestRunnerAppliesSettingsDefaults(t *testing.T) {
	llm := &scriptedProvider{responses: []schema.LLMResponse{
		{Content: strPtr("ok"), FinishReason: "stop"},
	}}
	runner, tracker := testHarness(t, llm)
	tracker.Track("op-defaults", ops.KindWorkflow, "test")

	// Empty options: every knob falls back to the configured defaults.
	_, err := runner.Run(context.Background(), "op-defaults", schema.NewMessages(schema.NewUserMessage("hi")), schema.ChatOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if llm.lastOpts.Model != "test-model" {
		t.Fatalf("model = %q, want test-model", llm.lastOpts.Model)
	}
	if llm.lastOpts.MaxTokens != 4096 {
		t.Fatalf("max tokens = %d, want 4096", llm.lastOpts.MaxTokens)
	}
	if llm.lastOpts.Temperature != 0.3 {
		t.Fatalf("temperature default not applied: got %v, want 0.3", llm.lastOpts.Temperature)
	}

	// Explicit options win over the defaults.
	tracker.Track("op-explicit", ops.KindWorkflow, "test")
	llm.responses = append(llm.responses, schema.LLMResponse{Content: strPtr("ok"), FinishReason: "stop"})
	_, err = runner.Run(context.Background(), "op-explicit", schema.NewMessages(schema.NewUserMessage("hi")),
		schema.ChatOptions{Model: "gpt-4o-mini", Temperature: 0.9})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if llm.lastOpts.Model != "gpt-4o-mini" || llm.lastOpts.Temperature != 0.9 {
		t.Fatalf("explicit options overridden: %+v", llm.lastOpts)
	}
}

func TestRunnerExecutesToolCalls(t *testing.T) {
	llm := &scriptedProvider{responses: []schema.LLMResponse{
		{
			ToolCalls: []schema.ToolCall{
				{ID: "call_1", Name: "pipeline_summary", Arguments: map[string]any{}},
			},
			FinishReason: "tool_calls",
			Usage:        schema.TokenUsage{InputTokens: 20, OutputTokens: 8},
		},
		{Content: strPtr("summary ready"), FinishReason: "stop", Usage: schema.TokenUsage{InputTokens: 30, OutputTokens: 12}},
	}}
	runner, tracker := testHarness(t, llm)
	tracker.Track("op-2", ops.KindWorkflow, "test")

	conversation := schema.NewMessages(schema.NewUserMessage("how is my pipeline?"))
	out, err := runner.Run(context.Background(), "op-2", conversation, schema.ChatOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "summary ready" {
		t.Fatalf("out = %q", out)
	}
	if llm.calls != 2 {
		t.Fatalf("provider called %d times, want 2", llm.calls)
	}
	if len(conversation.Messages) != 1 {
		t.Fatalf("caller conversation mutated: %d messages", len(conversation.Messages))
	}

	op, _ := tracker.Get("op-2")
	if op.InputTokens != 50 || op.OutputTokens != 20 {
		t.Fatalf("token usage should accumulate across turns: %+v", op)
	}

	var requests, responses int
	for _, e := range op.Transcript {
		switch e.Type {
		case ops.EntryModelRequest:
			requests++
		case ops.EntryModelResponse:
			responses++
		}
	}
	if requests != 2 || responses != 2 {
		t.Fatalf("transcript has %d requests / %d responses, want 2/2", requests, responses)
	}
}

func TestRunnerIterationCap(t *testing.T) {
	// The model asks for a tool on every turn and never terminates.
	loop := schema.LLMResponse{
		ToolCalls:    []schema.ToolCall{{ID: "c", Name: "daily_tasks", Arguments: map[string]any{}}},
		FinishReason: "tool_calls",
	}
	llm := &scriptedProvider{responses: []schema.LLMResponse{loop, loop, loop, loop, loop}}
	runner, tracker := testHarness(t, llm)
	tracker.Track("op-3", ops.KindWorkflow, "test")

	_, err := runner.Run(context.Background(), "op-3", schema.NewMessages(schema.NewUserMessage("go")), schema.ChatOptions{})
	if err == nil {
		t.Fatal("expected iteration-cap error")
	}
	if llm.calls != 5 {
		t.Fatalf("provider called %d times, want 5", llm.calls)
	}
}

func TestRunnerProviderError(t *testing.T) {
	llm := &scriptedProvider{err: errors.New("connection refused")}
	runner, tracker := testHarness(t, llm)
	tracker.Track("op-4", ops.KindWorkflow, "test")

	_, err := runner.Run(context.Background(), "op-4", schema.NewMessages(schema.NewUserMessage("go")), schema.ChatOptions{})
	if err == nil {
		t.Fatal("expected provider error to propagate")
	}
}
