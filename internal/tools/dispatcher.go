package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/huntboard/huntboard/internal/shared/llmutils"
)

// Envelope status values. Every dispatch outcome is one of the two.
const (
	StatusContextProvided = "context_provided"
	StatusError           = "error"
)

// Invocation is the wire request consumed by the dispatcher: a tool name
// plus a JSON-encoded argument object. Produced by the model-facing
// transport, consumed exactly once.
type Invocation struct {
	ToolName  string `json:"toolName"`
	Arguments string `json:"arguments"`
}

// Dispatcher routes named invocations to registered tool handlers and
// normalises every outcome into a JSON envelope.
//
// Execute never panics and never returns anything but valid JSON text
// with a "status" field: the model transport on the other side can always
// feed the result straight back to the model.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher creates a Dispatcher over an immutable registry.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Execute runs one tool invocation to completion or failure.
//
// rawArguments is parsed as JSON; anything that does not parse to an
// object is replaced by an empty argument set and the handler's defaults
// take over. Handlers may run provider calls concurrently among
// themselves; no ordering is guaranteed between concurrent invocations.
func (d *Dispatcher) Execute(ctx context.Context, toolName, rawArguments string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Tool handler panicked", "tool", toolName, "panic", r)
			result = errorEnvelope(fmt.Sprintf("internal error in tool %s", toolName))
		}
	}()

	args := parseArguments(rawArguments)

	tool := d.registry.Get(toolName)
	if tool == nil {
		return errorEnvelope(fmt.Sprintf("Unknown tool: %s", toolName))
	}

	slog.Info("Tool call", "name", toolName, "args", llmutils.Truncate(rawArguments, 200))

	payload, err := tool.Execute(ctx, args)
	if err != nil {
		slog.Warn("Tool failed", "name", toolName, "err", err)
		return errorEnvelope(err.Error())
	}

	return contextEnvelope(payload)
}

// ExecuteInvocation parses a wire-format request and dispatches it.
func (d *Dispatcher) ExecuteInvocation(ctx context.Context, raw string) string {
	var inv Invocation
	if err := json.Unmarshal([]byte(raw), &inv); err != nil {
		return errorEnvelope(fmt.Sprintf("malformed invocation: %v", err))
	}
	if inv.ToolName == "" {
		return errorEnvelope("malformed invocation: missing toolName")
	}
	return d.Execute(ctx, inv.ToolName, inv.Arguments)
}

// parseArguments decodes the raw argument blob defensively: malformed
// JSON or a non-object top level degrades to an empty argument set
// rather than an error.
func parseArguments(raw string) map[string]any {
	if raw == "" {
		return map[string]any{}
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil || args == nil {
		return map[string]any{}
	}
	return args
}

// contextEnvelope wraps a handler payload in a context_provided envelope.
// Serialisation failure of the payload itself degrades to an error
// envelope; the caller always gets valid JSON.
func contextEnvelope(payload map[string]any) string {
	out := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		out[k] = v
	}
	out["status"] = StatusContextProvided

	data, err := json.Marshal(out)
	if err != nil {
		return errorEnvelope(fmt.Sprintf("serialize tool result: %v", err))
	}
	return string(data)
}

// errorEnvelope builds the error envelope. The fields here are fixed
// wire contract; marshalling a flat string map cannot fail.
func errorEnvelope(msg string) string {
	data, _ := json.Marshal(map[string]string{
		"status": StatusError,
		"error":  msg,
	})
	return string(data)
}
