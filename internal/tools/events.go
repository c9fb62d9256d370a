package tools

import (
	"context"
	"fmt"

	"github.com/huntboard/huntboard/internal/schema"
)

const eventContextInstruction = "Using the event above, produce a JSON object with \"event_id\" (copied exactly), \"goals\" (array of strings, at most three), and \"opener\" (one conversation-opening sentence). Return only JSON."

// EventContextTool returns the details of one networking event.
type EventContextTool struct {
	events schema.EventSource
}

func NewEventContextTool(events schema.EventSource) *EventContextTool {
	return &EventContextTool{events: events}
}

func (t *EventContextTool) Name() string { return "event_context" }
func (t *EventContextTool) Description() string {
	return "Get details of one networking event, including attendees."
}

func (t *EventContextTool) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	eventID := argString(args, "event_id", "")
	if eventID == "" {
		return nil, fmt.Errorf("event_id is required")
	}

	event, err := t.events.EventContext(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"event_id":    eventID,
		"event":       event,
		"instruction": eventContextInstruction,
	}, nil
}
