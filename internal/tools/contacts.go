package tools

import (
	"context"
	"fmt"

	"github.com/huntboard/huntboard/internal/schema"
)

const contactInteractionsInstruction = "Using the interaction history above, produce a JSON object with \"contact_id\" (copied exactly), \"relationship\" (one of \"warm\", \"cooling\", \"cold\"), and \"next_touch\" (one sentence suggesting the next interaction). Return only JSON."

// ContactInteractionsTool returns the interaction history of one contact.
type ContactInteractionsTool struct {
	contacts schema.ContactSource
}

func NewContactInteractionsTool(contacts schema.ContactSource) *ContactInteractionsTool {
	return &ContactInteractionsTool{contacts: contacts}
}

func (t *ContactInteractionsTool) Name() string { return "contact_interactions" }
func (t *ContactInteractionsTool) Description() string {
	return "Get the interaction history for one networking contact."
}

func (t *ContactInteractionsTool) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	contactID := argString(args, "contact_id", "")
	if contactID == "" {
		return nil, fmt.Errorf("contact_id is required")
	}
	limit := argInt(args, "limit", 20)
	if limit < 1 {
		limit = 1
	}

	history, err := t.contacts.ContactInteractions(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if len(history) > limit {
		history = history[:limit]
	}

	return map[string]any{
		"contact_id":   contactID,
		"interactions": history,
		"limit":        limit,
		"instruction":  contactInteractionsInstruction,
	}, nil
}
