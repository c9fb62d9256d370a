package tools

import (
	"context"

	"github.com/huntboard/huntboard/internal/schema"
)

const userPreferencesInstruction = "Using the preferences above, score the job under discussion. Produce a JSON object with \"fit\" (integer 0-100) and \"mismatches\" (array of strings naming each preference the job violates, empty if none). Return only JSON."

// UserPreferencesTool returns the user's search preferences.
type UserPreferencesTool struct {
	prefs schema.PreferenceSource
}

func NewUserPreferencesTool(prefs schema.PreferenceSource) *UserPreferencesTool {
	return &UserPreferencesTool{prefs: prefs}
}

func (t *UserPreferencesTool) Name() string { return "user_preferences" }
func (t *UserPreferencesTool) Description() string {
	return "Get the user's search preferences: target roles, locations, salary range."
}

func (t *UserPreferencesTool) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	prefs, err := t.prefs.Preferences(ctx)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"preferences": prefs,
		"instruction": userPreferencesInstruction,
	}, nil
}
