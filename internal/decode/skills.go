package decode

import (
	"fmt"

	"github.com/google/uuid"
)

// MergedSkill is one consolidated skill in a skill-merge reply.
//
// Accepted field names, in priority order:
//   - skill id:  "id", "skill_id"
//   - name:      "name", "skill_name"
//   - category:  "category", "group" (optional, defaults to "")
//   - absorbed:  "absorbed_ids", "merged_from" (optional, defaults to empty)
type MergedSkill struct {
	SkillID  string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category,omitempty"`
	Absorbed []string `json:"absorbed_ids,omitempty"`
}

// SkillMerge is the canonical reply of the skill-consolidation workflow.
// The wire envelope is an object with a "merged_skills" array (accepted
// aliases: "skills", "items"), or a bare array of skill objects.
type SkillMerge struct {
	Skills []MergedSkill `json:"merged_skills"`
}

// DecodeSkillMerge parses a model reply into a SkillMerge.
// The result is not validated; call Validate before using it.
func DecodeSkillMerge(text string) (*SkillMerge, error) {
	doc, err := parseDocument(text)
	if err != nil {
		return nil, err
	}

	items, err := arrayField(doc, "merged_skills", "merged_skills", "skills", "items")
	if err != nil {
		return nil, err
	}

	out := &SkillMerge{Skills: make([]MergedSkill, 0, len(items))}
	for i, raw := range items {
		item, err := asObject(raw, i)
		if err != nil {
			return nil, err
		}

		id, err := stringField(item, true, "id", "id", "skill_id")
		if err != nil {
			return nil, err
		}
		name, err := stringField(item, true, "name", "name", "skill_name")
		if err != nil {
			return nil, err
		}
		category, _ := stringField(item, false, "category", "category", "group")
		absorbed := stringSliceField(item, "absorbed_ids", "merged_from")

		out.Skills = append(out.Skills, MergedSkill{
			SkillID:  id,
			Name:     name,
			Category: category,
			Absorbed: absorbed,
		})
	}
	return out, nil
}

// Validate enforces the semantic invariants of a decoded merge: at least
// one surviving skill, every id (including absorbed ids) a syntactically
// valid UUID, surviving ids unique, and names non-empty.
func (m *SkillMerge) Validate() error {
	if len(m.Skills) == 0 {
		return &ValidationError{Cause: "merge contains no skills"}
	}
	seen := make(map[string]bool, len(m.Skills))
	for _, s := range m.Skills {
		if _, err := uuid.Parse(s.SkillID); err != nil {
			return &ValidationError{Cause: fmt.Sprintf("skill id %q is not a valid UUID", s.SkillID)}
		}
		if seen[s.SkillID] {
			return &ValidationError{Cause: fmt.Sprintf("skill id %q appears twice", s.SkillID)}
		}
		seen[s.SkillID] = true
		if s.Name == "" {
			return &ValidationError{Cause: fmt.Sprintf("skill %q has an empty name", s.SkillID)}
		}
		for _, a := range s.Absorbed {
			if _, err := uuid.Parse(a); err != nil {
				return &ValidationError{Cause: fmt.Sprintf("absorbed id %q is not a valid UUID", a)}
			}
		}
	}
	return nil
}
