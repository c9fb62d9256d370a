package decode

import (
	"fmt"

	"github.com/google/uuid"
)

// BulletMove is one repositioned resume bullet.
//
// Accepted field names, in priority order:
//   - bullet id:   "id", "bullet_id"
//   - position:    "new_position", "recommended_position"
//   - rationale:   "rationale", "reason" (optional, defaults to "")
type BulletMove struct {
	BulletID    string `json:"id"`
	NewPosition int    `json:"new_position"`
	Rationale   string `json:"rationale,omitempty"`
}

// BulletReorder is the canonical reply of the resume bullet-reorder
// workflow. The wire envelope is an object with a "moves" array (accepted
// aliases: "bullets", "items"), or a bare array of move objects.
type BulletReorder struct {
	Moves []BulletMove `json:"moves"`
}

// DecodeBulletReorder parses a model reply into a BulletReorder.
// The result is not validated; call Validate before using it.
func DecodeBulletReorder(text string) (*BulletReorder, error) {
	doc, err := parseDocument(text)
	if err != nil {
		return nil, err
	}

	items, err := arrayField(doc, "moves", "moves", "bullets", "items")
	if err != nil {
		return nil, err
	}

	out := &BulletReorder{Moves: make([]BulletMove, 0, len(items))}
	for i, raw := range items {
		item, err := asObject(raw, i)
		if err != nil {
			return nil, err
		}

		id, err := stringField(item, true, "id", "id", "bullet_id")
		if err != nil {
			return nil, err
		}
		pos, err := intField(item, true, "new_position", "new_position", "recommended_position")
		if err != nil {
			return nil, err
		}
		rationale, _ := stringField(item, false, "rationale", "rationale", "reason")

		out.Moves = append(out.Moves, BulletMove{
			BulletID:    id,
			NewPosition: pos,
			Rationale:   rationale,
		})
	}
	return out, nil
}

// Validate enforces the semantic invariants of a decoded reorder:
// at least one move, every bullet id a syntactically valid UUID, ids
// unique, and positions non-negative.
func (r *BulletReorder) Validate() error {
	if len(r.Moves) == 0 {
		return &ValidationError{Cause: "reorder contains no moves"}
	}
	seen := make(map[string]bool, len(r.Moves))
	for _, m := range r.Moves {
		if _, err := uuid.Parse(m.BulletID); err != nil {
			return &ValidationError{Cause: fmt.Sprintf("bullet id %q is not a valid UUID", m.BulletID)}
		}
		if seen[m.BulletID] {
			return &ValidationError{Cause: fmt.Sprintf("bullet id %q repositioned twice", m.BulletID)}
		}
		seen[m.BulletID] = true
		if m.NewPosition < 0 {
			return &ValidationError{Cause: fmt.Sprintf("bullet %q has negative position %d", m.BulletID, m.NewPosition)}
		}
	}
	return nil
}
