package tools

import (
	"context"

	"github.com/huntboard/huntboard/internal/schema"
)

const resumeSnapshotInstruction = "Using the resume above, produce a JSON object with a \"moves\" array. Each element must have \"id\" (copy the bullet id exactly), \"new_position\" (integer, 0-based position within its section), and \"rationale\" (one sentence). Include every bullet of the section you were asked to reorder. Return only JSON."

// ResumeSnapshotTool returns the current resume as structured data.
type ResumeSnapshotTool struct {
	resume schema.ResumeSource
}

func NewResumeSnapshotTool(resume schema.ResumeSource) *ResumeSnapshotTool {
	return &ResumeSnapshotTool{resume: resume}
}

func (t *ResumeSnapshotTool) Name() string { return "resume_snapshot" }
func (t *ResumeSnapshotTool) Description() string {
	return "Get the current resume as structured sections, bullets, and skills."
}

func (t *ResumeSnapshotTool) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	section := argString(args, "section", "")

	snapshot, err := t.resume.ResumeSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"resume":      snapshot,
		"instruction": resumeSnapshotInstruction,
	}
	if section != "" {
		payload["section"] = section
	}
	return payload, nil
}
