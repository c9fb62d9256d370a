package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/huntboard/huntboard/internal/decode"
	"github.com/huntboard/huntboard/internal/ops"
	"github.com/huntboard/huntboard/internal/schema"
	"github.com/huntboard/huntboard/internal/shared/llmutils"
)

// Workflows exposes the tracked, high-level operations the app offers:
// each one runs the tool loop under a fresh tracked operation and decodes
// the model's terminal reply where a structured result is expected.
type Workflows struct {
	runner  *Runner
	prompts *PromptLoader
	tracker *ops.Tracker
	events  schema.EventSource
}

func NewWorkflows(runner *Runner, prompts *PromptLoader, tracker *ops.Tracker, events schema.EventSource) *Workflows {
	return &Workflows{runner: runner, prompts: prompts, tracker: tracker, events: events}
}

// start tracks a fresh operation and returns its id.
func (w *Workflows) start(kind ops.Kind, name string) string {
	id := uuid.NewString()
	w.tracker.Track(id, kind, name)
	return id
}

// runPrompt loads the named prompt, seeds the conversation, and drives the
// loop. The terminal reply is returned raw; the operation stays running
// for the caller to terminate after decoding.
func (w *Workflows) runPrompt(ctx context.Context, opID, promptName, userMessage string) (string, error) {
	prompt, err := w.prompts.Load(promptName)
	if err != nil {
		return "", err
	}

	conversation := schema.NewMessages()
	conversation.AddSystem(prompt.System)
	conversation.AddUser(userMessage)
	w.tracker.AppendTranscript(opID, ops.EntrySystem, prompt.Meta.Description, "")

	opts := schema.NewChatOptions(prompt.Meta.Model, 0, prompt.Meta.Temperature)
	return w.runner.Run(ctx, opID, conversation, opts)
}

// ReorderResume asks the model to reorder one resume section's bullets
// for a target job and returns the validated move list.
func (w *Workflows) ReorderResume(ctx context.Context, section, jobID string) (*decode.BulletReorder, string, error) {
	opID := w.start(ops.KindWorkflow, "resume_reorder")

	msg := fmt.Sprintf("Reorder the %q section of my resume for job %s.", section, jobID)
	reply, err := w.runPrompt(ctx, opID, "resume_reorder", msg)
	if err != nil {
		w.tracker.MarkFailed(opID, err.Error())
		return nil, opID, err
	}

	reorder, err := decode.DecodeBulletReorder(reply)
	if err != nil {
		w.tracker.MarkFailed(opID, err.Error())
		return nil, opID, err
	}
	if err := reorder.Validate(); err != nil {
		w.tracker.MarkFailed(opID, err.Error())
		return nil, opID, err
	}

	w.tracker.MarkCompleted(opID)
	return reorder, opID, nil
}

// MergeSkills asks the model to consolidate the resume's skills and
// returns the validated merge.
func (w *Workflows) MergeSkills(ctx context.Context) (*decode.SkillMerge, string, error) {
	opID := w.start(ops.KindWorkflow, "skill_merge")

	reply, err := w.runPrompt(ctx, opID, "skill_merge", "Consolidate the skills on my resume.")
	if err != nil {
		w.tracker.MarkFailed(opID, err.Error())
		return nil, opID, err
	}

	merge, err := decode.DecodeSkillMerge(reply)
	if err != nil {
		w.tracker.MarkFailed(opID, err.Error())
		return nil, opID, err
	}
	if err := merge.Validate(); err != nil {
		w.tracker.MarkFailed(opID, err.Error())
		return nil, opID, err
	}

	w.tracker.MarkCompleted(opID)
	return merge, opID, nil
}

// DailyDigest produces the plain-text morning briefing. Upcoming events
// are injected into the request up front so the briefing covers them even
// when the model skips the event tools.
func (w *Workflows) DailyDigest(ctx context.Context) (string, string, error) {
	opID := w.start(ops.KindDigest, "daily_digest")

	msg := "Give me my briefing for today."
	if events, err := w.events.UpcomingEvents(ctx); err != nil {
		slog.Warn("Upcoming events unavailable for digest", "err", err)
	} else if len(events) > 0 {
		if data, err := json.Marshal(events); err == nil {
			msg += "\n\nUpcoming events:\n" + string(data)
		}
	}

	reply, err := w.runPrompt(ctx, opID, "daily_digest", msg)
	if err != nil {
		w.tracker.MarkFailed(opID, err.Error())
		return "", opID, err
	}

	digest := llmutils.ExtractJSON(reply)
	if digest == "" {
		err := fmt.Errorf("model returned an empty digest")
		w.tracker.MarkFailed(opID, err.Error())
		return "", opID, err
	}

	w.tracker.MarkCompleted(opID)
	return digest, opID, nil
}
