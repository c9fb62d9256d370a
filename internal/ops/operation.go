// Package ops tracks the lifecycle, transcript, and token cost of
// asynchronous AI operations.
//
// The tracker is a single serialization domain: every mutation goes through
// its mutex-guarded methods, and Operation values handed out are copies.
// Nothing here is persisted; history does not survive a restart.
package ops

import "time"

// Status is the lifecycle state of an operation.
// Transitions: pending → running → {completed, failed}. Terminal states
// are never left.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Terminal reports whether s is a terminal state.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Kind classifies what an operation is doing.
type Kind string

const (
	KindWorkflow Kind = "workflow" // multi-step LLM ↔ tool run
	KindTool     Kind = "tool"     // single tool invocation
	KindDigest   Kind = "digest"   // scheduled reminder digest
)

// EntryType classifies a transcript entry.
type EntryType string

const (
	EntrySystem        EntryType = "system"
	EntryModelRequest  EntryType = "model_request"
	EntryModelResponse EntryType = "model_response"
	EntryError         EntryType = "error"
	EntryPhase         EntryType = "phase"
)

// TranscriptEntry is one event in an operation's append-only transcript.
// Insertion order is the only ordering guarantee; timestamps are
// informational.
type TranscriptEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      EntryType `json:"type"`
	Content   string    `json:"content"`
	Details   string    `json:"details,omitempty"`
}

// Operation is one tracked AI operation. Values returned by the tracker
// are snapshots; mutating them has no effect on tracked state.
type Operation struct {
	ID           string            `json:"id"`
	Kind         Kind              `json:"kind"`
	Name         string            `json:"name"`
	Status       Status            `json:"status"`
	StartTime    time.Time         `json:"startTime"`
	EndTime      *time.Time        `json:"endTime,omitempty"`
	Transcript   []TranscriptEntry `json:"transcript"`
	Error        string            `json:"error,omitempty"`
	CurrentPhase string            `json:"currentPhase,omitempty"`
	InputTokens  int               `json:"inputTokens"`
	OutputTokens int               `json:"outputTokens"`
}

// clone returns a deep copy safe to hand outside the tracker's lock.
func (o *Operation) clone() Operation {
	out := *o
	out.Transcript = make([]TranscriptEntry, len(o.Transcript))
	copy(out.Transcript, o.Transcript)
	if o.EndTime != nil {
		end := *o.EndTime
		out.EndTime = &end
	}
	return out
}
