package schema

import "context"

// The context-provider interfaces below are the contract between tool
// handlers and the application's data layer. Every accessor is read-only
// and returns an already-JSON-serialisable structure; failures propagate
// as ordinary errors and are converted to error envelopes by the
// dispatcher. Tools depend on the narrowest interface they need.

// TaskSource supplies the day's follow-up and application tasks.
type TaskSource interface {
	DailyTaskContext(ctx context.Context) (map[string]any, error)
}

// JobSource supplies tracked job applications.
type JobSource interface {
	JobSnapshot(ctx context.Context, jobID string) (map[string]any, error)
	PipelineSummary(ctx context.Context) (map[string]any, error)
	ExistingSourceURLs(ctx context.Context) ([]string, error)
}

// ContactSource supplies networking contacts and their history.
type ContactSource interface {
	ContactInteractions(ctx context.Context, contactID string) ([]map[string]any, error)
	ContactsForJob(ctx context.Context, jobID string) ([]map[string]any, error)
}

// EventSource supplies networking events.
type EventSource interface {
	EventContext(ctx context.Context, eventID string) (map[string]any, error)
	UpcomingEvents(ctx context.Context) ([]map[string]any, error)
}

// PreferenceSource supplies the user's search preferences.
type PreferenceSource interface {
	Preferences(ctx context.Context) (map[string]any, error)
}

// ResumeSource supplies the current resume as structured data.
// The document store itself is an external collaborator; this is the
// only view of it the agent core needs.
type ResumeSource interface {
	ResumeSnapshot(ctx context.Context) (map[string]any, error)
}

// ContextProvider is the full provider contract, implemented by the
// workspace store and by test fakes.
type ContextProvider interface {
	TaskSource
	JobSource
	ContactSource
	EventSource
	PreferenceSource
	ResumeSource
}
