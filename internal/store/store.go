// Package store reads the workspace data files backing the context
// provider: jobs, contacts, events, preferences, and the resume.
//
// Files are plain JSON, owned by the desktop app. The store reads them
// on every call; it holds no cache, so edits made by the app are visible
// immediately. A missing optional file degrades to empty data; a missing
// resume or a malformed file is an error.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const dateLayout = "2006-01-02"

// Store is the workspace-backed context provider.
type Store struct {
	workspace string
	now       func() time.Time // test seam
}

// New creates a Store rooted at the workspace directory, creating it if
// necessary.
func New(workspace string) (*Store, error) {
	if err := os.MkdirAll(workspace, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Store{workspace: workspace, now: time.Now}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.workspace, name)
}

// readJSON decodes one workspace file into out. Missing files return
// os.ErrNotExist untouched so callers can choose their fallback.
func (s *Store) readJSON(name string, out any) error {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("workspace file %s: parse: %w", name, err)
	}
	return nil
}

func (s *Store) readObjects(name string) ([]map[string]any, error) {
	var out []map[string]any
	if err := s.readJSON(name, &out); err != nil {
		if os.IsNotExist(err) {
			return []map[string]any{}, nil
		}
		return nil, err
	}
	return out, nil
}

// DailyTaskContext derives the day's tasks from job follow-up dates and
// explicit entries in tasks.json.
func (s *Store) DailyTaskContext(ctx context.Context) (map[string]any, error) {
	jobs, err := s.readObjects("jobs.json")
	if err != nil {
		return nil, err
	}
	tasks, err := s.readObjects("tasks.json")
	if err != nil {
		return nil, err
	}

	today := s.now().Format(dateLayout)
	overdue := []map[string]any{}
	due := []map[string]any{}

	classify := func(item map[string]any, date string) {
		switch {
		case date == "":
		case date < today:
			overdue = append(overdue, item)
		case date == today:
			due = append(due, item)
		}
	}

	for _, job := range jobs {
		date, _ := job["next_action_date"].(string)
		if date == "" {
			continue
		}
		action, _ := job["next_action"].(string)
		classify(map[string]any{
			"id":      fmt.Sprintf("job:%v", job["id"]),
			"job_id":  job["id"],
			"company": job["company"],
			"title":   action,
			"due":     date,
		}, date)
	}
	for _, task := range tasks {
		date, _ := task["due"].(string)
		classify(task, date)
	}

	return map[string]any{
		"date":    today,
		"overdue": overdue,
		"today":   due,
	}, nil
}

// JobSnapshot returns one tracked application by id.
func (s *Store) JobSnapshot(ctx context.Context, jobID string) (map[string]any, error) {
	jobs, err := s.readObjects("jobs.json")
	if err != nil {
		return nil, err
	}
	for _, job := range jobs {
		if id, _ := job["id"].(string); id == jobID {
			return job, nil
		}
	}
	return nil, fmt.Errorf("job not found: %s", jobID)
}

// PipelineSummary groups the tracked applications by stage.
func (s *Store) PipelineSummary(ctx context.Context) (map[string]any, error) {
	jobs, err := s.readObjects("jobs.json")
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	byStage := map[string][]map[string]any{}
	for _, job := range jobs {
		stage, _ := job["stage"].(string)
		if stage == "" {
			stage = "unsorted"
		}
		counts[stage]++
		byStage[stage] = append(byStage[stage], map[string]any{
			"id":      job["id"],
			"company": job["company"],
			"role":    job["role"],
		})
	}

	return map[string]any{
		"total":  len(jobs),
		"counts": counts,
		"stages": byStage,
	}, nil
}

// ExistingSourceURLs collects the posting URL of every tracked job.
func (s *Store) ExistingSourceURLs(ctx context.Context) ([]string, error) {
	jobs, err := s.readObjects("jobs.json")
	if err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(jobs))
	for _, job := range jobs {
		if u, _ := job["source_url"].(string); u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}

// ContactInteractions returns one contact's interaction history, most
// recent first as stored.
func (s *Store) ContactInteractions(ctx context.Context, contactID string) ([]map[string]any, error) {
	contact, err := s.contactByID(contactID)
	if err != nil {
		return nil, err
	}

	raw, _ := contact["interactions"].([]any)
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// ContactsForJob returns every contact linked to the given job.
func (s *Store) ContactsForJob(ctx context.Context, jobID string) ([]map[string]any, error) {
	contacts, err := s.readObjects("contacts.json")
	if err != nil {
		return nil, err
	}

	out := []map[string]any{}
	for _, contact := range contacts {
		ids, _ := contact["job_ids"].([]any)
		for _, id := range ids {
			if sid, _ := id.(string); sid == jobID {
				out = append(out, contact)
				break
			}
		}
	}
	return out, nil
}

// EventContext returns one networking event by id.
func (s *Store) EventContext(ctx context.Context, eventID string) (map[string]any, error) {
	events, err := s.readObjects("events.json")
	if err != nil {
		return nil, err
	}
	for _, ev := range events {
		if id, _ := ev["id"].(string); id == eventID {
			return ev, nil
		}
	}
	return nil, fmt.Errorf("event not found: %s", eventID)
}

// UpcomingEvents returns events dated today or later, in file order.
func (s *Store) UpcomingEvents(ctx context.Context) ([]map[string]any, error) {
	events, err := s.readObjects("events.json")
	if err != nil {
		return nil, err
	}

	today := s.now().Format(dateLayout)
	out := []map[string]any{}
	for _, ev := range events {
		if date, _ := ev["date"].(string); date >= today {
			out = append(out, ev)
		}
	}
	return out, nil
}

// Preferences returns the user's search preferences; an absent file means
// no preferences set yet.
func (s *Store) Preferences(ctx context.Context) (map[string]any, error) {
	var prefs map[string]any
	if err := s.readJSON("preferences.json", &prefs); err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	return prefs, nil
}

// ResumeSnapshot returns the structured resume. Unlike the other files
// it is required: every resume workflow is meaningless without it.
func (s *Store) ResumeSnapshot(ctx context.Context) (map[string]any, error) {
	var resume map[string]any
	if err := s.readJSON("resume.json", &resume); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no resume in workspace; add resume.json first")
		}
		return nil, err
	}
	return resume, nil
}

func (s *Store) contactByID(contactID string) (map[string]any, error) {
	contacts, err := s.readObjects("contacts.json")
	if err != nil {
		return nil, err
	}
	for _, contact := range contacts {
		if id, _ := contact["id"].(string); id == contactID {
			return contact, nil
		}
	}
	return nil, fmt.Errorf("contact not found: %s", contactID)
}
