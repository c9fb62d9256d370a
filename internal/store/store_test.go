package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Frozen clock: 2026-03-10.
	s.now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestDailyTaskContextClassifiesByDate(t *testing.T) {
	s := testStore(t)
	writeFile(t, s.workspace, "jobs.json", `[
		{"id":"j-1","company":"Acme","next_action":"follow up","next_action_date":"2026-03-09"},
		{"id":"j-2","company":"Globex","next_action":"send thank-you","next_action_date":"2026-03-10"},
		{"id":"j-3","company":"Initech","next_action":"prep","next_action_date":"2026-03-14"}
	]`)
	writeFile(t, s.workspace, "tasks.json", `[
		{"id":"t-1","title":"update portfolio","due":"2026-03-10"}
	]`)

	out, err := s.DailyTaskContext(context.Background())
	if err != nil {
		t.Fatalf("DailyTaskContext: %v", err)
	}
	overdue := out["overdue"].([]map[string]any)
	today := out["today"].([]map[string]any)
	if len(overdue) != 1 || overdue[0]["job_id"] != "j-1" {
		t.Fatalf("overdue = %v", overdue)
	}
	if len(today) != 2 {
		t.Fatalf("today = %v", today)
	}
}

func TestDailyTaskContextEmptyWorkspace(t *testing.T) {
	s := testStore(t)

	out, err := s.DailyTaskContext(context.Background())
	if err != nil {
		t.Fatalf("DailyTaskContext: %v", err)
	}
	if len(out["overdue"].([]map[string]any)) != 0 {
		t.Fatalf("expected no overdue tasks: %v", out)
	}
}

func TestJobSnapshot(t *testing.T) {
	s := testStore(t)
	writeFile(t, s.workspace, "jobs.json", `[{"id":"j-1","company":"Acme","stage":"applied"}]`)

	job, err := s.JobSnapshot(context.Background(), "j-1")
	if err != nil {
		t.Fatalf("JobSnapshot: %v", err)
	}
	if job["company"] != "Acme" {
		t.Fatalf("job = %v", job)
	}

	if _, err := s.JobSnapshot(context.Background(), "j-404"); err == nil {
		t.Fatal("expected error for unknown job")
	}
}

func TestPipelineSummary(t *testing.T) {
	s := testStore(t)
	writeFile(t, s.workspace, "jobs.json", `[
		{"id":"j-1","company":"Acme","role":"SWE","stage":"applied"},
		{"id":"j-2","company":"Globex","role":"SRE","stage":"applied"},
		{"id":"j-3","company":"Initech","role":"SWE"}
	]`)

	out, err := s.PipelineSummary(context.Background())
	if err != nil {
		t.Fatalf("PipelineSummary: %v", err)
	}
	counts := out["counts"].(map[string]int)
	if counts["applied"] != 2 || counts["unsorted"] != 1 {
		t.Fatalf("counts = %v", counts)
	}
	if out["total"] != 3 {
		t.Fatalf("total = %v", out["total"])
	}
}

func TestExistingSourceURLsSkipsEmpty(t *testing.T) {
	s := testStore(t)
	writeFile(t, s.workspace, "jobs.json", `[
		{"id":"j-1","source_url":"https://acme.example/jobs/1"},
		{"id":"j-2"}
	]`)

	urls, err := s.ExistingSourceURLs(context.Background())
	if err != nil {
		t.Fatalf("ExistingSourceURLs: %v", err)
	}
	if len(urls) != 1 || urls[0] != "https://acme.example/jobs/1" {
		t.Fatalf("urls = %v", urls)
	}
}

func TestContactsAndInteractions(t *testing.T) {
	s := testStore(t)
	writeFile(t, s.workspace, "contacts.json", `[
		{"id":"c-1","name":"Dana","job_ids":["j-1"],"interactions":[{"date":"2026-03-01","note":"coffee"}]},
		{"id":"c-2","name":"Sam","job_ids":["j-2"]}
	]`)

	history, err := s.ContactInteractions(context.Background(), "c-1")
	if err != nil {
		t.Fatalf("ContactInteractions: %v", err)
	}
	if len(history) != 1 || history[0]["note"] != "coffee" {
		t.Fatalf("history = %v", history)
	}

	if _, err := s.ContactInteractions(context.Background(), "c-404"); err == nil {
		t.Fatal("expected error for unknown contact")
	}

	linked, err := s.ContactsForJob(context.Background(), "j-1")
	if err != nil {
		t.Fatalf("ContactsForJob: %v", err)
	}
	if len(linked) != 1 || linked[0]["name"] != "Dana" {
		t.Fatalf("linked = %v", linked)
	}
}

func TestEvents(t *testing.T) {
	s := testStore(t)
	writeFile(t, s.workspace, "events.json", `[
		{"id":"e-1","name":"Go meetup","date":"2026-03-05"},
		{"id":"e-2","name":"Job fair","date":"2026-03-12"}
	]`)

	ev, err := s.EventContext(context.Background(), "e-2")
	if err != nil {
		t.Fatalf("EventContext: %v", err)
	}
	if ev["name"] != "Job fair" {
		t.Fatalf("event = %v", ev)
	}

	upcoming, err := s.UpcomingEvents(context.Background())
	if err != nil {
		t.Fatalf("UpcomingEvents: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0]["id"] != "e-2" {
		t.Fatalf("upcoming = %v", upcoming)
	}
}

func TestPreferencesMissingFileIsEmpty(t *testing.T) {
	s := testStore(t)

	prefs, err := s.Preferences(context.Background())
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if len(prefs) != 0 {
		t.Fatalf("prefs = %v", prefs)
	}
}

func TestResumeSnapshotRequired(t *testing.T) {
	s := testStore(t)

	if _, err := s.ResumeSnapshot(context.Background()); err == nil {
		t.Fatal("expected error without resume.json")
	}

	writeFile(t, s.workspace, "resume.json", `{"sections":[{"name":"experience","bullets":[]}]}`)
	resume, err := s.ResumeSnapshot(context.Background())
	if err != nil {
		t.Fatalf("ResumeSnapshot: %v", err)
	}
	if _, ok := resume["sections"]; !ok {
		t.Fatalf("resume = %v", resume)
	}
}

func TestMalformedFileIsAnError(t *testing.T) {
	s := testStore(t)
	writeFile(t, s.workspace, "jobs.json", `{not json`)

	if _, err := s.PipelineSummary(context.Background()); err == nil {
		t.Fatal("expected parse error")
	}
}
