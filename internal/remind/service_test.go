package remind

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func testService(t *testing.T) *Service {
	t.Helper()
	return NewService(filepath.Join(t.TempDir(), "reminders.json"))
}

func TestAddPersistsAndComputesNextRun(t *testing.T) {
	s := testService(t)

	r, err := s.Add(context.Background(), "morning digest", "0 9 * * *", "")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if r.ID == "" || !r.Enabled {
		t.Fatalf("reminder = %+v", r)
	}

	data, err := os.ReadFile(s.storePath)
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	var st reminderStore
	if err := json.Unmarshal(data, &st); err != nil {
		t.Fatalf("parse store: %v", err)
	}
	if st.Version != 1 || len(st.Reminders) != 1 {
		t.Fatalf("store = %+v", st)
	}
	if st.Reminders[0].State.NextRunAtMs == nil {
		t.Fatal("next run not computed")
	}
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	s := testService(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		r, err := s.Add(context.Background(), "digest", "0 9 * * *", "")
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		if _, err := uuid.Parse(r.ID); err != nil {
			t.Fatalf("id %q is not a UUID: %v", r.ID, err)
		}
		if seen[r.ID] {
			t.Fatalf("duplicate id %q after %d adds", r.ID, i+1)
		}
		seen[r.ID] = true
	}
}

func TestAddRejectsBadSchedule(t *testing.T) {
	s := testService(t)

	if _, err := s.Add(context.Background(), "bad", "not a cron expr", ""); err == nil {
		t.Fatal("expected error for invalid expression")
	}
	if _, err := s.Add(context.Background(), "bad tz", "0 9 * * *", "Mars/Olympus"); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

func TestListSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reminders.json")

	s1 := NewService(path)
	if _, err := s1.Add(context.Background(), "digest", "0 9 * * *", ""); err != nil {
		t.Fatalf("Add: %v", err)
	}

	s2 := NewService(path)
	out := s2.List()
	if len(out) != 1 || out[0].Name != "digest" {
		t.Fatalf("reloaded reminders = %+v", out)
	}
}

func TestRemove(t *testing.T) {
	s := testService(t)
	r, _ := s.Add(context.Background(), "digest", "0 9 * * *", "")

	if !s.Remove(r.ID) {
		t.Fatal("Remove returned false for existing reminder")
	}
	if s.Remove(r.ID) {
		t.Fatal("Remove returned true for deleted reminder")
	}
	if len(s.List()) != 0 {
		t.Fatal("reminder still listed after removal")
	}
}

func TestEnableDisable(t *testing.T) {
	s := testService(t)
	r, _ := s.Add(context.Background(), "digest", "0 9 * * *", "")

	updated, ok := s.Enable(context.Background(), r.ID, false)
	if !ok || updated.Enabled {
		t.Fatalf("disable failed: %+v", updated)
	}
	if updated.State.NextRunAtMs != nil {
		t.Fatal("disabled reminder still has a next run")
	}

	updated, ok = s.Enable(context.Background(), r.ID, true)
	if !ok || !updated.Enabled || updated.State.NextRunAtMs == nil {
		t.Fatalf("re-enable failed: %+v", updated)
	}
}

func TestRunNowInvokesCallbackAndRecordsState(t *testing.T) {
	s := testService(t)
	r, _ := s.Add(context.Background(), "digest", "0 9 * * *", "")

	fired := 0
	s.SetOnFire(func(ctx context.Context, rm Reminder) (string, error) {
		fired++
		if rm.ID != r.ID {
			t.Fatalf("fired wrong reminder: %+v", rm)
		}
		return "briefing sent", nil
	})

	if !s.RunNow(context.Background(), r.ID) {
		t.Fatal("RunNow returned false")
	}
	if fired != 1 {
		t.Fatalf("callback fired %d times", fired)
	}

	out := s.List()
	if out[0].State.LastStatus == nil || *out[0].State.LastStatus != "ok" {
		t.Fatalf("state = %+v", out[0].State)
	}

	if s.RunNow(context.Background(), "missing") {
		t.Fatal("RunNow returned true for unknown id")
	}
}
