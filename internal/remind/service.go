// Package remind schedules recurring reminders, most importantly the
// morning digest. Reminders persist as JSON in the workspace:
//
//	{ "version": 1, "reminders": [ { "id":"…", "name":"…", "enabled":true,
//	    "expr":"0 9 * * *", "tz":"Europe/Berlin",
//	    "state":{"lastRunAtMs":…,"lastStatus":"ok"},
//	    "createdAtMs":…, "updatedAtMs":… } ] }
package remind

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	robfigcron "github.com/robfig/cron/v3"
)

type ReminderState struct {
	NextRunAtMs *int64  `json:"nextRunAtMs,omitempty"`
	LastRunAtMs *int64  `json:"lastRunAtMs,omitempty"`
	LastStatus  *string `json:"lastStatus,omitempty"`
	LastError   *string `json:"lastError,omitempty"`
}

type Reminder struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Enabled     bool          `json:"enabled"`
	Expr        string        `json:"expr"` // standard 5-field cron expression
	TZ          string        `json:"tz,omitempty"`
	State       ReminderState `json:"state"`
	CreatedAtMs int64         `json:"createdAtMs"`
	UpdatedAtMs int64         `json:"updatedAtMs"`
}

type reminderStore struct {
	Version   int        `json:"version"`
	Reminders []Reminder `json:"reminders"`
}

// OnFireFunc runs when a reminder fires. The returned text is logged; the
// digest output itself reaches the user through the operations feed.
type OnFireFunc func(ctx context.Context, r Reminder) (string, error)

// Service manages the reminder schedule.
type Service struct {
	storePath string
	onFire    OnFireFunc

	mu     sync.Mutex
	store  reminderStore
	cron   *robfigcron.Cron
	crnIDs map[string]robfigcron.EntryID // reminder ID → cron entry
}

// NewService creates a Service persisting to storePath
// (e.g. ~/.huntboard/workspace/reminders.json).
func NewService(storePath string) *Service {
	return &Service{
		storePath: storePath,
		cron:      robfigcron.New(),
		crnIDs:    make(map[string]robfigcron.EntryID),
	}
}

// SetOnFire registers the callback executed when a reminder fires.
// Must be set before Start().
func (s *Service) SetOnFire(fn OnFireFunc) { s.onFire = fn }

// Start loads reminders from disk, arms them, and blocks until ctx is
// cancelled.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if err := s.loadLocked(); err != nil {
		slog.Warn("Reminders load failed, starting empty", "err", err)
	}
	for _, r := range s.store.Reminders {
		if r.Enabled {
			s.armLocked(ctx, r)
		}
	}
	s.refreshNextRunsLocked()
	s.saveLocked()
	s.mu.Unlock()

	s.cron.Start()
	slog.Info("Reminders started", "count", len(s.store.Reminders))

	<-ctx.Done()

	<-s.cron.Stop().Done()
	return ctx.Err()
}

// Add creates a new enabled reminder and arms it if the service runs.
func (s *Service) Add(ctx context.Context, name, expr, tz string) (Reminder, error) {
	if _, err := parseExpr(expr, tz); err != nil {
		return Reminder{}, fmt.Errorf("invalid schedule %q: %w", expr, err)
	}

	now := nowMs()
	r := Reminder{
		ID:          uuid.NewString(),
		Name:        name,
		Enabled:     true,
		Expr:        expr,
		TZ:          tz,
		CreatedAtMs: now,
		UpdatedAtMs: now,
	}

	s.mu.Lock()
	s.store.Reminders = append(s.store.Reminders, r)
	s.armLocked(ctx, r)
	s.refreshNextRunsLocked()
	s.saveLocked()
	s.mu.Unlock()

	slog.Info("Reminder added", "name", name, "id", r.ID, "expr", expr)
	return r, nil
}

// List returns all reminders sorted by next run, soonest first.
func (s *Service) List() []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.loadLocked()
	s.refreshNextRunsLocked()

	out := make([]Reminder, len(s.store.Reminders))
	copy(out, s.store.Reminders)
	sort.Slice(out, func(i, k int) bool {
		a := int64(^uint64(0) >> 1)
		b := int64(^uint64(0) >> 1)
		if out[i].State.NextRunAtMs != nil {
			a = *out[i].State.NextRunAtMs
		}
		if out[k].State.NextRunAtMs != nil {
			b = *out[k].State.NextRunAtMs
		}
		return a < b
	})
	return out
}

// Remove deletes a reminder by ID and returns true if found.
func (s *Service) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.store.Reminders)
	filtered := s.store.Reminders[:0]
	for _, r := range s.store.Reminders {
		if r.ID != id {
			filtered = append(filtered, r)
		}
	}
	s.store.Reminders = filtered
	if len(filtered) < before {
		s.disarmLocked(id)
		s.saveLocked()
		return true
	}
	return false
}

// Enable switches a reminder on or off.
func (s *Service) Enable(ctx context.Context, id string, enabled bool) (Reminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.store.Reminders {
		if s.store.Reminders[i].ID != id {
			continue
		}
		s.store.Reminders[i].Enabled = enabled
		s.store.Reminders[i].UpdatedAtMs = nowMs()
		if enabled {
			s.armLocked(ctx, s.store.Reminders[i])
		} else {
			s.disarmLocked(id)
			s.store.Reminders[i].State.NextRunAtMs = nil
		}
		s.refreshNextRunsLocked()
		s.saveLocked()
		return s.store.Reminders[i], true
	}
	return Reminder{}, false
}

// RunNow fires a reminder immediately, ignoring its schedule.
func (s *Service) RunNow(ctx context.Context, id string) bool {
	s.mu.Lock()
	var hit *Reminder
	for i := range s.store.Reminders {
		if s.store.Reminders[i].ID == id {
			hit = &s.store.Reminders[i]
			break
		}
	}
	if hit == nil {
		s.mu.Unlock()
		return false
	}
	r := *hit
	s.mu.Unlock()

	s.fire(ctx, r)
	return true
}

func (s *Service) armLocked(ctx context.Context, r Reminder) {
	s.disarmLocked(r.ID)

	sched, err := parseExpr(r.Expr, r.TZ)
	if err != nil {
		slog.Warn("Invalid reminder schedule", "id", r.ID, "expr", r.Expr, "err", err)
		return
	}
	reminder := r
	s.crnIDs[r.ID] = s.cron.Schedule(sched, robfigcron.FuncJob(func() {
		s.fire(ctx, reminder)
	}))
}

func (s *Service) disarmLocked(id string) {
	if eid, ok := s.crnIDs[id]; ok {
		s.cron.Remove(eid)
		delete(s.crnIDs, id)
	}
}

func (s *Service) fire(ctx context.Context, r Reminder) {
	startMs := nowMs()
	slog.Info("Reminder firing", "name", r.Name, "id", r.ID)

	status := "ok"
	var lastErr *string
	if s.onFire != nil {
		if _, err := s.onFire(ctx, r); err != nil {
			status = "error"
			e := err.Error()
			lastErr = &e
			slog.Error("Reminder failed", "name", r.Name, "err", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.store.Reminders {
		if s.store.Reminders[i].ID != r.ID {
			continue
		}
		s.store.Reminders[i].State.LastRunAtMs = &startMs
		s.store.Reminders[i].State.LastStatus = &status
		s.store.Reminders[i].State.LastError = lastErr
		s.store.Reminders[i].UpdatedAtMs = nowMs()
		break
	}
	s.refreshNextRunsLocked()
	s.saveLocked()
}

func (s *Service) refreshNextRunsLocked() {
	now := time.Now()
	for i := range s.store.Reminders {
		r := &s.store.Reminders[i]
		if !r.Enabled {
			r.State.NextRunAtMs = nil
			continue
		}
		sched, err := parseExpr(r.Expr, r.TZ)
		if err != nil {
			r.State.NextRunAtMs = nil
			continue
		}
		next := sched.Next(now).UnixMilli()
		r.State.NextRunAtMs = &next
	}
}

func (s *Service) loadLocked() error {
	if len(s.store.Reminders) > 0 {
		return nil // already loaded
	}
	data, err := os.ReadFile(s.storePath)
	if os.IsNotExist(err) {
		s.store = reminderStore{Version: 1}
		return nil
	}
	if err != nil {
		return err
	}
	var st reminderStore
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	s.store = st
	return nil
}

func (s *Service) saveLocked() {
	if err := os.MkdirAll(filepath.Dir(s.storePath), 0o755); err != nil {
		slog.Warn("Reminders mkdir failed", "err", err)
		return
	}
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		slog.Warn("Reminders marshal failed", "err", err)
		return
	}
	if err := os.WriteFile(s.storePath, data, 0o644); err != nil {
		slog.Warn("Reminders write failed", "err", err)
	}
}

func parseExpr(expr, tz string) (robfigcron.Schedule, error) {
	parser := robfigcron.NewParser(
		robfigcron.Minute | robfigcron.Hour | robfigcron.Dom | robfigcron.Month | robfigcron.Dow,
	)
	sched, err := parser.Parse(expr)
	if err != nil {
		return nil, err
	}

	loc := time.Local
	if tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("unknown timezone %q", tz)
		}
		loc = l
	}
	return locSchedule{inner: sched, loc: loc}, nil
}

// locSchedule wraps a Schedule to always evaluate in a fixed location.
type locSchedule struct {
	inner robfigcron.Schedule
	loc   *time.Location
}

func (l locSchedule) Next(t time.Time) time.Time {
	return l.inner.Next(t.In(l.loc))
}

func nowMs() int64 { return time.Now().UnixMilli() }
