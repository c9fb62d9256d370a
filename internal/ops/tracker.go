package ops

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Listener receives a snapshot of an operation after every state change.
// Listeners are called outside the tracker's lock and must not block for
// long; the feed hub buffers on its side.
type Listener func(op Operation)

// Tracker owns all tracked operations. All mutation happens through its
// methods under one mutex; Operation values never escape by reference.
//
// Updates that reference an unknown id, and duplicate terminal
// transitions, are deliberate no-ops: completion signals from unreliable
// async call sites can arrive late or twice. They are counted in Dropped
// so a genuine race does not vanish silently.
type Tracker struct {
	mu         sync.Mutex
	order      []string // operation ids, most recent first
	byID       map[string]*Operation
	selectedID string
	dropped    uint64
	listeners  []Listener
	now        func() time.Time // test seam
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		byID: make(map[string]*Operation),
		now:  time.Now,
	}
}

// AddListener registers fn to be notified after every state change.
// Must be called before the tracker is shared; not safe to call
// concurrently with updates.
func (t *Tracker) AddListener(fn Listener) {
	t.listeners = append(t.listeners, fn)
}

func (t *Tracker) notify(snapshot Operation) {
	for _, fn := range t.listeners {
		fn(snapshot)
	}
}

// Track inserts a new operation in running state at the head of the list.
// If no operation is currently selected, or this is the only running
// operation, it becomes the selected one (a presentation affordance).
// Tracking an id that already exists is a counted no-op.
func (t *Tracker) Track(id string, kind Kind, name string) {
	t.mu.Lock()
	if _, exists := t.byID[id]; exists {
		t.dropped++
		t.mu.Unlock()
		return
	}

	op := &Operation{
		ID:        id,
		Kind:      kind,
		Name:      name,
		Status:    StatusRunning,
		StartTime: t.now(),
	}
	t.byID[id] = op
	t.order = append([]string{id}, t.order...)

	if t.selectedID == "" || t.runningCountLocked() == 1 {
		t.selectedID = id
	}

	snapshot := op.clone()
	t.mu.Unlock()

	slog.Debug("Operation tracked", "id", id, "kind", kind, "name", name)
	t.notify(snapshot)
}

// AppendTranscript appends an entry to the operation's transcript in
// arrival order. Unknown ids are counted no-ops.
func (t *Tracker) AppendTranscript(id string, entryType EntryType, content, details string) {
	t.mu.Lock()
	op, ok := t.byID[id]
	if !ok {
		t.dropped++
		t.mu.Unlock()
		return
	}
	t.appendEntryLocked(op, entryType, content, details)
	snapshot := op.clone()
	t.mu.Unlock()

	t.notify(snapshot)
}

// UpdatePhase sets the operation's current phase and records the change
// durably as a phase-typed transcript entry.
func (t *Tracker) UpdatePhase(id, phase string) {
	t.mu.Lock()
	op, ok := t.byID[id]
	if !ok {
		t.dropped++
		t.mu.Unlock()
		return
	}
	op.CurrentPhase = phase
	t.appendEntryLocked(op, EntryPhase, phase, "")
	snapshot := op.clone()
	t.mu.Unlock()

	t.notify(snapshot)
}

// MarkCompleted moves the operation to the completed terminal state.
// Unknown ids and already-terminated operations are counted no-ops.
func (t *Tracker) MarkCompleted(id string) {
	t.terminate(id, StatusCompleted, "")
}

// MarkFailed moves the operation to the failed terminal state, stores the
// message, and appends an error transcript entry.
func (t *Tracker) MarkFailed(id, errMsg string) {
	t.terminate(id, StatusFailed, errMsg)
}

func (t *Tracker) terminate(id string, status Status, errMsg string) {
	t.mu.Lock()
	op, ok := t.byID[id]
	if !ok || op.Status.Terminal() {
		t.dropped++
		t.mu.Unlock()
		return
	}

	end := t.now()
	op.Status = status
	op.EndTime = &end
	op.CurrentPhase = ""
	if status == StatusFailed {
		op.Error = errMsg
		t.appendEntryLocked(op, EntryError, errMsg, "")
	}
	snapshot := op.clone()
	t.mu.Unlock()

	slog.Debug("Operation finished", "id", id, "status", status)
	t.notify(snapshot)
}

// AddTokenUsage accumulates token counters. Valid in any state, including
// after termination: cost accounting may arrive after completion.
func (t *Tracker) AddTokenUsage(id string, input, output int) {
	t.mu.Lock()
	op, ok := t.byID[id]
	if !ok {
		t.dropped++
		t.mu.Unlock()
		return
	}
	op.InputTokens += input
	op.OutputTokens += output
	snapshot := op.clone()
	t.mu.Unlock()

	t.notify(snapshot)
}

// Duration returns how long the operation has run. For a running
// operation it is computed live; for a terminated one it is fixed.
// The second return is false when the id is unknown.
func (t *Tracker) Duration(id string) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	op, ok := t.byID[id]
	if !ok {
		return 0, false
	}
	if op.EndTime != nil {
		return op.EndTime.Sub(op.StartTime), true
	}
	if op.Status == StatusRunning {
		return t.now().Sub(op.StartTime), true
	}
	return 0, false
}

// ClearCompleted removes every operation in a terminal state. If the
// selected operation was removed, selection falls back to the first
// remaining operation, or to none.
func (t *Tracker) ClearCompleted() {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.order[:0]
	for _, id := range t.order {
		if t.byID[id].Status.Terminal() {
			delete(t.byID, id)
			continue
		}
		kept = append(kept, id)
	}
	t.order = kept

	if _, stillThere := t.byID[t.selectedID]; !stillThere {
		if len(t.order) > 0 {
			t.selectedID = t.order[0]
		} else {
			t.selectedID = ""
		}
	}
}

// Get returns a snapshot of one operation.
func (t *Tracker) Get(id string) (Operation, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	op, ok := t.byID[id]
	if !ok {
		return Operation{}, false
	}
	return op.clone(), true
}

// Operations returns snapshots of all operations, most recent first.
func (t *Tracker) Operations() []Operation {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Operation, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.byID[id].clone())
	}
	return out
}

// Selected returns the currently selected operation, if any.
func (t *Tracker) Selected() (Operation, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	op, ok := t.byID[t.selectedID]
	if !ok {
		return Operation{}, false
	}
	return op.clone(), true
}

// Select makes id the selected operation if it is tracked.
func (t *Tracker) Select(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.byID[id]; ok {
		t.selectedID = id
	}
}

// Dropped returns how many updates were ignored because they referenced
// an unknown id or a terminal operation. A steadily climbing value points
// at a completion/cleanup race worth investigating.
func (t *Tracker) Dropped() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dropped
}

func (t *Tracker) runningCountLocked() int {
	n := 0
	for _, op := range t.byID {
		if op.Status == StatusRunning {
			n++
		}
	}
	return n
}

func (t *Tracker) appendEntryLocked(op *Operation, entryType EntryType, content, details string) {
	op.Transcript = append(op.Transcript, TranscriptEntry{
		ID:        uuid.NewString(),
		Timestamp: t.now(),
		Type:      entryType,
		Content:   content,
		Details:   details,
	})
}
