package progress

import (
	"context"
	"sync"
	"time"

	"github.com/viant/rrsched/internal/clock"
)

// Delta represents an incremental counter change emitted by the scheduler.
type Delta struct {
	Loaded       int
	Skipped      int
	Dispatched   int
	Instructions int
	Preempted    int
	Blocked      int
	Unblocked    int
	Finished     int
}

// Progress keeps aggregated simulation counters. Trackers created by
// WithNewTracker are safe for concurrent use; snapshots are plain values.
type Progress struct {
	RunID     string
	Quantum   int
	StartedAt time.Time

	Loaded       int
	Skipped      int
	Dispatched   int
	Instructions int
	Preempted    int
	Blocked      int
	Unblocked    int
	Finished     int

	mu       *sync.Mutex
	onChange func(Progress)
}

// Update applies the supplied delta. A registered onChange callback is
// invoked with a copy outside the critical section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}

	unlock := p.lock()
	p.Loaded += d.Loaded
	p.Skipped += d.Skipped
	p.Dispatched += d.Dispatched
	p.Instructions += d.Instructions
	p.Preempted += d.Preempted
	p.Blocked += d.Blocked
	p.Unblocked += d.Unblocked
	p.Finished += d.Finished

	snapshot := p.copy()
	cb := p.onChange
	unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the tracker suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	defer p.lock()()
	return p.copy()
}

// Waiting returns loaded processes that have not finished yet.
func (p Progress) Waiting() int {
	return p.Loaded - p.Finished
}

// OnChange registers a callback invoked after every Update, nil disables it.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	unlock := p.lock()
	p.onChange = cb
	unlock()
}

func (p *Progress) lock() func() {
	if p.mu == nil {
		return func() {}
	}
	p.mu.Lock()
	return p.mu.Unlock
}

func (p *Progress) copy() Progress {
	return Progress{
		RunID:        p.RunID,
		Quantum:      p.Quantum,
		StartedAt:    p.StartedAt,
		Loaded:       p.Loaded,
		Skipped:      p.Skipped,
		Dispatched:   p.Dispatched,
		Instructions: p.Instructions,
		Preempted:    p.Preempted,
		Blocked:      p.Blocked,
		Unblocked:    p.Unblocked,
		Finished:     p.Finished,
	}
}

// ----------------------------------------------------------------------------
// Context helpers
// ----------------------------------------------------------------------------

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a tracker, embeds it in a derived context and
// returns both.
func WithNewTracker(ctx context.Context, runID string, quantum int, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		RunID:     runID,
		Quantum:   quantum,
		StartedAt: clock.Now(),
		mu:        &sync.Mutex{},
		onChange:  onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the tracker from ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// GetSnapshot combines FromContext and Snapshot.
func GetSnapshot(ctx context.Context) (Progress, bool) {
	if tr, ok := FromContext(ctx); ok {
		return tr.Snapshot(), true
	}
	return Progress{}, false
}

// UpdateCtx applies d to the tracker carried by ctx, if any.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
