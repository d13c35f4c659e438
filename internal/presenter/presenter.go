// Package presenter mediates between view-raised intent events and the
// domain services. Presenters own no widgets and no domain state, only
// transient interaction state such as loading flags and the pending
// search. All view mutation happens on the UI goroutine: handlers run
// there already, and background work marshals back via Dispatcher.Post.
package presenter

import (
	"context"
	"sync"
	"time"
)

// Dispatcher marshals a function onto the UI goroutine. View state must
// only be touched from there.
type Dispatcher interface {
	Post(fn func())
}

// Options tunes presenter behavior from configuration.
type Options struct {
	// SearchDebounce is the typing pause before a search query runs.
	SearchDebounce time.Duration
	// ConfirmDelete asks the user before destructive operations.
	ConfirmDelete bool
}

const defaultSearchDebounce = 300 * time.Millisecond

func (o Options) debounce() time.Duration {
	if o.SearchDebounce <= 0 {
		return defaultSearchDebounce
	}
	return o.SearchDebounce
}

// genericFailureMessage is what users see for storage faults. Detail
// goes to the log, never to the screen.
const genericFailureMessage = "The operation failed. Details were written to the log."

// searchDebouncer delays a search until typing pauses. Scheduling again
// stops the pending timer and cancels the previous context, so a
// superseded query aborts cooperatively: before running if the delay
// had not elapsed, or by having its results dropped if it was already
// in flight. Cancellation here is a normal outcome, not an error.
type searchDebouncer struct {
	mu       sync.Mutex
	duration time.Duration
	timer    *time.Timer
	cancel   context.CancelFunc
}

func newSearchDebouncer(duration time.Duration) *searchDebouncer {
	return &searchDebouncer{duration: duration}
}

// Schedule arranges for run(ctx) once the debounce window has elapsed
// without another Schedule. run executes off the UI goroutine.
func (d *searchDebouncer) Schedule(run func(ctx context.Context)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.timer = time.AfterFunc(d.duration, func() {
		if ctx.Err() != nil {
			return
		}
		run(ctx)
	})
}

// Cancel stops any pending delay and cancels the in-flight context.
func (d *searchDebouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
}

func (d *searchDebouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
