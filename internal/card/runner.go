package card

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"smartmirror/internal/log"
)

// runner states. Unstarted -> Running -> Stopped, one way only.
type runState int

const (
	stateUnstarted runState = iota
	stateRunning
	stateStopped
)

// Runner drives one card's refresh loop: an immediate refresh on Start,
// then one refresh per interval, with the next tick armed after the
// previous refresh completes. A slow or failing refresh affects only its
// own card.
type Runner struct {
	card       Card
	invalidate func(name string)

	mu     sync.Mutex
	state  runState
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRunner builds a runner for c. invalidate, if non-nil, is called
// after every successful refresh so the display layer can repaint; it
// must be safe to call from the runner's goroutine.
func NewRunner(c Card, invalidate func(name string)) *Runner {
	return &Runner{
		card:       c,
		invalidate: invalidate,
		done:       make(chan struct{}),
	}
}

// Start launches the refresh loop. Calling Start on a running or stopped
// runner is a no-op. The loop ends when ctx is canceled or Stop is called.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != stateUnstarted {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.state = stateRunning
	go r.loop(runCtx)
}

// Stop cancels the pending tick and the in-flight refresh, then waits for
// the loop to exit. After Stop returns no further refresh executes. Stop
// is idempotent and safe to call on a never-started runner.
func (r *Runner) Stop() {
	r.mu.Lock()
	prev := r.state
	r.state = stateStopped
	cancel := r.cancel
	r.mu.Unlock()

	if prev != stateRunning {
		return
	}
	cancel()
	<-r.done
}

func (r *Runner) loop(ctx context.Context) {
	defer close(r.done)
	interval := r.card.Config().Interval
	for {
		r.refreshOnce(ctx)

		// Armed relative to completion of the refresh above, so a slow
		// fetch pushes out this card's next tick and nothing else.
		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// refreshOnce runs a single refresh, isolating the schedule from any
// failure: errors are logged with the card's name and kind, panics are
// recovered, and the previous state stays on display.
func (r *Runner) refreshOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	name := r.card.Config().Name

	err := func() (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = Errf(KindRender, "refresh panic: %v", rec)
			}
		}()
		return r.card.Refresh(ctx)
	}()

	switch {
	case err == nil:
		r.card.noteRefresh(time.Now())
	case errors.Is(err, context.Canceled):
		// Shutdown in progress; nothing to repaint or report.
		return
	default:
		// The card has already swapped in its inline error message; the
		// schedule continues and the next tick is the implicit retry.
		log.Error("card refresh failed", err, "card", name, "kind", string(KindOf(err)))
	}

	if r.invalidate != nil {
		r.invalidate(name)
	}
}

// String aids debug logging.
func (r *Runner) String() string {
	return fmt.Sprintf("runner(%s)", r.card.Config().Name)
}
