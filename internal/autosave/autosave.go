// Package autosave provides the debounced persistence timer for the editor:
// every content change cancels any pending write and schedules a new one at
// a fixed delay, so a burst of edits produces exactly one write carrying
// the final value.
package autosave

import (
	"sync"
	"time"
)

// DefaultDelay is the pause after the last change before a write fires.
const DefaultDelay = 500 * time.Millisecond

// Scheduler is an explicit cancellable scheduled task. It does not decide
// where the value goes; the write callback owns target selection (active
// draft vs. last-edited slot).
type Scheduler struct {
	delay time.Duration
	write func(html string)

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	running bool
	last    string
}

func New(delay time.Duration, write func(html string)) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Scheduler{delay: delay, write: write}
}

// Notify records a new canonical value and (re)starts the delay timer. At
// most one timer is pending at a time.
func (s *Scheduler) Notify(html string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.pending = true
	s.last = html
	if s.timer == nil {
		s.timer = time.AfterFunc(s.delay, s.onTimer)
		s.mu.Unlock()
		return
	}
	s.timer.Reset(s.delay)
	s.mu.Unlock()
}

func (s *Scheduler) onTimer() {
	s.mu.Lock()
	if s.running {
		// A write is in flight; re-arm to pick up the pending value.
		if s.timer != nil {
			s.timer.Reset(s.delay)
		}
		s.mu.Unlock()
		return
	}
	if !s.pending {
		s.mu.Unlock()
		return
	}
	s.pending = false
	s.running = true
	html := s.last
	s.mu.Unlock()

	s.write(html)

	s.mu.Lock()
	s.running = false
	// If another Notify landed while writing, schedule another run.
	if s.pending && s.timer != nil {
		s.timer.Reset(s.delay)
	}
	s.mu.Unlock()
}

// Stop cancels any pending write without performing it. Session teardown
// relies on whatever the last debounce cycle completed; there is no flush.
func (s *Scheduler) Stop() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.pending = false
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()
}
