package autosave

import (
	"sync"
	"testing"
	"time"
)

type writeRecorder struct {
	mu     sync.Mutex
	values []string
}

func (r *writeRecorder) write(html string) {
	r.mu.Lock()
	r.values = append(r.values, html)
	r.mu.Unlock()
}

func (r *writeRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

func TestBurstCoalescesToOneWrite(t *testing.T) {
	t.Parallel()

	rec := &writeRecorder{}
	s := New(50*time.Millisecond, rec.write)
	defer s.Stop()

	s.Notify("<p>a</p>")
	s.Notify("<p>ab</p>")
	s.Notify("<p>abc</p>")

	time.Sleep(150 * time.Millisecond)
	got := rec.snapshot()
	if len(got) != 1 {
		t.Fatalf("writes = %v, want exactly one", got)
	}
	if got[0] != "<p>abc</p>" {
		t.Fatalf("write = %q, want the final value", got[0])
	}
}

func TestNotifyRestartsDelay(t *testing.T) {
	t.Parallel()

	rec := &writeRecorder{}
	s := New(60*time.Millisecond, rec.write)
	defer s.Stop()

	s.Notify("v1")
	time.Sleep(40 * time.Millisecond)
	// Still inside the window: the write must not have fired yet.
	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("premature write: %v", got)
	}
	s.Notify("v2")
	time.Sleep(40 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("restarted timer fired early: %v", got)
	}

	time.Sleep(60 * time.Millisecond)
	got := rec.snapshot()
	if len(got) != 1 || got[0] != "v2" {
		t.Fatalf("writes = %v, want [v2]", got)
	}
}

func TestStopCancelsWithoutWriting(t *testing.T) {
	t.Parallel()

	rec := &writeRecorder{}
	s := New(30*time.Millisecond, rec.write)

	s.Notify("doomed")
	s.Stop()
	time.Sleep(80 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("stop still wrote: %v", got)
	}
}

func TestNotifyAfterStopReArms(t *testing.T) {
	t.Parallel()

	rec := &writeRecorder{}
	s := New(30*time.Millisecond, rec.write)
	defer s.Stop()

	s.Notify("first")
	s.Stop()
	s.Notify("second")
	time.Sleep(90 * time.Millisecond)
	got := rec.snapshot()
	if len(got) != 1 || got[0] != "second" {
		t.Fatalf("writes = %v, want [second]", got)
	}
}

func TestNilSchedulerIsSafe(t *testing.T) {
	t.Parallel()

	var s *Scheduler
	s.Notify("x")
	s.Stop()
}
