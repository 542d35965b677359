package scrollmarks

import (
	"sync"
	"time"
)

// frameInterval approximates one display refresh at 60Hz. Change signals are
// coalesced so at most one recomputation runs per interval.
const frameInterval = 16 * time.Millisecond

// Scheduler coalesces recomputation triggers. At most one execution is
// pending at a time: a new request cancels and replaces the previous one, so
// a burst of triggers collapses to a single trailing run.
type Scheduler interface {
	// Request schedules fn, replacing any pending request.
	Request(fn func())
	// Cancel drops the pending request, if any.
	Cancel()
}

// frameScheduler defers execution to the next frame interval using a timer.
// The pending timer is the "one pending token": each Request stops it and
// arms a new one. The deferred function runs on a timer goroutine, so this
// scheduler is only used for views safe under cross-goroutine access; views
// confined to one goroutine supply their own scheduler (SchedulerSource).
type frameScheduler struct {
	mu    sync.Mutex
	timer *time.Timer
}

func newFrameScheduler() *frameScheduler {
	return &frameScheduler{}
}

func (s *frameScheduler) Request(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(frameInterval, fn)
}

func (s *frameScheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
