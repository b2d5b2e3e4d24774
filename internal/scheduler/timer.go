package scheduler

import (
	"sync"
	"time"

	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// TimerScheduler implements interfaces.TaskScheduler on top of time.AfterFunc.
// Tasks are keyed; scheduling under an existing key replaces the pending
// timer, which is exactly the cancel-on-supersede discipline the debounce
// window and poll loop rely on.
type TimerScheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

var _ interfaces.TaskScheduler = (*TimerScheduler)(nil)

// NewTimerScheduler constructs an empty timer-backed scheduler.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{
		timers: make(map[string]*time.Timer),
	}
}

// Schedule registers fn to run after delay, replacing any pending task under
// the same key.
func (s *TimerScheduler) Schedule(key string, delay time.Duration, fn func()) {
	if fn == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.timers[key]; ok {
		existing.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		s.mu.Lock()
		if current, ok := s.timers[key]; ok && current == timer {
			delete(s.timers, key)
		}
		s.mu.Unlock()
		fn()
	})
	s.timers[key] = timer
}

// Cancel drops the pending task for key.
func (s *TimerScheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.timers[key]
	if !ok {
		return false
	}
	timer.Stop()
	delete(s.timers, key)
	return true
}

// CancelAll drops every pending task.
func (s *TimerScheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, timer := range s.timers {
		timer.Stop()
		delete(s.timers, key)
	}
}

// Pending reports whether a task is scheduled under key.
func (s *TimerScheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.timers[key]
	return ok
}
