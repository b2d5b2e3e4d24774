package scheduler

import (
	"sync"
	"time"

	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// ManualScheduler is a deterministic TaskScheduler for tests: nothing fires
// until the test calls Fire, so debounce and poll behaviour can be stepped
// through without sleeping.
type ManualScheduler struct {
	mu    sync.Mutex
	tasks map[string]manualTask
}

type manualTask struct {
	delay time.Duration
	fn    func()
}

var _ interfaces.TaskScheduler = (*ManualScheduler)(nil)

// NewManualScheduler constructs an empty manual scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{
		tasks: make(map[string]manualTask),
	}
}

func (s *ManualScheduler) Schedule(key string, delay time.Duration, fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[key] = manualTask{delay: delay, fn: fn}
}

func (s *ManualScheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[key]; !ok {
		return false
	}
	delete(s.tasks, key)
	return true
}

func (s *ManualScheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = make(map[string]manualTask)
}

func (s *ManualScheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tasks[key]
	return ok
}

// Fire runs and removes the pending task for key, reporting whether one
// existed. The task is removed before running so a callback that reschedules
// itself is observed as a fresh pending task.
func (s *ManualScheduler) Fire(key string) bool {
	s.mu.Lock()
	task, ok := s.tasks[key]
	if ok {
		delete(s.tasks, key)
	}
	s.mu.Unlock()

	if !ok {
		return false
	}
	task.fn()
	return true
}

// Delay reports the delay the pending task for key was scheduled with.
func (s *ManualScheduler) Delay(key string) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[key]
	if !ok {
		return 0, false
	}
	return task.delay, true
}
