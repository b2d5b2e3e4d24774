package interfaces

import "time"

// TaskScheduler coordinates delayed execution of keyed tasks such as the
// autosave debounce window and the provisioning poll loop.
//
// Scheduling a task under a key that already holds a pending task replaces
// the pending task, which gives callers cancel-on-supersede semantics for
// free: restarting a debounce window or poll loop never leaves an orphaned
// timer behind.
type TaskScheduler interface {
	// Schedule registers fn to run after delay. Any pending task under the
	// same key is cancelled first.
	Schedule(key string, delay time.Duration, fn func())
	// Cancel drops the pending task for key, reporting whether one existed.
	Cancel(key string) bool
	// CancelAll drops every pending task. Used on teardown.
	CancelAll()
	// Pending reports whether a task is currently scheduled under key.
	Pending(key string) bool
}
