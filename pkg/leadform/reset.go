package leadform

import (
	"sync"
	"time"
)

// DefaultResetDelay is how long the confirmation stays up before the form clears
const DefaultResetDelay = 3 * time.Second

// ResetTimer is a cancelable one-shot delayed action
type ResetTimer struct {
	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// Schedule runs fn after delay, replacing any reset still pending
func (r *ResetTimer) Schedule(delay time.Duration, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
	}
	r.seq++
	seq := r.seq
	r.timer = time.AfterFunc(delay, func() {
		r.mu.Lock()
		// a Cancel or reschedule that raced with the fire wins
		if r.seq != seq || r.timer == nil {
			r.mu.Unlock()
			return
		}
		r.timer = nil
		r.mu.Unlock()
		fn()
	})
}

// Cancel stops a pending reset. It reports whether one was pending.
func (r *ResetTimer) Cancel() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer == nil {
		return false
	}
	r.timer.Stop()
	r.timer = nil
	r.seq++
	return true
}

func (r *ResetTimer) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer != nil
}
