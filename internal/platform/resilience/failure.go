package resilience

import "sync"

// FailureLatch records whether an upstream is unusable and hands out a
// notification once per failure episode.
type FailureLatch struct {
	mu       sync.Mutex
	failing  bool
	notified bool
	message  string
}

// Trip marks the latch failing. A repeated Trip within the same episode only
// updates the message.
func (l *FailureLatch) Trip(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.failing {
		l.notified = false
	}
	l.failing = true
	l.message = message
}

// Reset ends the current episode.
func (l *FailureLatch) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failing = false
	l.notified = false
	l.message = ""
}

func (l *FailureLatch) Failing() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failing
}

// Acknowledge returns the current state. notify is true on the first call of
// each failure episode.
func (l *FailureLatch) Acknowledge() (failing, notify bool, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.failing {
		return false, false, ""
	}
	notify = !l.notified
	l.notified = true
	return true, notify, l.message
}
