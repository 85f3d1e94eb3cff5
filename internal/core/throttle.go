package core

import (
	"sync"
	"time"
)

// DailyThrottle limits how often a handler may fire per calendar day.
//
// The counter resets lazily when the day advances, so the throttle recovers
// even if the scheduled midnight reset never runs.
type DailyThrottle struct {
	mu    sync.Mutex
	limit int
	count int
	day   string
	now   func() time.Time
}

// NewDailyThrottle creates a throttle allowing limit requests per day.
func NewDailyThrottle(limit int) *DailyThrottle {
	return &DailyThrottle{limit: limit, now: time.Now}
}

// Allow records one request and reports whether it is within today's limit.
func (t *DailyThrottle) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	today := t.now().UTC().Format("2006-01-02")
	if t.day != today {
		t.day = today
		t.count = 0
	}

	if t.count >= t.limit {
		return false
	}
	t.count++
	return true
}

// Remaining reports how many requests are left today.
func (t *DailyThrottle) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	today := t.now().UTC().Format("2006-01-02")
	if t.day != today {
		return t.limit
	}
	if t.count >= t.limit {
		return 0
	}
	return t.limit - t.count
}

// Reset clears the counter and date. Called by the midnight job.
func (t *DailyThrottle) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.count = 0
	t.day = ""
}
