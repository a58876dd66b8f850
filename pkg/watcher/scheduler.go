package watcher

import "time"

// Scheduler gates report delivery on a minimum interval since the last
// send. There is no catch-up for missed intervals: once the interval has
// elapsed the next check fires immediately, however late it is.
type Scheduler struct {
	lastSend time.Time
	interval time.Duration
}

// NewScheduler creates a scheduler. The first report becomes due one
// interval after start.
func NewScheduler(interval time.Duration, start time.Time) *Scheduler {
	return &Scheduler{
		lastSend: start,
		interval: interval,
	}
}

// ShouldSend reports whether a full interval has elapsed since the last
// send.
func (s *Scheduler) ShouldSend(now time.Time) bool {
	return now.Sub(s.lastSend) >= s.interval
}

// MarkSent records a successful send.
func (s *Scheduler) MarkSent(now time.Time) {
	s.lastSend = now
}
