package realtime

import "time"

// Deadline is a one-shot due time. The zero value is disarmed.
type Deadline struct {
	At time.Time
}

// Arm schedules the deadline d after now.
func (d *Deadline) Arm(now time.Time, after time.Duration) {
	d.At = now.Add(after)
}

// Pending reports whether the deadline is armed.
func (d *Deadline) Pending() bool {
	return !d.At.IsZero()
}

// Due reports whether the deadline is armed and has passed at now.
func (d *Deadline) Due(now time.Time) bool {
	return d.Pending() && !now.Before(d.At)
}

// Clear disarms the deadline.
func (d *Deadline) Clear() {
	d.At = time.Time{}
}

// Stopwatch measures a running interval in whole seconds for display.
type Stopwatch struct {
	StartedAt time.Time
	StoppedAt time.Time
}

// Start resets and starts the stopwatch at now.
func (s *Stopwatch) Start(now time.Time) {
	s.StartedAt = now
	s.StoppedAt = time.Time{}
}

// Stop freezes the elapsed time at now. Stopping an idle stopwatch does nothing.
func (s *Stopwatch) Stop(now time.Time) {
	if !s.Running() {
		return
	}
	s.StoppedAt = now
}

// Running reports whether the stopwatch has started and not stopped.
func (s *Stopwatch) Running() bool {
	return !s.StartedAt.IsZero() && s.StoppedAt.IsZero()
}

// Reset returns the stopwatch to zero.
func (s *Stopwatch) Reset() {
	*s = Stopwatch{}
}

// Elapsed returns the elapsed time at now, frozen once stopped.
func (s *Stopwatch) Elapsed(now time.Time) time.Duration {
	if s.StartedAt.IsZero() {
		return 0
	}
	end := now
	if !s.StoppedAt.IsZero() {
		end = s.StoppedAt
	}
	if end.Before(s.StartedAt) {
		return 0
	}
	return end.Sub(s.StartedAt)
}

// Seconds returns the whole seconds elapsed at now.
func (s *Stopwatch) Seconds(now time.Time) int {
	return int(s.Elapsed(now) / time.Second)
}

// NextTick returns when the displayed second count next changes, and false
// when the stopwatch is not running.
func (s *Stopwatch) NextTick(now time.Time) (time.Time, bool) {
	if !s.Running() {
		return time.Time{}, false
	}
	return s.StartedAt.Add(time.Duration(s.Seconds(now)+1) * time.Second), true
}

// Earliest returns the earliest non-zero time, and false if all are zero.
func Earliest(times ...time.Time) (time.Time, bool) {
	var best time.Time
	for _, t := range times {
		if t.IsZero() {
			continue
		}
		if best.IsZero() || t.Before(best) {
			best = t
		}
	}
	return best, !best.IsZero()
}
