package libutil

import "time"

// FrameLimiter caps the frame rate by sleeping for the rest of the frame budget.
type FrameLimiter struct {
	Target time.Duration
	last   time.Time
	sleep  func(time.Duration)
}

func NewFrameLimiter(fps float64) *FrameLimiter {
	return &FrameLimiter{
		Target: time.Duration(float64(time.Second) / fps),
		sleep:  time.Sleep,
	}
}

// Remaining is how much of the frame budget is left at now. The first frame has no budget.
func (fl *FrameLimiter) Remaining(now time.Time) time.Duration {
	if fl.last.IsZero() {
		return 0
	}
	left := fl.Target - now.Sub(fl.last)
	if left < 0 {
		return 0
	}
	return left
}

// Wait sleeps until the frame budget is used up and starts the next frame.
// It returns the time since the previous frame started, sleep included.
func (fl *FrameLimiter) Wait() time.Duration {
	now := time.Now()
	if left := fl.Remaining(now); left > 0 {
		fl.sleep(left)
		now = now.Add(left)
	}
	var delta time.Duration
	if !fl.last.IsZero() {
		delta = now.Sub(fl.last)
	}
	fl.last = now
	return delta
}
