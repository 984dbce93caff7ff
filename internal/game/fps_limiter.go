package game

import "time"

// FPSLimiter paces the main loop with a hybrid sleep/spin wait.
type FPSLimiter struct {
	limit int
	next  time.Time
}

// NewFPSLimiter creates a limiter; limit <= 0 means uncapped.
func NewFPSLimiter(limit int) *FPSLimiter {
	return &FPSLimiter{limit: limit}
}

// Wait blocks until the next frame slot.
func (f *FPSLimiter) Wait() {
	if f.limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(f.limit)

	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
		// busy-wait the last stretch for precision on high caps
		if time.Until(f.next) <= 0 {
			break
		}
	}

	// Resync after a hitch to avoid drift.
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}
