package frame

import "time"

// maxCatchUp bounds the ticks run for one frame so a long stall does not
// spiral into ever longer frames.
const maxCatchUp = 8

// Loop accumulates real time and runs zero or more fixed ticks per frame.
type Loop struct {
	clock Clock
	step  time.Duration

	last    time.Time
	started bool
	acc     time.Duration
	ticks   uint64
}

// NewLoop creates a loop ticking tps times per second
func NewLoop(clock Clock, tps int) *Loop {
	if tps <= 0 {
		tps = 60
	}
	return &Loop{clock: clock, step: time.Second / time.Duration(tps)}
}

// Step returns the tick length in seconds
func (l *Loop) Step() float64 { return l.step.Seconds() }

// Ticks returns the number of ticks run so far
func (l *Loop) Ticks() uint64 { return l.ticks }

// Frame runs update for every whole tick elapsed since the previous call
// and returns how many ran. The first call only starts the clock.
func (l *Loop) Frame(update func(dt float64)) int {
	now := l.clock.Now()
	if !l.started {
		l.last, l.started = now, true
		return 0
	}
	l.acc += now.Sub(l.last)
	l.last = now

	n := 0
	for l.acc >= l.step && n < maxCatchUp {
		update(l.step.Seconds())
		l.acc -= l.step
		l.ticks++
		n++
	}
	if n == maxCatchUp && l.acc >= l.step {
		l.acc = 0
	}
	return n
}

// Advance runs the ticks due this frame, then flush exactly once, whether
// zero or several ticks ran. Work queued before Advance is drained too.
func (l *Loop) Advance(update func(dt float64), flush func()) int {
	n := l.Frame(update)
	flush()
	return n
}

// Alpha is the fraction of a tick left in the accumulator, for
// interpolating between the last two states when drawing.
func (l *Loop) Alpha() float64 {
	return float64(l.acc) / float64(l.step)
}
