package frame

import (
	"testing"
	"time"
)

func TestLoopRunsWholeTicks(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	loop := NewLoop(clock, 50) // 20ms ticks

	var total float64
	update := func(dt float64) { total += dt }

	if n := loop.Frame(update); n != 0 {
		t.Fatalf("first frame ran %d ticks, want 0", n)
	}

	tests := []struct {
		advance time.Duration
		want    int
	}{
		{10 * time.Millisecond, 0},
		{10 * time.Millisecond, 1},
		{45 * time.Millisecond, 2},
		{15 * time.Millisecond, 1},
		{0, 0},
	}
	for i, tt := range tests {
		clock.Advance(tt.advance)
		if n := loop.Frame(update); n != tt.want {
			t.Errorf("frame %d: ran %d ticks, want %d", i, n, tt.want)
		}
	}
	if loop.Ticks() != 4 {
		t.Errorf("ticks = %d, want 4", loop.Ticks())
	}
	if want := 4 * 0.02; total < want-1e-9 || total > want+1e-9 {
		t.Errorf("simulated %v seconds, want %v", total, want)
	}
}

func TestLoopCapsCatchUp(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	loop := NewLoop(clock, 60)
	loop.Frame(func(float64) {})

	clock.Advance(10 * time.Second)
	if n := loop.Frame(func(float64) {}); n != maxCatchUp {
		t.Errorf("ran %d ticks after a stall, want %d", n, maxCatchUp)
	}
	if loop.Alpha() != 0 {
		t.Errorf("backlog kept after stall: alpha %v", loop.Alpha())
	}
}

func TestAlpha(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	loop := NewLoop(clock, 10)
	loop.Frame(func(float64) {})
	clock.Advance(150 * time.Millisecond)
	loop.Frame(func(float64) {})
	if a := loop.Alpha(); a < 0.499 || a > 0.501 {
		t.Errorf("alpha = %v, want 0.5", a)
	}
}

func TestAdvanceFlushesOncePerFrame(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	loop := NewLoop(clock, 50) // 20ms ticks

	var events []string
	update := func(float64) { events = append(events, "tick") }
	flush := func() { events = append(events, "flush") }

	tests := []struct {
		advance time.Duration
		want    []string
	}{
		{0, []string{"flush"}},
		{5 * time.Millisecond, []string{"flush"}},
		{15 * time.Millisecond, []string{"tick", "flush"}},
		{60 * time.Millisecond, []string{"tick", "tick", "tick", "flush"}},
	}
	for i, tt := range tests {
		events = events[:0]
		clock.Advance(tt.advance)
		loop.Advance(update, flush)
		if len(events) != len(tt.want) {
			t.Fatalf("frame %d: events %v, want %v", i, events, tt.want)
		}
		for j := range events {
			if events[j] != tt.want[j] {
				t.Errorf("frame %d: events %v, want %v", i, events, tt.want)
				break
			}
		}
	}
}
