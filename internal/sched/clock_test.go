package sched

import (
	"testing"
	"time"
)

func TestManualClockFiresInDeadlineOrder(t *testing.T) {
	c := NewManualClock(time.Unix(0, 0))
	var got []string
	c.AfterFunc(30*time.Millisecond, func() { got = append(got, "c") })
	c.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	c.AfterFunc(20*time.Millisecond, func() { got = append(got, "b") })
	c.Advance(time.Second)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("fired %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("fired %v, want %v", got, want)
		}
	}
}

func TestManualClockTieBreaksByRegistration(t *testing.T) {
	c := NewManualClock(time.Unix(0, 0))
	var got []int
	c.AfterFunc(10*time.Millisecond, func() { got = append(got, 1) })
	c.AfterFunc(10*time.Millisecond, func() { got = append(got, 2) })
	c.Advance(10 * time.Millisecond)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("fired %v, want [1 2]", got)
	}
}

func TestManualClockStopPreventsFiring(t *testing.T) {
	c := NewManualClock(time.Unix(0, 0))
	fired := false
	timer := c.AfterFunc(10*time.Millisecond, func() { fired = true })
	if !timer.Stop() {
		t.Fatal("first Stop returned false")
	}
	if timer.Stop() {
		t.Fatal("second Stop returned true")
	}
	c.Advance(time.Second)
	if fired {
		t.Fatal("stopped timer fired")
	}
}

func TestManualClockOnlyFiresDueTimers(t *testing.T) {
	c := NewManualClock(time.Unix(0, 0))
	fired := false
	c.AfterFunc(100*time.Millisecond, func() { fired = true })
	c.Advance(99 * time.Millisecond)
	if fired {
		t.Fatal("timer fired before its deadline")
	}
	c.Advance(time.Millisecond)
	if !fired {
		t.Fatal("timer did not fire at its deadline")
	}
}

func TestManualClockReentrantAfterFunc(t *testing.T) {
	c := NewManualClock(time.Unix(0, 0))
	var fired []int
	c.AfterFunc(10*time.Millisecond, func() {
		fired = append(fired, 1)
		c.AfterFunc(5*time.Millisecond, func() { fired = append(fired, 2) })
	})
	c.Advance(20 * time.Millisecond)
	if len(fired) != 2 || fired[0] != 1 || fired[1] != 2 {
		t.Fatalf("fired %v, want [1 2] within one Advance", fired)
	}
	if got := c.Now(); !got.Equal(time.Unix(0, 0).Add(20 * time.Millisecond)) {
		t.Fatalf("Now() = %v after Advance", got)
	}
}

func TestManualClockNowTracksCallbackDeadline(t *testing.T) {
	c := NewManualClock(time.Unix(0, 0))
	var seen time.Time
	c.AfterFunc(40*time.Millisecond, func() { seen = c.Now() })
	c.Advance(time.Second)
	if want := time.Unix(0, 0).Add(40 * time.Millisecond); !seen.Equal(want) {
		t.Fatalf("callback observed Now() = %v, want %v", seen, want)
	}
}

func TestManualClockZeroDelayFiresOnZeroAdvance(t *testing.T) {
	c := NewManualClock(time.Unix(0, 0))
	fired := false
	c.AfterFunc(0, func() { fired = true })
	c.Advance(0)
	if !fired {
		t.Fatal("zero-delay timer did not fire on Advance(0)")
	}
	if c.PendingTimers() != 0 {
		t.Fatalf("pending timers = %d, want 0", c.PendingTimers())
	}
}
