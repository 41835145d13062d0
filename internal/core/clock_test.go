package core

import (
	"testing"
	"time"
)

func TestTickClock(t *testing.T) {
	c := NewTickClock(50)
	if c.Now() != 0 {
		t.Errorf("Now() = %v, expected 0", c.Now())
	}

	for i := 0; i < 5; i++ {
		c.Tick()
	}
	if c.Now() != 100*time.Millisecond {
		t.Errorf("Now() after 5 ticks = %v, expected 100ms", c.Now())
	}
}

func TestTickClockDefaultRate(t *testing.T) {
	c := NewTickClock(0)
	c.Tick()
	if c.Now() != time.Second/60 {
		t.Errorf("Now() after one tick = %v, expected 1/60s", c.Now())
	}
}

func TestSystemClockMonotonic(t *testing.T) {
	c := NewSystemClock()
	a := c.Now()
	b := c.Now()
	if b < a {
		t.Errorf("SystemClock went backwards: %v then %v", a, b)
	}
}
