package metrics

import (
	"sync/atomic"
	"time"
)

// Counter is a monotonically increasing count safe for concurrent use.
type Counter struct {
	value atomic.Uint64
}

func (c *Counter) Inc() {
	c.value.Add(1)
}

func (c *Counter) Add(n uint64) {
	c.value.Add(n)
}

func (c *Counter) Load() uint64 {
	return c.value.Load()
}

// Timer measures one backend call or request.
type Timer struct {
	start time.Time
	now   func() time.Time
}

func StartTimer() *Timer {
	return startTimerAt(time.Now)
}

func startTimerAt(now func() time.Time) *Timer {
	return &Timer{start: now(), now: now}
}

func (t *Timer) Duration() time.Duration {
	return t.now().Sub(t.start)
}
