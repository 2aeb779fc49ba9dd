package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Checkout tracks order-submission outcomes.
type Checkout struct {
	Submitted Counter
	Succeeded Counter
	Failed    Counter
	Rejected  Counter // validation failures
}

func (c *Checkout) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"orders_submitted": c.Submitted.Load(),
		"orders_succeeded": c.Succeeded.Load(),
		"orders_failed":    c.Failed.Load(),
		"orders_rejected":  c.Rejected.Load(),
	}
}
