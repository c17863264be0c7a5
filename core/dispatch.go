package core

import (
	"math"
	"sync"
	"time"
)

// Dispatch is the cross-thread work queue the playloop thread drains and
// sleeps on. Any goroutine may Post a closure or call Interrupt; only the
// playloop goroutine calls Process.
type Dispatch struct {
	mu    sync.Mutex
	queue []func()
	wake  chan struct{}
}

// NewDispatch returns an empty, unstarted dispatch queue.
func NewDispatch() *Dispatch {
	return &Dispatch{wake: make(chan struct{}, 1)}
}

// Post enqueues fn to run on the playloop thread and wakes it.
func (d *Dispatch) Post(fn func()) {
	d.mu.Lock()
	d.queue = append(d.queue, fn)
	d.mu.Unlock()
	d.Interrupt()
}

// Interrupt wakes a blocked Process call, or arms the next one to return
// immediately. Safe from any thread; idempotent — multiple calls before the
// next Process collapse into a single early return.
func (d *Dispatch) Interrupt() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Process drains queued closures, then blocks for up to timeoutSec seconds
// (or indefinitely if +Inf, or returns immediately if <= 0) unless
// Interrupt is called first.
func (d *Dispatch) Process(timeoutSec float64) {
	d.drain()

	if timeoutSec <= 0 {
		// Still give a just-posted closure a chance to run.
		d.drain()
		return
	}

	var timer *time.Timer
	var timeoutCh <-chan time.Time
	if !math.IsInf(timeoutSec, 1) {
		timer = time.NewTimer(time.Duration(timeoutSec * float64(time.Second)))
		timeoutCh = timer.C
		defer timer.Stop()
	}

	select {
	case <-d.wake:
	case <-timeoutCh:
	}

	d.drain()
}

func (d *Dispatch) drain() {
	for {
		d.mu.Lock()
		if len(d.queue) == 0 {
			d.mu.Unlock()
			return
		}
		fn := d.queue[0]
		d.queue = d.queue[1:]
		d.mu.Unlock()
		fn()
	}
}

// WaitEvents is mp_wait_events: blocks in Process up to Sleeptime, then
// resets Sleeptime to +Inf for the next iteration.
func (c *Context) WaitEvents() {
	c.InDispatch = true
	c.Dispatch.Process(c.Sleeptime)
	c.InDispatch = false
	c.Sleeptime = math.Inf(1)
}

// Wakeup causes the playloop to run again. Safe from any thread. If called
// from within the playloop itself, the next WaitEvents call returns
// immediately instead of sleeping.
func (c *Context) Wakeup() {
	c.Dispatch.Interrupt()
}

// SetTimeout arms the next wakeup no later than t seconds from now.
// Sleeptime is monotonically decreasing within one iteration: only this
// function may lower it, and every WaitEvents call resets it to +Inf once
// its sleep is over.
func (c *Context) SetTimeout(t float64) {
	if t < c.Sleeptime {
		c.Sleeptime = t
	}
	// The running sleep inside Process can't be shortened in place, so
	// force a re-evaluation on the next iteration.
	if c.InDispatch && !math.IsInf(t, 1) {
		c.Wakeup()
	}
}
