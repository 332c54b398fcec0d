package room

import (
	"sync"
	"time"
)

// TurnClock is a resettable single-shot countdown. Duration is counted
// in whole ticks. Start and Reset cancel any pending countdown and
// restart from the full duration; Stop is idempotent.
//
// Every restart bumps a generation counter and both callbacks carry the
// generation of the countdown that produced them. The owner compares it
// against Gen() before acting, so an expiry racing a reset is discarded:
// reset wins.
type TurnClock struct {
	duration int
	tick     time.Duration
	onTick   func(gen uint64, remaining int)
	onExpire func(gen uint64)

	mu     sync.Mutex
	gen    uint64
	cancel chan struct{}
}

func NewTurnClock(duration int, tick time.Duration, onTick func(uint64, int), onExpire func(uint64)) *TurnClock {
	if duration <= 0 {
		duration = 15
	}
	if tick <= 0 {
		tick = time.Second
	}
	return &TurnClock{duration: duration, tick: tick, onTick: onTick, onExpire: onExpire}
}

func (c *TurnClock) Start() { c.restart() }

func (c *TurnClock) Reset() { c.restart() }

func (c *TurnClock) restart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.gen++
	cancel := make(chan struct{})
	c.cancel = cancel
	go c.countdown(c.gen, cancel)
}

// Stop cancels any pending countdown and invalidates in-flight
// callbacks. Safe to call on an already-stopped clock.
func (c *TurnClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.gen++
}

func (c *TurnClock) stopLocked() {
	if c.cancel != nil {
		close(c.cancel)
		c.cancel = nil
	}
}

// Gen returns the generation of the current countdown.
func (c *TurnClock) Gen() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

func (c *TurnClock) countdown(gen uint64, cancel <-chan struct{}) {
	remaining := c.duration
	t := time.NewTicker(c.tick)
	defer t.Stop()
	for {
		select {
		case <-cancel:
			return
		case <-t.C:
			remaining--
			c.onTick(gen, remaining)
			if remaining <= 0 {
				c.onExpire(gen)
				return
			}
		}
	}
}
