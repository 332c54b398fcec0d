package room

import (
	"sync"
	"testing"
	"time"
)

type expiryRecorder struct {
	mu    sync.Mutex
	gens  []uint64
	ticks []int
}

func (r *expiryRecorder) onTick(gen uint64, remaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, remaining)
}

func (r *expiryRecorder) onExpire(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gens = append(r.gens, gen)
}

func (r *expiryRecorder) expiries() []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uint64(nil), r.gens...)
}

func (r *expiryRecorder) remaining() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.ticks...)
}

func TestTurnClockExpiresOnce(t *testing.T) {
	rec := &expiryRecorder{}
	c := NewTurnClock(2, 10*time.Millisecond, rec.onTick, rec.onExpire)
	c.Start()

	time.Sleep(200 * time.Millisecond)

	got := rec.expiries()
	if len(got) != 1 {
		t.Fatalf("expiries = %d, want 1", len(got))
	}
	if got[0] != c.Gen() {
		t.Fatalf("expiry gen = %d, clock gen = %d", got[0], c.Gen())
	}
}

func TestTurnClockTicksCountDown(t *testing.T) {
	rec := &expiryRecorder{}
	c := NewTurnClock(3, 10*time.Millisecond, rec.onTick, rec.onExpire)
	c.Start()

	time.Sleep(200 * time.Millisecond)

	ticks := rec.remaining()
	if len(ticks) != 3 {
		t.Fatalf("ticks = %v, want 3 entries", ticks)
	}
	for i, want := range []int{2, 1, 0} {
		if ticks[i] != want {
			t.Fatalf("ticks = %v, want [2 1 0]", ticks)
		}
	}
}

func TestTurnClockResetWins(t *testing.T) {
	rec := &expiryRecorder{}
	c := NewTurnClock(2, 50*time.Millisecond, rec.onTick, rec.onExpire)
	c.Start()
	firstGen := c.Gen()

	time.Sleep(20 * time.Millisecond)
	c.Reset()
	defer c.Stop()

	if c.Gen() == firstGen {
		t.Fatalf("reset must bump the generation")
	}

	// Before the restarted countdown can expire, no live-generation
	// expiry may be observed: anything from the first run is stale.
	time.Sleep(60 * time.Millisecond)
	for _, g := range rec.expiries() {
		if g == c.Gen() {
			t.Fatalf("expiry for live generation before countdown elapsed")
		}
		if g == firstGen {
			t.Fatalf("stale countdown delivered an expiry after reset")
		}
	}
}

func TestTurnClockStopIdempotent(t *testing.T) {
	rec := &expiryRecorder{}
	c := NewTurnClock(1, 10*time.Millisecond, rec.onTick, rec.onExpire)

	c.Stop()
	c.Stop()

	c.Start()
	c.Stop()
	c.Stop()

	time.Sleep(50 * time.Millisecond)
	for _, g := range rec.expiries() {
		if g == c.Gen() {
			t.Fatalf("expiry observed for a stopped clock")
		}
	}
}
