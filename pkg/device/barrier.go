package device

import "sync"

// barrier is a reusable generation barrier for a fixed number of parties.
// Once broken, every current and future wait returns false.
type barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	parties int
	waiting int
	gen     uint64
	broken  bool
}

func newBarrier(parties int) *barrier {
	b := &barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// wait blocks until all parties arrive. It reports false if the barrier was
// broken before or while waiting.
func (b *barrier) wait() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.broken {
		return false
	}

	gen := b.gen
	b.waiting++
	if b.waiting == b.parties {
		b.waiting = 0
		b.gen++
		b.cond.Broadcast()
		return true
	}

	for gen == b.gen && !b.broken {
		b.cond.Wait()
	}
	return gen != b.gen
}

// breakAll releases all waiters and poisons the barrier.
func (b *barrier) breakAll() {
	b.mu.Lock()
	b.broken = true
	b.cond.Broadcast()
	b.mu.Unlock()
}
