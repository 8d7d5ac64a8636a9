package scene

import "sync"

// ObjectID identifies an object. Ids are unique among live objects and are
// recycled after an object is removed.
type ObjectID uint32

// NoObject is the id of no object.
const NoObject ObjectID = 0

// IDPool hands out object ids. It is safe for concurrent use; objects may be
// created and destroyed from more than one goroutine.
type IDPool struct {
	mu   sync.Mutex
	next ObjectID
	free []ObjectID
	live map[ObjectID]struct{}
}

// NewIDPool creates an empty pool. The first id handed out is 1.
func NewIDPool() *IDPool {
	return &IDPool{
		next: 1,
		live: make(map[ObjectID]struct{}),
	}
}

// Acquire returns an unused id, preferring recently released ones.
func (p *IDPool) Acquire() ObjectID {
	p.mu.Lock()
	defer p.mu.Unlock()

	var id ObjectID
	if n := len(p.free); n > 0 {
		id = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		id = p.next
		p.next++
	}
	p.live[id] = struct{}{}
	return id
}

// Release returns id to the pool. Releasing an id that is not live is a no-op.
func (p *IDPool) Release(id ObjectID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.live[id]; !ok {
		return
	}
	delete(p.live, id)
	p.free = append(p.free, id)
}

// InUse returns the number of live ids.
func (p *IDPool) InUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.live)
}
