// ABOUTME: Busy gate allowing at most one outstanding transformation per document
// ABOUTME: Abandoned transformations are detected on release so their results can be discarded

package enhance

import (
	"context"
	"sync"

	coreerrors "commonplace-api/core/errors"
)

// Ticket identifies one outstanding transformation
type Ticket struct {
	key    string
	id     uint64
	cancel context.CancelFunc
}

// Key returns the document key the ticket was issued for
func (t *Ticket) Key() string {
	return t.key
}

// Gate tracks which documents have a transformation in flight
type Gate struct {
	mu      sync.Mutex
	pending map[string]*Ticket
	seq     uint64
}

// NewGate creates an empty gate
func NewGate() *Gate {
	return &Gate{pending: make(map[string]*Ticket)}
}

// Acquire marks key busy and returns a ticket plus a context that is
// cancelled when the ticket is abandoned. Fails with ConflictError if key is busy.
func (g *Gate) Acquire(parent context.Context, key string) (*Ticket, context.Context, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.pending[key]; busy {
		return nil, nil, &coreerrors.ConflictError{Resource: "document", ID: key}
	}
	return g.issueLocked(parent, key)
}

// Supersede abandons any outstanding transformation for key and acquires a new ticket
func (g *Gate) Supersede(parent context.Context, key string) (*Ticket, context.Context, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.abandonLocked(key)
	return g.issueLocked(parent, key)
}

// Release frees the key if t is still its current ticket.
// Returns false when t was abandoned, meaning its result must be discarded.
func (g *Gate) Release(t *Ticket) bool {
	if t == nil {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	t.cancel()
	current, ok := g.pending[t.key]
	if !ok || current.id != t.id {
		return false
	}
	delete(g.pending, t.key)
	return true
}

// Cancel abandons the outstanding transformation for key, if any
func (g *Gate) Cancel(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.abandonLocked(key)
}

// Busy reports whether key has a transformation outstanding
func (g *Gate) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, busy := g.pending[key]
	return busy
}

// Outstanding returns the number of busy keys
func (g *Gate) Outstanding() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.pending)
}

func (g *Gate) issueLocked(parent context.Context, key string) (*Ticket, context.Context, error) {
	g.seq++
	ctx, cancel := context.WithCancel(parent)
	t := &Ticket{key: key, id: g.seq, cancel: cancel}
	g.pending[key] = t
	return t, ctx, nil
}

func (g *Gate) abandonLocked(key string) bool {
	t, ok := g.pending[key]
	if !ok {
		return false
	}
	t.cancel()
	delete(g.pending, key)
	return true
}
