package scratch

import "sync/atomic"

// Stats describes an Arena's current state.
type Stats struct {
	ActiveCount      int  // arrays the arena holds that have not gone back to the pool
	CleanupPerformed bool // Cleanup ran and nothing was borrowed since
}

// Arena is a single-goroutine scratch allocator layered over a Pool.
// Arrays released to the arena stay with it and are reused by later Borrow
// calls; Cleanup hands every array back to the pool.
//
// An Arena must not be shared between goroutines.
type Arena struct {
	pool  *Pool
	owned [][]float64
	free  [][]float64

	cleanupPerformed bool
}

// NewArena creates an arena drawing from pool, or Default when pool is nil.
func NewArena(pool *Pool) *Arena {
	if pool == nil {
		pool = Default
	}
	return &Arena{pool: pool}
}

// Alloc is an alias for Borrow.
func (a *Arena) Alloc(size int) []float64 {
	return a.Borrow(size)
}

// Borrow returns a zero-filled array of length size, reusing one of the
// arena's released arrays when one is large enough.
func (a *Arena) Borrow(size int) []float64 {
	if size <= 0 {
		return []float64{}
	}
	a.cleanupPerformed = false

	for i, buf := range a.free {
		if cap(buf) >= size {
			last := len(a.free) - 1
			a.free[i] = a.free[last]
			a.free[last] = nil
			a.free = a.free[:last]
			buf = buf[:size]
			clear(buf)
			return buf
		}
	}

	buf := a.pool.Borrow(size)
	a.owned = append(a.owned, buf)
	return buf
}

// Release marks buf reusable within the arena. It is not returned to the
// pool until Cleanup. Releasing an array that is already free is a no-op.
func (a *Arena) Release(buf []float64) {
	if cap(buf) == 0 {
		return
	}
	full := buf[:cap(buf)]
	for _, held := range a.free {
		if &held[:1][0] == &full[0] {
			return
		}
	}
	a.free = append(a.free, full)
}

// Cleanup returns every array the arena obtained to the pool.
// It is safe to call repeatedly.
func (a *Arena) Cleanup() {
	for _, buf := range a.owned {
		a.pool.Release(buf)
	}
	clear(a.owned)
	a.owned = a.owned[:0]
	clear(a.free)
	a.free = a.free[:0]
	a.cleanupPerformed = true
}

// Stats reports the arena's active array count and cleanup flag.
func (a *Arena) Stats() Stats {
	return Stats{
		ActiveCount:      len(a.owned),
		CleanupPerformed: a.cleanupPerformed,
	}
}

// Manager creates scopes over a shared pool and tracks how many are open,
// which makes leaked scopes visible to tests and diagnostics.
type Manager struct {
	pool *Pool
	open atomic.Int64
}

// NewManager creates a manager over pool, or Default when pool is nil.
func NewManager(pool *Pool) *Manager {
	if pool == nil {
		pool = Default
	}
	return &Manager{pool: pool}
}

// Pool returns the pool backing the manager's arenas.
func (m *Manager) Pool() *Pool {
	return m.pool
}

// NewScope opens a scope owning a fresh arena. Callers must Close it,
// typically with defer.
func (m *Manager) NewScope() *Scope {
	m.open.Add(1)
	return &Scope{arena: NewArena(m.pool), manager: m}
}

// WithScope runs fn inside a scope and closes it afterwards, even if fn
// panics. It returns the arena's stats as observed after cleanup.
func (m *Manager) WithScope(fn func(a *Arena) error) (Stats, error) {
	s := m.NewScope()
	defer s.Close()
	err := fn(s.arena)
	s.Close()
	return s.arena.Stats(), err
}

// OpenScopes reports scopes created but not yet closed.
func (m *Manager) OpenScopes() int64 {
	return m.open.Load()
}

// Scope ties an Arena's lifetime to a lexical block.
type Scope struct {
	arena   *Arena
	manager *Manager
	closed  bool
}

// Arena returns the scope's arena.
func (s *Scope) Arena() *Arena {
	return s.arena
}

// Close cleans up the arena. Only the first call has an effect.
func (s *Scope) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.arena.Cleanup()
	s.manager.open.Add(-1)
}
