package dwt

import "github.com/tphakala/go-dwt/internal/scratch"

// ArrayPool is a bounded pool of zero-filled float64 scratch arrays.
// Arrays up to 1024 elements are pooled by power-of-two size class;
// larger requests are always freshly allocated.
type ArrayPool = scratch.Pool

// PoolStats counts pool traffic.
type PoolStats = scratch.PoolStats

// Arena tracks the scratch arrays borrowed by one caller. It must not be
// shared across goroutines.
type Arena = scratch.Arena

// ArenaStats reports what an Arena still holds.
type ArenaStats = scratch.Stats

// Scope owns an Arena and returns its arrays to the pool on Close.
type Scope = scratch.Scope

// Manager hands out scopes over one pool and counts the open ones.
type Manager = scratch.Manager

// NewArrayPool creates a pool keeping at most maxPerSize arrays per size
// class. Zero or negative values use the default of 16.
func NewArrayPool(maxPerSize int) *ArrayPool {
	return scratch.NewPool(maxPerSize)
}

// NewArena creates an arena over pool. A nil pool uses the process-wide default.
func NewArena(pool *ArrayPool) *Arena {
	return scratch.NewArena(pool)
}

// NewManager creates a scope manager over pool.
func NewManager(pool *ArrayPool) *Manager {
	return scratch.NewManager(pool)
}
