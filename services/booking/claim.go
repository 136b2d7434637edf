package booking

import "sync"

// claimGuard serializes the check-then-claim sequence per (cleaner, date).
// Two allocation attempts racing for the same cleaner-slot take the same
// mutex, so exactly one sees the slot free and wins the claim; the persisted
// conditional claim write backs this up across processes.
type claimGuard struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newClaimGuard() *claimGuard {
	return &claimGuard{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the (cleanerID, date) mutex and returns its unlock func.
func (g *claimGuard) lock(cleanerID, date string) func() {
	key := cleanerID + "|" + date

	g.mu.Lock()
	m, ok := g.locks[key]
	if !ok {
		m = &sync.Mutex{}
		g.locks[key] = m
	}
	g.mu.Unlock()

	m.Lock()
	return m.Unlock
}
