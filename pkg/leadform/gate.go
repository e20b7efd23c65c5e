package leadform

import "sync/atomic"

// Gate allows at most one submission in flight per form instance
type Gate struct {
	inFlight atomic.Bool
}

// TryAcquire marks a submission as in flight. It returns false without
// side effects when one already is.
func (g *Gate) TryAcquire() bool {
	return g.inFlight.CompareAndSwap(false, true)
}

func (g *Gate) Release() {
	g.inFlight.Store(false)
}

func (g *Gate) InFlight() bool {
	return g.inFlight.Load()
}
