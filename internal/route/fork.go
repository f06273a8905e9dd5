package route

import (
	"sync"
	"time"
)

// ForkTracker issues fork identifiers and reports when one repeats the
// previously issued identifier. A repeat is still returned unchanged.
type ForkTracker struct {
	now func() time.Time

	mu   sync.Mutex
	last Identifier
}

// NewForkTracker creates a tracker using now as its clock; nil means time.Now.
func NewForkTracker(now func() time.Time) *ForkTracker {
	if now == nil {
		now = time.Now
	}
	return &ForkTracker{now: now}
}

// Fork returns the fork identifier for id and whether it equals the last one issued.
func (f *ForkTracker) Fork(id Identifier) (Identifier, bool, error) {
	forkID, err := ForkIdentifier(id, f.now())
	if err != nil {
		return "", false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	collided := forkID == f.last
	f.last = forkID
	return forkID, collided, nil
}
