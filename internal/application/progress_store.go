package application

import (
	"sync"

	"Campos-App/internal/domain/event"
)

// ProgressStore latest published progress payload, for cheap reads by the
// HTTP surface without forcing a recompute.
type ProgressStore struct {
	mu     sync.RWMutex
	latest *event.ProgressPayload
}

// NewProgressStore subscribes to progress updates on the bus.
func NewProgressStore(bus *event.Bus) *ProgressStore {
	s := &ProgressStore{}
	bus.SubscribeXPUpdated(func(p event.ProgressPayload) {
		s.mu.Lock()
		s.latest = &p
		s.mu.Unlock()
	})
	return s
}

// Latest returns the most recent payload, nil before the first recompute.
func (s *ProgressStore) Latest() *event.ProgressPayload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}
