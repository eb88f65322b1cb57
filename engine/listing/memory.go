package listing

import (
	"context"
	"sync"

	"github.com/TruckScoutAI/truckscout-engine/engine/domain"
)

// MemoryStore is an in-memory Store with deterministic insertion order.
type MemoryStore struct {
	mu       sync.RWMutex
	vehicles []domain.VehicleFeatures
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Add appends vehicles to the store.
func (s *MemoryStore) Add(vehicles ...domain.VehicleFeatures) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles = append(s.vehicles, vehicles...)
}

// Len returns the number of stored vehicles.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vehicles)
}

// Find returns vehicles matching the filter in insertion order.
func (s *MemoryStore) Find(ctx context.Context, f Filter) ([]domain.VehicleFeatures, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.VehicleFeatures, 0)
	for _, v := range s.vehicles {
		if f.Matches(v) {
			out = append(out, v)
			if f.Limit > 0 && len(out) >= f.Limit {
				break
			}
		}
	}
	return out, nil
}
