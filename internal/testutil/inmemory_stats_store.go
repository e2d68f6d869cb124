package testutil

import (
	"context"
	"sync"

	"github.com/vivahlink/console/internal/domain/stats"
)

// InMemoryStatsStore implements stats.Repository with a settable snapshot.
type InMemoryStatsStore struct {
	mu        sync.RWMutex
	dashboard stats.Dashboard
	calls     int
}

func NewInMemoryStatsStore() *InMemoryStatsStore {
	return &InMemoryStatsStore{}
}

func (s *InMemoryStatsStore) Dashboard(ctx context.Context) (*stats.Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	d := s.dashboard
	return &d, nil
}

// SetDashboard replaces the snapshot the next Dashboard call returns.
func (s *InMemoryStatsStore) SetDashboard(d stats.Dashboard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dashboard = d
}

// Calls reports how many times Dashboard was fetched, so tests can assert
// cache hits versus refetches.
func (s *InMemoryStatsStore) Calls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls
}

func (s *InMemoryStatsStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dashboard = stats.Dashboard{}
	s.calls = 0
}
