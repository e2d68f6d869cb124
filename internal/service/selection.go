package service

import (
	"sync"

	"github.com/samber/lo"
)

// SelectionSet tracks the ids checked in one list view while bulk mode is
// on. It is cleared whenever bulk mode exits, the page's item set changes,
// or a bulk operation completes, so a stale selection can never reference
// ids that are no longer on screen.
type SelectionSet struct {
	mu       sync.Mutex
	bulkMode bool
	ordered  []string
	members  map[string]struct{}
}

func NewSelectionSet() *SelectionSet {
	return &SelectionSet{members: make(map[string]struct{})}
}

// EnterBulkMode enables multi-select.
func (s *SelectionSet) EnterBulkMode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bulkMode = true
}

// ExitBulkMode disables multi-select and drops the selection.
func (s *SelectionSet) ExitBulkMode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bulkMode = false
	s.clearLocked()
}

func (s *SelectionSet) BulkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bulkMode
}

// Toggle flips one id's membership. Ignored outside bulk mode.
func (s *SelectionSet) Toggle(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.bulkMode || id == "" {
		return
	}
	if _, ok := s.members[id]; ok {
		delete(s.members, id)
		s.ordered = lo.Without(s.ordered, id)
		return
	}
	s.members[id] = struct{}{}
	s.ordered = append(s.ordered, id)
}

// IDs returns the selection in check order.
func (s *SelectionSet) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.ordered))
	copy(out, s.ordered)
	return out
}

func (s *SelectionSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ordered)
}

// Clear drops the selection but keeps bulk mode on. Used when a refetch
// replaces the page's item set.
func (s *SelectionSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *SelectionSet) clearLocked() {
	s.ordered = nil
	s.members = make(map[string]struct{})
}
