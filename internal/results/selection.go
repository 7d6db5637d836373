package results

import "sync"

// SelectedRows is an ordered set of row indices. Append and Remove are the
// only mutation paths and each publishes one Change.
type SelectedRows struct {
	mu     sync.RWMutex
	rows   []int
	events Events
}

// Append adds row at the end. It reports false if row was already present.
func (s *SelectedRows) Append(row int) bool {
	s.mu.Lock()
	if s.indexOf(row) >= 0 {
		s.mu.Unlock()
		return false
	}
	s.rows = append(s.rows, row)
	s.mu.Unlock()

	s.events.Publish(Change{Kind: ChangeAdded, Row: row})
	return true
}

// Remove deletes row. It reports false if row was not present.
func (s *SelectedRows) Remove(row int) bool {
	s.mu.Lock()
	i := s.indexOf(row)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
	s.mu.Unlock()

	s.events.Publish(Change{Kind: ChangeRemoved, Row: row})
	return true
}

// Clear removes every row, publishing one ChangeRemoved per row.
func (s *SelectedRows) Clear() {
	s.mu.Lock()
	old := s.rows
	s.rows = nil
	s.mu.Unlock()

	for _, r := range old {
		s.events.Publish(Change{Kind: ChangeRemoved, Row: r})
	}
}

func (s *SelectedRows) Contains(row int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(row) >= 0
}

// Indexes returns the selected rows in insertion order.
func (s *SelectedRows) Indexes() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int, len(s.rows))
	copy(out, s.rows)
	return out
}

func (s *SelectedRows) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

func (s *SelectedRows) Events() *Events { return &s.events }

func (s *SelectedRows) indexOf(row int) int {
	for i, r := range s.rows {
		if r == row {
			return i
		}
	}
	return -1
}
