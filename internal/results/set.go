package results

import "sync"

// Row is one result record, one value per heading.
type Row []interface{}

// Set is the in-memory Model. Every mutation is announced as a reset.
type Set struct {
	mu       sync.RWMutex
	headings []string
	rows     []Row

	events   Events
	selected SelectedRows
}

var _ Model = (*Set)(nil)

func NewSet(headings ...string) *Set {
	h := make([]string, len(headings))
	copy(h, headings)
	return &Set{
		headings: h,
		rows:     make([]Row, 0, 256),
	}
}

func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

func (s *Set) Headings() []string {
	out := make([]string, len(s.headings))
	copy(out, s.headings)
	return out
}

// Data returns nil when (row, col) is outside the set or the row is short.
func (s *Set) Data(row, col int) interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if row < 0 || row >= len(s.rows) {
		return nil
	}
	r := s.rows[row]
	if col < 0 || col >= len(r) {
		return nil
	}
	return r[col]
}

// Row returns a copy of the record at index.
func (s *Set) Row(index int) (Row, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.rows) {
		return nil, false
	}
	out := make(Row, len(s.rows[index]))
	copy(out, s.rows[index])
	return out, true
}

func (s *Set) Events() *Events { return &s.events }

func (s *Set) SelectedRows() *SelectedRows { return &s.selected }

// Reset replaces every row. The selection refers to the discarded rows, so
// it is cleared first.
func (s *Set) Reset(rows []Row) {
	s.mu.Lock()
	s.rows = make([]Row, 0, len(rows))
	s.rows = append(s.rows, rows...)
	s.mu.Unlock()

	s.selected.Clear()
	s.events.Publish(Change{Kind: ChangeReset, Row: -1})
}

// Clear drops all rows.
func (s *Set) Clear() {
	s.Reset(nil)
}

// Append adds rows at the end. Existing indices stay valid, so the
// selection is kept.
func (s *Set) Append(rows ...Row) {
	if len(rows) == 0 {
		return
	}
	s.mu.Lock()
	s.rows = append(s.rows, rows...)
	s.mu.Unlock()

	s.events.Publish(Change{Kind: ChangeReset, Row: -1})
}
