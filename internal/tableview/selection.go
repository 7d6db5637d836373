package tableview

import (
	"log"
	"sort"

	"resultview/internal/results"
)

// NativeSelection is the widget side of the selection: whatever rows the
// toolkit currently shows as selected.
type NativeSelection interface {
	SelectedIndexes() []int
	SetSelectedIndexes(indexes []int) error
}

// SelectionSync keeps a widget's selection and a results.SelectedRows in
// step. Widget changes arrive through ViewChanged; model changes are pushed
// to the widget from the SelectedRows event stream. Each direction is
// suppressed while the other one is writing, so nothing echoes back.
type SelectionSync struct {
	rows     *results.SelectedRows
	native   NativeSelection
	rowCount func() int

	current    []int
	applying   bool
	reflecting bool
	cancel     func()
}

// NewSelectionSync wires rows to native. rowCount bounds the indices that
// are pushed to the widget.
func NewSelectionSync(rows *results.SelectedRows, native NativeSelection, rowCount func() int) *SelectionSync {
	s := &SelectionSync{
		rows:     rows,
		native:   native,
		rowCount: rowCount,
		current:  normalizeRows(native.SelectedIndexes()),
	}
	s.cancel = rows.Events().Subscribe(s.onRowsChanged)
	return s
}

// ViewChanged takes the widget's full selection after a change. Rows that
// left the selection are removed from the model, then rows that entered it
// are appended.
func (s *SelectionSync) ViewChanged(indexes []int) {
	next := normalizeRows(indexes)
	if s.reflecting {
		s.current = next
		return
	}
	removed, added := diffRows(s.current, next)
	s.current = next
	if len(removed) == 0 && len(added) == 0 {
		return
	}

	s.applying = true
	defer func() { s.applying = false }()
	for _, r := range removed {
		s.rows.Remove(r)
	}
	for _, r := range added {
		s.rows.Append(r)
	}
}

// Refresh pushes the model selection to the widget, e.g. after a reset.
func (s *SelectionSync) Refresh() {
	want := s.modelRows()
	s.reflecting = true
	err := s.native.SetSelectedIndexes(want)
	s.reflecting = false
	if err != nil {
		log.Printf("tableview: set selected indexes %v: %v", want, err)
		return
	}
	s.current = want
}

// Current returns the widget selection as last seen.
func (s *SelectionSync) Current() []int {
	out := make([]int, len(s.current))
	copy(out, s.current)
	return out
}

func (s *SelectionSync) Close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *SelectionSync) onRowsChanged(c results.Change) {
	if s.applying {
		return
	}
	switch c.Kind {
	case results.ChangeAdded, results.ChangeRemoved:
		s.Refresh()
	}
}

func (s *SelectionSync) modelRows() []int {
	limit := -1
	if s.rowCount != nil {
		limit = s.rowCount()
	}
	rows := s.rows.Indexes()
	out := rows[:0]
	for _, r := range rows {
		if r < 0 || (limit >= 0 && r >= limit) {
			continue
		}
		out = append(out, r)
	}
	return normalizeRows(out)
}

// normalizeRows returns the distinct indices in ascending order. A row
// spans several cells, so toolkits may report it more than once.
func normalizeRows(indexes []int) []int {
	out := make([]int, 0, len(indexes))
	seen := make(map[int]struct{}, len(indexes))
	for _, i := range indexes {
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// diffRows compares two normalized selections.
func diffRows(prev, next []int) (removed, added []int) {
	i, j := 0, 0
	for i < len(prev) && j < len(next) {
		switch {
		case prev[i] == next[j]:
			i++
			j++
		case prev[i] < next[j]:
			removed = append(removed, prev[i])
			i++
		default:
			added = append(added, next[j])
			j++
		}
	}
	removed = append(removed, prev[i:]...)
	added = append(added, next[j:]...)
	return removed, added
}
