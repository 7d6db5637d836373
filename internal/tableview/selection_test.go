package tableview

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resultview/internal/results"
)

// fakeWidget echoes programmatic selection changes synchronously, the way
// most toolkits fire their selection-changed signal.
type fakeWidget struct {
	selected []int
	sets     [][]int
	sync     *SelectionSync
	fail     bool
}

func (w *fakeWidget) SelectedIndexes() []int { return w.selected }

func (w *fakeWidget) SetSelectedIndexes(indexes []int) error {
	if w.fail {
		return errors.New("widget gone")
	}
	w.sets = append(w.sets, append([]int(nil), indexes...))
	w.selected = append([]int(nil), indexes...)
	if w.sync != nil {
		w.sync.ViewChanged(w.selected)
	}
	return nil
}

// user simulates a click that changes the widget selection.
func (w *fakeWidget) user(indexes ...int) {
	w.selected = indexes
	w.sync.ViewChanged(indexes)
}

func newSync(t *testing.T, rows int) (*results.Set, *fakeWidget, *SelectionSync) {
	t.Helper()
	s := results.NewSet("Path")
	for i := 0; i < rows; i++ {
		s.Append(results.Row{"p"})
	}
	w := &fakeWidget{}
	sync := NewSelectionSync(s.SelectedRows(), w, s.Len)
	w.sync = sync
	t.Cleanup(sync.Close)
	return s, w, sync
}

func TestSelectionSync_SelectThenDeselect(t *testing.T) {
	s, w, _ := newSync(t, 8)

	w.user(2, 5)
	w.user(5)

	assert.Equal(t, []int{5}, s.SelectedRows().Indexes())
	assert.Empty(t, w.sets, "view-originated changes are not pushed back")
}

func TestSelectionSync_DeduplicatesCellIndexes(t *testing.T) {
	s, w, sync := newSync(t, 8)

	w.user(3, 3, 3, 1, 1)
	assert.ElementsMatch(t, []int{1, 3}, s.SelectedRows().Indexes())
	assert.Equal(t, []int{1, 3}, sync.Current())
}

func TestSelectionSync_RemovesBeforeAppending(t *testing.T) {
	s, w, _ := newSync(t, 8)
	var got []results.Change
	s.SelectedRows().Events().Subscribe(func(c results.Change) { got = append(got, c) })

	w.user(1, 2)
	got = nil
	w.user(2, 4)

	assert.Equal(t, []results.Change{
		{Kind: results.ChangeRemoved, Row: 1},
		{Kind: results.ChangeAdded, Row: 4},
	}, got)
}

func TestSelectionSync_ModelChangesReachWidget(t *testing.T) {
	s, w, sync := newSync(t, 8)

	s.SelectedRows().Append(6)
	s.SelectedRows().Append(2)
	require.Len(t, w.sets, 2)
	assert.Equal(t, []int{2, 6}, w.selected)
	assert.Equal(t, []int{2, 6}, sync.Current())

	s.SelectedRows().Remove(6)
	assert.Equal(t, []int{2}, w.selected)
	assert.Equal(t, []int{2}, s.SelectedRows().Indexes(), "echo must not re-enter the model")
}

func TestSelectionSync_DropsRowsPastEnd(t *testing.T) {
	s, w, _ := newSync(t, 3)

	s.SelectedRows().Append(9)
	assert.Empty(t, w.selected)
	assert.True(t, s.SelectedRows().Contains(9))
}

func TestSelectionSync_ModelResetClearsWidget(t *testing.T) {
	s, w, sync := newSync(t, 5)
	w.user(1, 4)

	s.Reset([]results.Row{{"x"}})
	assert.Empty(t, w.selected)
	assert.Empty(t, sync.Current())
	assert.Equal(t, 0, s.SelectedRows().Len())
}

func TestSelectionSync_RefreshErrorKeepsState(t *testing.T) {
	s, w, sync := newSync(t, 5)
	w.user(1)
	w.fail = true

	s.SelectedRows().Append(3)
	assert.Equal(t, []int{1}, sync.Current())
}

func TestSelectionSync_CloseStopsReflecting(t *testing.T) {
	s, w, sync := newSync(t, 5)
	sync.Close()
	s.SelectedRows().Append(2)
	assert.Empty(t, w.sets)
}

func TestDiffRows(t *testing.T) {
	cases := []struct {
		name           string
		prev, next     []int
		removed, added []int
	}{
		{"empty", nil, nil, nil, nil},
		{"select", nil, []int{1, 2}, nil, []int{1, 2}},
		{"deselect", []int{1, 2}, nil, []int{1, 2}, nil},
		{"swap", []int{1, 3, 5}, []int{3, 4}, []int{1, 5}, []int{4}},
		{"same", []int{2, 7}, []int{2, 7}, nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			removed, added := diffRows(tc.prev, tc.next)
			assert.Equal(t, tc.removed, removed)
			assert.Equal(t, tc.added, added)
		})
	}
}

func TestNormalizeRows(t *testing.T) {
	assert.Equal(t, []int{1, 2, 9}, normalizeRows([]int{9, 2, 2, 1, 9}))
	assert.Equal(t, []int{}, normalizeRows(nil))
}
