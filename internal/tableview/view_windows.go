//go:build windows

package tableview

import (
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/lxn/walk"
	"github.com/lxn/walk/declarative"
	"github.com/lxn/win"

	"resultview/internal/results"
)

// View is a read-only, unsorted, full-row multi-select table bound to a
// results.Model. Build it with NewView, embed Declare() in a declarative
// layout, then call Attach once the window exists.
type View struct {
	model   results.Model
	adapter *Adapter
	table   *walkModel
	tv      *walk.TableView
	sync    *SelectionSync

	// OnActivated is called with the current row on double click / Enter.
	OnActivated func(row int)
}

func NewView(model results.Model) *View {
	a := NewAdapter(model)
	return &View{
		model:   model,
		adapter: a,
		table:   newWalkModel(a),
	}
}

func (v *View) Adapter() *Adapter { return v.adapter }

func (v *View) TableView() *walk.TableView { return v.tv }

// Declare returns the declarative widget for the host layout.
func (v *View) Declare() declarative.TableView {
	cols := make([]declarative.TableViewColumn, v.adapter.ColumnCount())
	for i := range cols {
		title, _ := v.adapter.HeaderData(i, Horizontal, DisplayRole).(string)
		cols[i] = declarative.TableViewColumn{
			Title:     title,
			Alignment: declarative.AlignCenter,
		}
	}
	return declarative.TableView{
		AssignTo:                 &v.tv,
		Model:                    v.table,
		Columns:                  cols,
		MultiSelection:           true,
		NotSortableByHeaderClick: true,
		ColumnsOrderable:         false,
		ColumnsSizable:           true,
		OnSelectedIndexesChanged: v.onSelectedIndexesChanged,
		OnItemActivated:          v.onItemActivated,
	}
}

// Attach finishes wiring after the declarative tree has been created.
func (v *View) Attach() error {
	if v.tv == nil {
		return errors.New("tableview: Attach before the table view was created")
	}
	v.tv.SetGridlines(false)
	v.sync = NewSelectionSync(v.model.SelectedRows(), v.tv, v.adapter.RowCount)
	v.adapter.AddResetObserver(v)
	v.fitColumnsToHeaders()
	return nil
}

// Dispose detaches from the model. The walk widget is owned by its parent.
func (v *View) Dispose() {
	if v.sync != nil {
		v.sync.Close()
	}
	v.adapter.RemoveResetObserver(v)
	v.adapter.RemoveResetObserver(v.table)
	v.adapter.Close()
}

func (v *View) BeginReset() {}

func (v *View) EndReset() {
	v.fitColumnsToHeaders()
	if v.sync != nil {
		v.sync.Refresh()
	}
}

func (v *View) onSelectedIndexesChanged() {
	if v.sync == nil || v.tv == nil {
		return
	}
	v.sync.ViewChanged(v.tv.SelectedIndexes())
}

func (v *View) onItemActivated() {
	if v.OnActivated == nil || v.tv == nil {
		return
	}
	if idx := v.tv.CurrentIndex(); idx >= 0 {
		v.OnActivated(idx)
	}
}

// fitColumnsToHeaders sizes every column to fit both its header and cells.
// The walk TableView hosts up to two list views (frozen and scrolling);
// both get the same treatment.
func (v *View) fitColumnsToHeaders() {
	if v.tv == nil {
		return
	}
	class, err := syscall.UTF16PtrFromString("SysListView32")
	if err != nil {
		return
	}
	width := win.LVSCW_AUTOSIZE_USEHEADER
	cols := v.adapter.ColumnCount()
	var child win.HWND
	for {
		child = win.FindWindowEx(v.tv.Handle(), child, class, nil)
		if child == 0 {
			return
		}
		for i := 0; i < cols; i++ {
			win.SendMessage(child, win.LVM_SETCOLUMNWIDTH, uintptr(i), uintptr(width))
		}
	}
}
