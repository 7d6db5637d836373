//go:build windows

package tableview

import "github.com/lxn/walk"

// walkModel exposes an Adapter as a walk.TableModel.
type walkModel struct {
	walk.TableModelBase
	adapter *Adapter
}

func newWalkModel(a *Adapter) *walkModel {
	m := &walkModel{adapter: a}
	a.AddResetObserver(m)
	return m
}

func (m *walkModel) RowCount() int {
	return m.adapter.RowCount()
}

func (m *walkModel) Value(row, col int) interface{} {
	v := m.adapter.Data(row, col, DisplayRole)
	if v == nil {
		return ""
	}
	return v
}

// BeginReset is a no-op: walk has no about-to-reset notification.
func (m *walkModel) BeginReset() {}

func (m *walkModel) EndReset() {
	m.PublishRowsReset()
}
