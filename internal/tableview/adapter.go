// Package tableview adapts a results.Model to a table widget: a tabular
// data contract with reset notifications (Adapter) and a two-way bridge
// between the widget's selection and the model's SelectedRows
// (SelectionSync). The walk-backed View lives in the Windows-only files.
package tableview

import (
	"resultview/internal/results"
)

type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// Role selects which representation of a cell is requested. Only
// DisplayRole is served; everything else falls back to the widget default.
type Role int

const (
	DisplayRole Role = iota
	ToolTipRole
	AlignmentRole
)

// ResetObserver receives the begin/end pair that brackets a full reload.
type ResetObserver interface {
	BeginReset()
	EndReset()
}

// Adapter forwards table queries to a results.Model. It holds a
// non-owning reference; the model must outlive it.
type Adapter struct {
	model     results.Model
	observers []ResetObserver
	cancel    func()
}

func NewAdapter(model results.Model) *Adapter {
	a := &Adapter{model: model}
	a.cancel = model.Events().Subscribe(a.onModelChange)
	return a
}

func (a *Adapter) Model() results.Model { return a.model }

func (a *Adapter) RowCount() int {
	return a.model.Len()
}

func (a *Adapter) ColumnCount() int {
	return len(a.model.Headings())
}

// HeaderData returns the heading for a horizontal section and the row
// index itself for a vertical one. Out-of-range sections and non-display
// roles return nil.
func (a *Adapter) HeaderData(section int, orientation Orientation, role Role) interface{} {
	if role != DisplayRole || section < 0 {
		return nil
	}
	switch orientation {
	case Horizontal:
		headings := a.model.Headings()
		if section < len(headings) {
			return headings[section]
		}
	case Vertical:
		if section < a.model.Len() {
			return section
		}
	}
	return nil
}

// Data returns the model value at (row, col), or nil when either index is
// out of range or role is not DisplayRole.
func (a *Adapter) Data(row, col int, role Role) interface{} {
	if role != DisplayRole {
		return nil
	}
	if row < 0 || col < 0 || row >= a.RowCount() || col >= a.ColumnCount() {
		return nil
	}
	return a.model.Data(row, col)
}

// AddResetObserver registers o. Observers are notified in registration order.
func (a *Adapter) AddResetObserver(o ResetObserver) {
	a.observers = append(a.observers, o)
}

func (a *Adapter) RemoveResetObserver(o ResetObserver) {
	for i, cur := range a.observers {
		if cur == o {
			a.observers = append(a.observers[:i:i], a.observers[i+1:]...)
			return
		}
	}
}

// Close detaches the adapter from the model.
func (a *Adapter) Close() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

func (a *Adapter) onModelChange(c results.Change) {
	if c.Kind != results.ChangeReset {
		return
	}
	// TODO: results.Model has no about-to-reset notification, so BeginReset
	// fires after the rows are already replaced.
	observers := a.observers
	for _, o := range observers {
		o.BeginReset()
	}
	for _, o := range observers {
		o.EndReset()
	}
}
