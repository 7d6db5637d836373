// Package results holds the search result data a table view is built on:
// an ordered row set with fixed column headings and the rows a user has
// selected. Both publish their changes through Events.
package results

// Model is what a table front end needs from a result source.
type Model interface {
	// Len returns the current number of rows.
	Len() int
	// Headings returns the column labels. They do not change for the
	// lifetime of the model.
	Headings() []string
	// Data returns the display value at (row, col).
	Data(row, col int) interface{}
	// Events delivers ChangeReset whenever the rows change.
	Events() *Events
	// SelectedRows is the model-owned multi selection.
	SelectedRows() *SelectedRows
}
