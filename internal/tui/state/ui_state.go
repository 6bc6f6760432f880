package state

// Mode represents the current interaction mode of the TUI.
// Each mode determines which keyboard shortcuts are active and what UI is displayed.
type Mode int

const (
	NormalMode Mode = iota // Default navigation mode
	DragMode               // Carrying an item, keys move the drop target
	DetailMode             // Item detail pane
	HelpMode               // Displaying help screen
)

func (m Mode) String() string {
	switch m {
	case DragMode:
		return "DRAG"
	case DetailMode:
		return "DETAIL"
	case HelpMode:
		return "HELP"
	default:
		return "NORMAL"
	}
}

// ColumnWidth is the rendered width of one column including its border and spacing
const ColumnWidth = 38

// UIState manages the user interface state.
// This includes navigation (column/item selection), the drop target while
// dragging, viewport scrolling, terminal dimensions and the interaction mode.
type UIState struct {
	selectedColumn int
	selectedItem   int

	// drop target while in DragMode; dropItem is -1 for the empty end of the column
	dropColumn int
	dropItem   int

	width  int
	height int
	mode   Mode

	// viewportOffset is the index of the leftmost visible column
	viewportOffset int

	// viewportSize is the number of columns that fit on the screen
	viewportSize int
}

// NewUIState creates a new UIState with default values.
func NewUIState() *UIState {
	return &UIState{
		mode:         NormalMode,
		dropItem:     -1,
		viewportSize: 1, // recalculated when width is set
	}
}

// SelectedColumn returns the index of the currently selected column.
func (s *UIState) SelectedColumn() int {
	return s.selectedColumn
}

// SetSelectedColumn updates the selected column index.
func (s *UIState) SetSelectedColumn(index int) {
	s.selectedColumn = index
}

// SelectedItem returns the index of the selected item within the selected column.
func (s *UIState) SelectedItem() int {
	return s.selectedItem
}

// SetSelectedItem updates the selected item index.
func (s *UIState) SetSelectedItem(index int) {
	s.selectedItem = index
}

// ClampSelection keeps the selection inside a board with the given column lengths.
func (s *UIState) ClampSelection(lengths []int) {
	if len(lengths) == 0 {
		s.selectedColumn, s.selectedItem = 0, 0
		return
	}
	s.selectedColumn = min(max(s.selectedColumn, 0), len(lengths)-1)
	s.selectedItem = min(max(s.selectedItem, 0), max(lengths[s.selectedColumn]-1, 0))
}

// DropTarget returns the column index and item index under the carried item.
// The item index is -1 when the target is the empty end of the column.
func (s *UIState) DropTarget() (column, item int) {
	return s.dropColumn, s.dropItem
}

// SetDropTarget updates the drop target.
func (s *UIState) SetDropTarget(column, item int) {
	s.dropColumn = column
	s.dropItem = item
}

// Width returns the current terminal width.
func (s *UIState) Width() int {
	return s.width
}

// SetWidth updates the terminal width and recalculates viewport size.
func (s *UIState) SetWidth(width int) {
	s.width = width
	s.calculateViewportSize()
}

// Height returns the current terminal height.
func (s *UIState) Height() int {
	return s.height
}

// SetHeight updates the terminal height.
func (s *UIState) SetHeight(height int) {
	s.height = height
}

// ContentHeight returns the height available to the columns.
// This is terminal height minus header and status bar, ensuring a minimum of 5.
func (s *UIState) ContentHeight() int {
	const headerHeight = 2    // title + gap line
	const statusBarHeight = 2 // status bar + gap line
	return max(s.height-headerHeight-statusBarHeight, 5)
}

// Mode returns the current interaction mode.
func (s *UIState) Mode() Mode {
	return s.mode
}

// SetMode updates the current interaction mode.
func (s *UIState) SetMode(mode Mode) {
	s.mode = mode
}

// ViewportOffset returns the index of the leftmost visible column.
func (s *UIState) ViewportOffset() int {
	return s.viewportOffset
}

// ViewportSize returns the number of columns that fit on screen.
func (s *UIState) ViewportSize() int {
	return s.viewportSize
}

// calculateViewportSize calculates how many columns fit in the terminal width,
// keeping 2 characters for the scroll indicators. At least 1 column is visible.
func (s *UIState) calculateViewportSize() {
	if s.width == 0 {
		s.viewportSize = 1
		return
	}
	const reservedWidth = 2
	s.viewportSize = max(1, (s.width-reservedWidth)/ColumnWidth)
}

// EnsureVisible adjusts the viewport so the column at index is on screen.
func (s *UIState) EnsureVisible(index, columnsLen int) {
	if index < s.viewportOffset {
		s.viewportOffset = index
	}
	if index >= s.viewportOffset+s.viewportSize {
		s.viewportOffset = index - s.viewportSize + 1
	}
	if s.viewportOffset+s.viewportSize > columnsLen {
		s.viewportOffset = max(0, columnsLen-s.viewportSize)
	}
}
