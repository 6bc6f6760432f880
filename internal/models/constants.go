package models

// ============================================================================
// STATUS CONSTANTS
// ============================================================================

// Column IDs of the default board
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

// DefaultAutoAssignPattern is the comment tag set that lands new items in the first column
const DefaultAutoAssignPattern = "TODO|FIXME"

// ============================================================================
// ITEM TYPE CONSTANTS
// ============================================================================

// Common item types produced by the server scan
const (
	ItemTypeTodo     ItemType = "TODO"
	ItemTypeFixme    ItemType = "FIXME"
	ItemTypeBug      ItemType = "BUG"
	ItemTypeRefactor ItemType = "REFACTOR"
	ItemTypeFeature  ItemType = "FEATURE"
	ItemTypeNote     ItemType = "NOTE"
)
