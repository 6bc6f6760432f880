// Package drag turns a pick-up/drop gesture on the board into a single intent.
//
// The controller only reads the projection. Applying the intent is left to the
// board service.
package drag

import (
	"fmt"

	"github.com/thenoetrevino/kodo/internal/projection"
)

// State is the gesture state of a Controller
type State int

const (
	Idle State = iota
	Dragging
	Resolved
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Resolved:
		return "resolved"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Kind distinguishes the two outcomes of a drop
type Kind int

const (
	// Reorder keeps the item in its column and changes only local order
	Reorder Kind = iota + 1
	// Move changes the item's status to another column
	Move
)

func (k Kind) String() string {
	switch k {
	case Reorder:
		return "reorder"
	case Move:
		return "move"
	default:
		return "none"
	}
}

// Target is what the gesture ended over.
// ItemID is zero when the drop landed on empty column area.
type Target struct {
	ColumnID string
	ItemID   int
}

// Intent is the resolved meaning of a drop
type Intent struct {
	Kind   Kind
	ItemID int
	From   string
	To     string

	// FromIndex is the item's index in From when the gesture ended
	FromIndex int

	// Index is the drop index inside To. For moves it is always the end of the column.
	Index int

	// Order is the new item order of the column for reorders
	Order []int
}

// Changed reports whether applying the intent alters anything
func (i Intent) Changed() bool {
	return i.Kind == Move || i.FromIndex != i.Index
}

// Controller tracks one gesture at a time
type Controller struct {
	state  State
	itemID int
	from   string
	intent Intent
}

// NewController returns an idle controller
func NewController() *Controller {
	return &Controller{}
}

// State returns the current gesture state
func (c *Controller) State() State {
	return c.state
}

// ItemID returns the item being dragged, or zero when idle
func (c *Controller) ItemID() int {
	return c.itemID
}

// Source returns the column the dragged item was picked up from
func (c *Controller) Source() string {
	return c.from
}

// Intent returns the last resolved intent
func (c *Controller) Intent() (Intent, bool) {
	return c.intent, c.state == Resolved
}

// Begin starts dragging itemID and records its source column
func (c *Controller) Begin(p *projection.Projection, itemID int) error {
	if c.state != Idle {
		return ErrAlreadyDragging
	}
	col, _, ok := p.Locate(itemID)
	if !ok {
		return fmt.Errorf("item %d: %w", itemID, ErrItemNotPlaced)
	}
	c.state = Dragging
	c.itemID = itemID
	c.from = col
	c.intent = Intent{}
	return nil
}

// Drop ends the gesture over target.
//
// An item target wins over a column target and resolves to the item's column.
// An empty column area resolves to that column. When nothing resolves the gesture
// is cancelled and ErrNoTarget is returned.
func (c *Controller) Drop(p *projection.Projection, target Target) (Intent, error) {
	if c.state != Dragging {
		return Intent{}, ErrNotDragging
	}

	from, fromIdx, ok := p.Locate(c.itemID)
	if !ok {
		c.clear()
		return Intent{}, fmt.Errorf("item %d: %w", c.itemID, ErrItemNotPlaced)
	}

	to, overIdx, ok := resolve(p, target)
	if !ok {
		c.clear()
		return Intent{}, ErrNoTarget
	}

	intent := Intent{ItemID: c.itemID, From: from, To: to, FromIndex: fromIdx}
	if from == to {
		items := p.Items(from)
		if overIdx < 0 {
			overIdx = len(items) - 1
		}
		reordered := projection.Splice(items, fromIdx, overIdx)
		intent.Kind = Reorder
		intent.Index = overIdx
		intent.Order = make([]int, len(reordered))
		for i, item := range reordered {
			intent.Order[i] = item.ID
		}
	} else {
		intent.Kind = Move
		intent.Index = len(p.Items(to))
	}

	c.state = Resolved
	c.intent = intent
	return intent, nil
}

// Cancel abandons the gesture without producing an intent
func (c *Controller) Cancel() error {
	if c.state != Dragging {
		return ErrNotDragging
	}
	c.clear()
	return nil
}

// Reset returns to Idle once the resolved intent has been consumed
func (c *Controller) Reset() error {
	if c.state != Resolved {
		return ErrNotResolved
	}
	c.clear()
	return nil
}

func (c *Controller) clear() {
	c.state = Idle
	c.itemID = 0
	c.from = ""
	c.intent = Intent{}
}

// resolve maps a target to a column and the index of the item dropped on.
// The index is -1 for empty column area.
func resolve(p *projection.Projection, target Target) (string, int, bool) {
	if target.ItemID != 0 {
		if col, idx, ok := p.Locate(target.ItemID); ok {
			return col, idx, true
		}
	}
	if target.ColumnID != "" && p.HasColumn(target.ColumnID) {
		return target.ColumnID, -1, true
	}
	return "", -1, false
}
