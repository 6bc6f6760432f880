package tui

import (
	"charm.land/bubbles/v2/key"
	"github.com/thenoetrevino/kodo/internal/config"
)

// keyMap holds the board bindings built from the configured key mappings.
// Arrow keys always work alongside the configured navigation keys.
type keyMap struct {
	PickUp      key.Binding
	Drop        key.Binding
	Cancel      key.Binding
	CycleStatus key.Binding

	PrevColumn key.Binding
	NextColumn key.Binding
	PrevItem   key.Binding
	NextItem   key.Binding

	ViewItem key.Binding
	Refresh  key.Binding
	ShowHelp key.Binding
	Quit     key.Binding
}

func newKeyMap(km config.KeyMappings) keyMap {
	return keyMap{
		PickUp:      key.NewBinding(key.WithKeys(km.PickUp), key.WithHelp(km.PickUp, "pick up item")),
		Drop:        key.NewBinding(key.WithKeys(km.Drop), key.WithHelp(km.Drop, "drop item")),
		Cancel:      key.NewBinding(key.WithKeys(km.Cancel), key.WithHelp(km.Cancel, "cancel / close")),
		CycleStatus: key.NewBinding(key.WithKeys(km.CycleStatus), key.WithHelp(km.CycleStatus, "move to next column")),

		PrevColumn: key.NewBinding(key.WithKeys(km.PrevColumn, "left"), key.WithHelp(km.PrevColumn+"/←", "prev column")),
		NextColumn: key.NewBinding(key.WithKeys(km.NextColumn, "right"), key.WithHelp(km.NextColumn+"/→", "next column")),
		PrevItem:   key.NewBinding(key.WithKeys(km.PrevItem, "up"), key.WithHelp(km.PrevItem+"/↑", "prev item")),
		NextItem:   key.NewBinding(key.WithKeys(km.NextItem, "down"), key.WithHelp(km.NextItem+"/↓", "next item")),

		ViewItem: key.NewBinding(key.WithKeys(km.ViewItem), key.WithHelp(km.ViewItem, "item details")),
		Refresh:  key.NewBinding(key.WithKeys(km.Refresh), key.WithHelp(km.Refresh, "refresh")),
		ShowHelp: key.NewBinding(key.WithKeys(km.ShowHelp), key.WithHelp(km.ShowHelp, "help")),
		Quit:     key.NewBinding(key.WithKeys(km.Quit, "ctrl+c"), key.WithHelp(km.Quit, "quit")),
	}
}

// ShortHelp is shown in the footer of the help overlay
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PickUp, k.Drop, k.CycleStatus, k.ShowHelp, k.Quit}
}

// FullHelp groups every binding by concern
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevColumn, k.NextColumn, k.PrevItem, k.NextItem},
		{k.PickUp, k.Drop, k.Cancel, k.CycleStatus},
		{k.ViewItem, k.Refresh, k.ShowHelp, k.Quit},
	}
}
