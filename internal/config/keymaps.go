package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Drag
	PickUp      string `yaml:"pick_up"`
	Drop        string `yaml:"drop"`
	Cancel      string `yaml:"cancel"`
	CycleStatus string `yaml:"cycle_status"`

	// Navigation
	PrevColumn string `yaml:"prev_column"`
	NextColumn string `yaml:"next_column"`
	PrevItem   string `yaml:"prev_item"`
	NextItem   string `yaml:"next_item"`

	// Other
	ViewItem string `yaml:"view_item"`
	Refresh  string `yaml:"refresh"`
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		// Drag
		PickUp:      "space",
		Drop:        "enter",
		Cancel:      "esc",
		CycleStatus: "s",

		// Navigation
		PrevColumn: "h",
		NextColumn: "l",
		PrevItem:   "k",
		NextItem:   "j",

		// Other
		ViewItem: "v",
		Refresh:  "r",
		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	if k.PickUp == "" {
		k.PickUp = defaults.PickUp
	}
	if k.Drop == "" {
		k.Drop = defaults.Drop
	}
	if k.Cancel == "" {
		k.Cancel = defaults.Cancel
	}
	if k.CycleStatus == "" {
		k.CycleStatus = defaults.CycleStatus
	}
	if k.PrevColumn == "" {
		k.PrevColumn = defaults.PrevColumn
	}
	if k.NextColumn == "" {
		k.NextColumn = defaults.NextColumn
	}
	if k.PrevItem == "" {
		k.PrevItem = defaults.PrevItem
	}
	if k.NextItem == "" {
		k.NextItem = defaults.NextItem
	}
	if k.ViewItem == "" {
		k.ViewItem = defaults.ViewItem
	}
	if k.Refresh == "" {
		k.Refresh = defaults.Refresh
	}
	if k.ShowHelp == "" {
		k.ShowHelp = defaults.ShowHelp
	}
	if k.Quit == "" {
		k.Quit = defaults.Quit
	}
}
