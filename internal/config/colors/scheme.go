package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome", "wave")
	Preset string `yaml:"preset"`

	// Primary accent color (used for selections, titles, highlights)
	Accent string `yaml:"accent"`

	// Background colors
	Background       string `yaml:"background"`
	ColumnBackground string `yaml:"column_background"`

	// Board element colors
	ColumnBorder   string `yaml:"column_border"`
	CardBorder     string `yaml:"card_border"`
	CardBackground string `yaml:"card_background"`
	SelectedBorder string `yaml:"selected_border"`
	SelectedBg     string `yaml:"selected_bg"`
	DragBorder     string `yaml:"drag_border"` // Card being carried
	DropTarget     string `yaml:"drop_target"` // Column under the carried card
	Pending        string `yaml:"pending"`     // Cards waiting for the server

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"` // Muted/placeholder text
	Normal string `yaml:"normal"`

	// Notification colors (foreground/background pairs)
	InfoFg    string `yaml:"info_fg"`
	InfoBg    string `yaml:"info_bg"`
	WarningFg string `yaml:"warning_fg"`
	WarningBg string `yaml:"warning_bg"`
	ErrorFg   string `yaml:"error_fg"`
	ErrorBg   string `yaml:"error_bg"`

	// Status bar
	StatusBarBg   string `yaml:"status_bar_bg"`
	StatusBarText string `yaml:"status_bar_text"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	case "wave":
		return Wave()
	case "dragon":
		return Dragon()
	case "lotus":
		return Lotus()
	default:
		return Default()
	}
}

// Presets lists the preset names GetPreset understands
func Presets() []string {
	return []string{"default", "monochrome", "wave", "dragon", "lotus"}
}

// fields returns pointers to every color value, in declaration order
func (c *ColorScheme) fields() []*string {
	return []*string{
		&c.Accent,
		&c.Background, &c.ColumnBackground,
		&c.ColumnBorder, &c.CardBorder, &c.CardBackground,
		&c.SelectedBorder, &c.SelectedBg,
		&c.DragBorder, &c.DropTarget, &c.Pending,
		&c.Title, &c.Subtle, &c.Normal,
		&c.InfoFg, &c.InfoBg, &c.WarningFg, &c.WarningBg, &c.ErrorFg, &c.ErrorBg,
		&c.StatusBarBg, &c.StatusBarText,
	}
}

// ApplyDefaults fills in missing color values using the preset as base
// If preset is specified, loads that preset first, then overrides with custom values
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset)
	if c.Preset == "" {
		c.Preset = preset.Preset
	}

	base := preset.fields()
	for i, f := range c.fields() {
		if *f == "" {
			*f = *base[i]
		}
	}
}

// MergeFrom overrides colors with every non-empty value in other
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	if other.Preset != "" && other.Preset != c.Preset {
		// A different preset replaces the whole base before the overrides
		*c = *GetPreset(other.Preset)
	}

	src := other.fields()
	for i, f := range c.fields() {
		if *src[i] != "" {
			*f = *src[i]
		}
	}
}
