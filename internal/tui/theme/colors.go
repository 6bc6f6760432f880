package theme

import "github.com/thenoetrevino/kodo/internal/config"

// Colors holds the current theme colors, initialized by Init
var (
	Highlight      string
	Title          string
	Subtle         string
	Normal         string
	ColumnBorder   string
	CardBorder     string
	CardBg         string
	SelectedBorder string
	SelectedBg     string
	DragBorder     string
	DropTarget     string
	Pending        string
	InfoFg         string
	InfoBg         string
	WarningFg      string
	WarningBg      string
	ErrorFg        string
	ErrorBg        string
	StatusBarBg    string
	StatusBarText  string
)

func init() {
	Init(config.DefaultColorScheme())
}

// Init initializes the theme colors from the given color scheme
func Init(colors config.ColorScheme) {
	Highlight = colors.Accent
	Title = colors.Title
	Subtle = colors.Subtle
	Normal = colors.Normal
	ColumnBorder = colors.ColumnBorder
	CardBorder = colors.CardBorder
	CardBg = colors.CardBackground
	SelectedBorder = colors.SelectedBorder
	SelectedBg = colors.SelectedBg
	DragBorder = colors.DragBorder
	DropTarget = colors.DropTarget
	Pending = colors.Pending
	InfoFg = colors.InfoFg
	InfoBg = colors.InfoBg
	WarningFg = colors.WarningFg
	WarningBg = colors.WarningBg
	ErrorFg = colors.ErrorFg
	ErrorBg = colors.ErrorBg
	StatusBarBg = colors.StatusBarBg
	StatusBarText = colors.StatusBarText
}
