package colors

// Lotus returns the Kanagawa Lotus color scheme (light theme)
func Lotus() *ColorScheme {
	return &ColorScheme{
		Preset: "lotus",

		Accent: palette.lotusViolet4,

		Background:       palette.lotusWhite0,
		ColumnBackground: palette.lotusWhite2,

		ColumnBorder:   palette.lotusViolet1,
		CardBorder:     palette.lotusWhite4,
		CardBackground: palette.lotusWhite3,
		SelectedBorder: palette.lotusAqua,
		SelectedBg:     palette.lotusBlue1,
		DragBorder:     palette.lotusOrange2,
		DropTarget:     palette.lotusGreen,
		Pending:        palette.lotusViolet4,

		Title:  palette.lotusBlue4,
		Subtle: palette.lotusGray3,
		Normal: palette.lotusInk1,

		InfoFg:    palette.lotusTeal3,
		InfoBg:    palette.lotusBlue2,
		WarningFg: palette.lotusOrange2,
		WarningBg: palette.lotusYellow4,
		ErrorFg:   palette.lotusRed3,
		ErrorBg:   palette.lotusRed4,

		StatusBarBg:   palette.lotusViolet4,
		StatusBarText: palette.lotusWhite3,
	}
}
