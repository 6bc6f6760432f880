package colors

// Dragon returns the Kanagawa Dragon color scheme (dark theme with warm earth tones)
func Dragon() *ColorScheme {
	return &ColorScheme{
		Preset: "dragon",

		// Primary accent color
		Accent: palette.dragonViolet,

		Background:       palette.dragonBlack1,
		ColumnBackground: palette.dragonBlack3,

		// Board colors
		ColumnBorder:   palette.dragonBlack6,
		CardBorder:     palette.dragonBlack4,
		CardBackground: palette.dragonBlack3,
		SelectedBorder: palette.dragonAqua,
		SelectedBg:     palette.waveBlue1,
		DragBorder:     palette.dragonYellow,
		DropTarget:     palette.dragonGreen2,
		Pending:        palette.dragonViolet,

		// Text colors
		Title:  palette.dragonBlue2,
		Subtle: palette.dragonAsh,
		Normal: palette.dragonWhite,

		// Notification colors
		InfoFg:    palette.dragonBlue,
		InfoBg:    palette.winterBlue,
		WarningFg: palette.roninYellow,
		WarningBg: palette.winterYellow,
		ErrorFg:   palette.samuraiRed,
		ErrorBg:   palette.winterRed,

		// Status bar
		StatusBarBg:   palette.dragonViolet, // Matches accent
		StatusBarText: palette.dragonWhite,  // Matches normal text
	}
}
