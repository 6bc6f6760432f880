package colors

// palette holds the Kanagawa colors shared by the wave, dragon and lotus presets
var palette = struct {
	// Wave
	sumiInk1, sumiInk2, sumiInk3, sumiInk4, sumiInk6 string
	waveBlue1, waveAqua2                             string
	winterBlue, winterYellow, winterRed              string
	fujiWhite, fujiGray, oniViolet, crystalBlue      string
	springGreen, springViolet1, carpYellow           string
	samuraiRed, roninYellow, dragonBlue              string

	// Dragon
	dragonBlack1, dragonBlack3, dragonBlack4, dragonBlack6 string
	dragonWhite, dragonAsh, dragonViolet, dragonBlue2      string
	dragonAqua, dragonGreen2, dragonYellow                 string

	// Lotus
	lotusInk1, lotusGray3, lotusViolet1, lotusViolet4       string
	lotusWhite0, lotusWhite2, lotusWhite3, lotusWhite4      string
	lotusBlue1, lotusBlue2, lotusBlue4, lotusTeal3          string
	lotusAqua, lotusGreen, lotusYellow4, lotusOrange2       string
	lotusRed3, lotusRed4                                    string
}{
	sumiInk1: "#181820", sumiInk2: "#1A1A22", sumiInk3: "#1F1F28", sumiInk4: "#2A2A37", sumiInk6: "#54546D",
	waveBlue1: "#223249", waveAqua2: "#7AA89F",
	winterBlue: "#252535", winterYellow: "#49443C", winterRed: "#43242B",
	fujiWhite: "#DCD7BA", fujiGray: "#727169", oniViolet: "#957FB8", crystalBlue: "#7E9CD8",
	springGreen: "#98BB6C", springViolet1: "#938AA9", carpYellow: "#E6C384",
	samuraiRed: "#E82424", roninYellow: "#FF9E3B", dragonBlue: "#658594",

	dragonBlack1: "#12120F", dragonBlack3: "#181616", dragonBlack4: "#282727", dragonBlack6: "#625E5A",
	dragonWhite: "#C5C9C5", dragonAsh: "#737C73", dragonViolet: "#8992A7", dragonBlue2: "#8BA4B0",
	dragonAqua: "#8EA4A2", dragonGreen2: "#8A9A7B", dragonYellow: "#C4B28A",

	lotusInk1: "#545464", lotusGray3: "#8A8980", lotusViolet1: "#A09CAC", lotusViolet4: "#624C83",
	lotusWhite0: "#D5CEA3", lotusWhite2: "#DDD7A5", lotusWhite3: "#F2ECBC", lotusWhite4: "#E7DBA0",
	lotusBlue1: "#C7D7E0", lotusBlue2: "#B5CBD2", lotusBlue4: "#4D699B", lotusTeal3: "#5A7785",
	lotusAqua: "#597B75", lotusGreen: "#6F894E", lotusYellow4: "#F9D791", lotusOrange2: "#E98A00",
	lotusRed3: "#E82424", lotusRed4: "#D9A594",
}
