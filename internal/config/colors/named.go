package colors

import "strings"

// named maps the server's column color names to terminal hex colors
var named = map[string]string{
	"dark":   "#5C5F66",
	"gray":   "#868E96",
	"red":    "#FA5252",
	"pink":   "#E64980",
	"grape":  "#BE4BDB",
	"violet": "#7950F2",
	"indigo": "#4C6EF5",
	"blue":   "#228BE6",
	"cyan":   "#15AABF",
	"teal":   "#12B886",
	"green":  "#40C057",
	"lime":   "#82C91E",
	"yellow": "#FAB005",
	"orange": "#FD7E14",
}

// Named resolves a column color: a known color name, a "#RRGGBB" value, or
// fallback for anything else
func Named(name, fallback string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	if hex, ok := named[name]; ok {
		return hex
	}
	if len(name) == 7 && strings.HasPrefix(name, "#") {
		return strings.ToUpper(name)
	}
	return fallback
}
