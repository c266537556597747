package core

import "strconv"

// TileStyle holds the display attributes of a tile.
// Colors are hex strings so any renderer can consume them.
type TileStyle struct {
	Background string
	Foreground string
	Label      string
}

// Default colors for values missing from the table.
const (
	DefaultBackground = "#000000"
	DefaultForeground = "#ffffff"
)

type tileColors struct {
	background string
	foreground string
}

// tileTable enumerates the known powers of two.
var tileTable = map[int]tileColors{
	0:     {"#ccc0b3", "#786f66"},
	2:     {"#eee4da", "#786f66"},
	4:     {"#ede0c8", "#786f66"},
	8:     {"#f2b179", "#ffffff"},
	16:    {"#f59563", "#ffffff"},
	32:    {"#f67c5f", "#ffffff"},
	64:    {"#f65e3b", "#ffffff"},
	128:   {"#edcf72", "#ffffff"},
	256:   {"#edcc61", "#ffffff"},
	512:   {"#edc850", "#ffffff"},
	1024:  {"#edc53f", "#ffffff"},
	2048:  {"#edc22e", "#ffffff"},
	4096:  {"#637b84", "#ffffff"},
	8192:  {"#7e969f", "#ffffff"},
	16384: {"#84b5ca", "#ffffff"},
	32768: {"#91cdd5", "#ffffff"},
	65536: {"#91d0f8", "#ffffff"},
}

// StyleFor returns the display style of a tile value. It never fails:
// values outside the table get white text on black.
func StyleFor(value int) TileStyle {
	style := TileStyle{
		Background: DefaultBackground,
		Foreground: DefaultForeground,
	}
	if c, ok := tileTable[value]; ok {
		style.Background = c.background
		style.Foreground = c.foreground
	}
	if value != 0 {
		style.Label = strconv.Itoa(value)
	}
	return style
}
