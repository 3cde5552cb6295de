package core

// Color is a foreground colour for a screen cell, stored as a hex string
// ("#FFD700"). The zero value means the terminal default.
type Color string

// ColorDefault leaves the cell in the terminal's default colour.
const ColorDefault Color = ""

// Frequently used HUD colours.
const (
	ColorWhite  Color = "#FFFFFF"
	ColorGold   Color = "#FFD700"
	ColorRed    Color = "#E74C3C"
	ColorGray   Color = "#8A8A8A"
	ColorShield Color = "#4FC3F7"
	ColorMagnet Color = "#E040FB"
	ColorDouble Color = "#FFB300"
	ColorSlow   Color = "#81C784"
)
