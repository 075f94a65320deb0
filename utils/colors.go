package utils

import "github.com/jedib0t/go-pretty/v6/text"

var colorsDisabled bool

// DisableColors turns off ANSI colors in every table and chart.
func DisableColors() {
	text.DisableColors()
	colorsDisabled = true
}
