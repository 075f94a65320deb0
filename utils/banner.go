package utils

import "github.com/common-nighthawk/go-figure"

func DrawBanner() {
	banner := figure.NewColorFigure("costsift", "", "green", true)
	banner.Print()
}
