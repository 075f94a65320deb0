package utils

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/costsift/costsift/model"
)

const (
	ColorRank1 = "#d73027"
	ColorRank2 = "#f46d43"
	ColorRank3 = "#fee08b"
	ColorRank4 = "#abdda4"
	ColorRank5 = "#66c2a5"
	ColorRank6 = "#1a9850"
)

var defaultStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("#F4D060"))

// DrawSavingsChart renders potential monthly savings per resource kind as a
// bar chart, largest saver in the hottest color.
func DrawSavingsChart(report *model.Report) {
	savings := make([]float64, 0, len(model.AllKinds()))
	kinds := make([]model.Kind, 0, len(model.AllKinds()))
	for _, kind := range model.AllKinds() {
		totals, ok := report.Totals.ByKind[kind]
		if !ok {
			continue
		}
		kinds = append(kinds, kind)
		savings = append(savings, totals.MonthlySavings)
	}
	if len(kinds) == 0 || report.Totals.MonthlySavings == 0 {
		return
	}

	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 📊  POTENTIAL SAVINGS BY KIND"))

	bc := barchart.New(60, 15)
	indexedColors := assignRankedColors(savings)

	for idx, kind := range kinds {
		barStyle := lipgloss.NewStyle()
		if !colorsDisabled {
			barStyle = barStyle.Foreground(lipgloss.Color(indexedColors[idx]))
		}
		data := barchart.BarData{
			Label: fmt.Sprintf("%s: %.2f USD", strings.ToUpper(string(kind)), savings[idx]),
			Values: []barchart.BarValue{
				{
					Value: savings[idx],
					Style: barStyle,
				},
			},
		}

		bc.Push(data)
	}

	bc.Draw()
	s := lipgloss.JoinHorizontal(lipgloss.Top,
		defaultStyle.Render(bc.View()),
	)

	fmt.Println(s)
}

func assignRankedColors(values []float64) []string {
	palette := []string{ColorRank1, ColorRank2, ColorRank3, ColorRank4, ColorRank5, ColorRank6}

	type valueWithIndex struct {
		index int
		value float64
	}

	toSort := make([]valueWithIndex, len(values))
	for i, value := range values {
		toSort[i] = valueWithIndex{index: i, value: value}
	}

	sort.Slice(toSort, func(i, j int) bool {
		return toSort[i].value > toSort[j].value
	})

	resultColors := make([]string, len(values))
	for rank, sorted := range toSort {
		if rank < len(palette) {
			resultColors[sorted.index] = palette[rank]
		}
	}

	return resultColors
}
