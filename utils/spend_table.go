package utils

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/costsift/costsift/model"
)

// DrawSpendTable prints the billed month-to-date costs by service, for
// comparing the modeled estimates against what the account actually spends.
func DrawSpendTable(spend *model.ActualSpend) {
	if spend == nil {
		return
	}

	fmt.Printf("\n%s\n", text.FgHiWhite.Sprintf(" 💵  BILLED SPEND (%s → %s)", spend.Start, spend.End))

	tw := table.Table{}
	tw.AppendHeader(table.Row{"Service", fmt.Sprintf("Month to Date (%s)", spend.Currency)})

	for _, service := range spend.Services {
		tw.AppendRow(table.Row{
			text.FgGreen.Sprint(service.Service),
			text.FgYellow.Sprintf("%.2f", service.Amount),
		})
	}

	tw.AppendFooter(table.Row{
		text.FgHiGreen.Sprint("Total"),
		text.FgHiYellow.Sprintf("%.2f", spend.Total),
	})
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{
			Number: 2,
			Align:  text.AlignRight,
		},
	})
	fmt.Println(tw.Render())
}
