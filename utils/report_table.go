package utils

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/costsift/costsift/model"
)

// DrawReportTable prints the scanned resources ordered by potential savings,
// one row per resource, with a totals footer.
func DrawReportTable(report *model.Report) {
	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 🔎  COSTSIFT SAVINGS DIAGNOSIS"))
	fmt.Printf(" Account ID: %s\n", text.FgBlue.Sprint(report.AccountID))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	for _, skipped := range report.Skipped {
		fmt.Printf(" %s %s: %s\n",
			text.FgHiRed.Sprint("⚠"),
			text.FgHiYellow.Sprint(skipped.Kind.Label()),
			text.FgRed.Sprint(skipped.Reason))
	}

	if len(report.Rows) == 0 {
		fmt.Println(text.FgYellow.Sprint(" No resources found in this region."))
		return
	}

	tw := table.Table{}
	tw.AppendHeader(table.Row{
		"Resource",
		"Kind",
		"Dimension",
		"Usage",
		"Verdict",
		"Monthly Cost",
		"Potential Savings",
	})

	for _, row := range report.Rows {
		tw.AppendRow(populateReportRow(row))
	}

	tw.AppendFooter(table.Row{
		"",
		"",
		"",
		"",
		"Total",
		text.FgHiYellow.Sprintf("%.2f USD", report.Totals.MonthlyCost),
		text.FgHiGreen.Sprintf("%.2f USD", report.Totals.MonthlySavings),
	})
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{
			Number:       1,
			VAlignHeader: text.VAlignMiddle,
		},
		{
			Number:       2,
			VAlignHeader: text.VAlignMiddle,
		},
		{
			Number: 6,
			Align:  text.AlignRight,
		},
		{
			Number: 7,
			Align:  text.AlignRight,
		},
	})
	fmt.Println(tw.Render())
}

func populateReportRow(row model.Row) table.Row {
	name := row.Record.ID
	if row.Record.Name != "" && row.Record.Name != row.Record.ID {
		name = fmt.Sprintf("%s (%s)", row.Record.ID, row.Record.Name)
	}

	verdict := text.FgGreen.Sprint("healthy")
	resource := text.FgGreen.Sprint(name)
	savings := text.FgGreen.Sprintf("%.2f %s", row.Estimate.MonthlySavings, row.Estimate.Currency)

	switch {
	case row.Classification.Idle:
		verdict = text.FgHiRed.Sprintf("IDLE (%s)", row.Classification.Rule)
		resource = text.FgHiRed.Sprint(name)
		savings = text.FgHiGreen.Sprintf("%.2f %s", row.Estimate.MonthlySavings, row.Estimate.Currency)
	case row.Classification.Unknown:
		verdict = text.FgHiYellow.Sprint("unknown")
		resource = text.FgHiYellow.Sprint(name)
	}

	cost := text.FgYellow.Sprintf("%.2f %s", row.Estimate.MonthlyCost, row.Estimate.Currency)
	if row.Estimate.Unpriced {
		cost = text.FgHiYellow.Sprint("n/a")
		savings = text.FgHiYellow.Sprint("n/a")
	}

	return table.Row{
		resource,
		row.Record.Kind.Label(),
		row.Record.BillingDimension,
		row.Record.UsageSummary(),
		verdict,
		cost,
		savings,
	}
}
