package report

import (
	"fmt"
	"html/template"
	"io"

	"github.com/costsift/costsift/model"
)

const htmlTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>costsift report - {{.Report.AccountID}}</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background: #f5f7fa;
            color: #333;
            padding: 20px;
            line-height: 1.6;
        }
        .container {
            max-width: 1300px;
            margin: 0 auto;
            background: white;
            border-radius: 8px;
            box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);
            overflow: hidden;
        }
        .header {
            background: linear-gradient(135deg, #1f6f54 0%, #123f30 100%);
            color: white;
            padding: 40px;
        }
        .header h1 {
            font-size: 2.4em;
            margin-bottom: 12px;
        }
        .header .meta {
            opacity: 0.95;
            font-size: 1.05em;
        }
        .summary {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(240px, 1fr));
            gap: 22px;
            padding: 36px;
            background: #f8f9fa;
        }
        .summary-card {
            background: white;
            padding: 26px;
            border-radius: 10px;
            border: 1px solid #e8eaed;
            box-shadow: 0 2px 8px rgba(0, 0, 0, 0.05);
        }
        .summary-card h3 {
            color: #5f6368;
            font-size: 0.8em;
            text-transform: uppercase;
            letter-spacing: 1.2px;
            margin-bottom: 12px;
            font-weight: 600;
        }
        .summary-card .value {
            font-size: 2.4em;
            font-weight: 700;
            color: #202124;
            line-height: 1;
        }
        .summary-card.savings {
            border-left: 6px solid #34a853;
        }
        .summary-card.savings .value {
            color: #34a853;
        }
        .summary-card.idle {
            border-left: 6px solid #fbbc04;
        }
        .summary-card.idle .value {
            color: #f9ab00;
        }
        .warning {
            margin: 0 36px;
            padding: 14px 18px;
            background: #fef7e0;
            border: 1px solid #f9ab00;
            border-radius: 8px;
            color: #7a5d00;
        }
        .section {
            padding: 36px;
        }
        .section h2 {
            font-size: 1.6em;
            margin-bottom: 22px;
            color: #202124;
        }
        .kind-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(280px, 1fr));
            gap: 22px;
        }
        .kind-card {
            background: white;
            padding: 22px;
            border-radius: 10px;
            border: 1px solid #e8eaed;
        }
        .kind-card h4 {
            margin-bottom: 14px;
            color: #202124;
        }
        .kind-row {
            display: flex;
            justify-content: space-between;
            padding: 8px 0;
            border-bottom: 1px solid #f0f2f4;
        }
        .kind-row:last-child {
            border-bottom: none;
        }
        .kind-bar {
            height: 8px;
            border-radius: 4px;
            background: #e6f4ea;
            margin-top: 12px;
            overflow: hidden;
        }
        .kind-bar span {
            display: block;
            height: 100%;
            background: #34a853;
        }
        .rows-table {
            width: 100%;
            border-collapse: collapse;
        }
        .rows-table th {
            background: #1f6f54;
            color: white;
            padding: 14px 12px;
            text-align: left;
            font-size: 0.9em;
            text-transform: uppercase;
            letter-spacing: 0.5px;
        }
        .rows-table td {
            padding: 14px 12px;
            border-bottom: 1px solid #f0f2f4;
        }
        .rows-table tbody tr:hover {
            background: #f8f9fa;
        }
        .badge {
            padding: 5px 12px;
            border-radius: 6px;
            font-size: 0.75em;
            font-weight: 700;
            text-transform: uppercase;
            letter-spacing: 0.5px;
            display: inline-block;
        }
        .badge-idle {
            background: #fce8e6;
            color: #d93025;
        }
        .badge-ok {
            background: #e6f4ea;
            color: #1e8e3e;
        }
        .badge-unknown {
            background: #f1f3f4;
            color: #5f6368;
        }
        .savings-cell {
            color: #34a853;
            font-weight: 700;
        }
        .footer {
            background: #202124;
            color: #9aa0a6;
            padding: 28px;
            text-align: center;
        }
        .footer strong {
            color: #fff;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>costsift savings report</h1>
            <div class="meta">
                <p><strong>Account:</strong> {{.Report.AccountID}} | <strong>Region:</strong> {{.Report.Region}}</p>
                <p><strong>Generated:</strong> {{.Report.GeneratedAt.Format "January 2, 2006 15:04 MST"}} | <strong>Run:</strong> {{.Report.RunID}}</p>
            </div>
        </div>

        <div class="summary">
            <div class="summary-card savings">
                <h3>Potential Monthly Savings</h3>
                <div class="value">${{printf "%.2f" .Report.Totals.MonthlySavings}}</div>
            </div>
            <div class="summary-card">
                <h3>Estimated Monthly Cost</h3>
                <div class="value">${{printf "%.2f" .Report.Totals.MonthlyCost}}</div>
            </div>
            <div class="summary-card">
                <h3>Resources Scanned</h3>
                <div class="value">{{len .Report.Rows}}</div>
            </div>
            <div class="summary-card idle">
                <h3>Idle Resources</h3>
                <div class="value">{{.Report.Totals.IdleCount}}</div>
            </div>
        </div>

        {{range .Report.Skipped}}
        <div class="warning">⚠ {{.Kind.Label}} scan skipped: {{.Reason}}</div>
        {{end}}

        {{if .Kinds}}
        <div class="section">
            <h2>Savings by Resource Kind</h2>
            <div class="kind-grid">
                {{range .Kinds}}
                <div class="kind-card">
                    <h4>{{.Label}}</h4>
                    <div class="kind-row"><span>Resources</span><strong>{{.Count}}</strong></div>
                    <div class="kind-row"><span>Idle</span><strong>{{.IdleCount}}</strong></div>
                    <div class="kind-row"><span>Monthly Cost</span><strong>${{printf "%.2f" .MonthlyCost}}</strong></div>
                    <div class="kind-row"><span>Monthly Savings</span><strong>${{printf "%.2f" .MonthlySavings}}</strong></div>
                    <div class="kind-bar"><span style="width: {{.BarPercent}}%"></span></div>
                </div>
                {{end}}
            </div>
        </div>
        {{end}}

        <div class="section">
            <h2>Resources by Potential Savings</h2>
            <table class="rows-table">
                <thead>
                    <tr>
                        <th>Resource</th>
                        <th>Kind</th>
                        <th>Region</th>
                        <th>Dimension</th>
                        <th>Usage</th>
                        <th>Verdict</th>
                        <th>Monthly Cost</th>
                        <th>Savings</th>
                    </tr>
                </thead>
                <tbody>
                    {{range .Report.Rows}}
                    <tr>
                        <td><strong>{{.Record.ID}}</strong>{{if .Record.Name}}{{if ne .Record.Name .Record.ID}}<br>{{.Record.Name}}{{end}}{{end}}</td>
                        <td>{{.Record.Kind.Label}}</td>
                        <td>{{.Record.Region}}</td>
                        <td>{{.Record.BillingDimension}}</td>
                        <td>{{.Record.UsageSummary}}</td>
                        <td><span class="badge badge-{{verdict .Classification}}">{{verdict .Classification}}</span><br><small>{{.Classification.Detail}}</small></td>
                        <td>${{printf "%.2f" .Estimate.MonthlyCost}}{{if .Estimate.Unpriced}} <small>(unpriced)</small>{{end}}</td>
                        <td class="savings-cell">${{printf "%.2f" .Estimate.MonthlySavings}}</td>
                    </tr>
                    {{end}}
                </tbody>
            </table>
        </div>

        {{if .Report.ActualSpend}}
        <div class="section">
            <h2>Billed Spend {{.Report.ActualSpend.Start}} → {{.Report.ActualSpend.End}}</h2>
            <table class="rows-table">
                <thead>
                    <tr><th>Service</th><th>Amount</th></tr>
                </thead>
                <tbody>
                    {{range .Report.ActualSpend.Services}}
                    <tr><td>{{.Service}}</td><td>${{printf "%.2f" .Amount}}</td></tr>
                    {{end}}
                    <tr><td><strong>Total</strong></td><td><strong>${{printf "%.2f" .Report.ActualSpend.Total}}</strong></td></tr>
                </tbody>
            </table>
        </div>
        {{end}}

        <div class="footer">
            <p>Generated by <strong>costsift</strong> run {{.Report.RunID}}</p>
        </div>
    </div>
</body>
</html>
`

type htmlKind struct {
	Label          string
	Count          int
	IdleCount      int
	MonthlyCost    float64
	MonthlySavings float64
	BarPercent     int
}

type htmlView struct {
	Report *model.Report
	Kinds  []htmlKind
}

// WriteHTML renders the report as a self-contained dashboard page.
func WriteHTML(report *model.Report, writer io.Writer) error {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"verdict": func(c model.Classification) string {
			switch {
			case c.Idle:
				return "idle"
			case c.Unknown:
				return "unknown"
			}
			return "ok"
		},
	}).Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("parsing report template: %w", err)
	}

	if err := tmpl.Execute(writer, newHTMLView(report)); err != nil {
		return fmt.Errorf("rendering report template: %w", err)
	}
	return nil
}

// newHTMLView flattens the by-kind totals into a deterministic order and
// scales the savings bars against the largest kind.
func newHTMLView(report *model.Report) htmlView {
	view := htmlView{Report: report}

	var maxSavings float64
	for _, totals := range report.Totals.ByKind {
		if totals.MonthlySavings > maxSavings {
			maxSavings = totals.MonthlySavings
		}
	}

	for _, kind := range model.AllKinds() {
		totals, ok := report.Totals.ByKind[kind]
		if !ok {
			continue
		}
		percent := 0
		if maxSavings > 0 {
			percent = int(totals.MonthlySavings / maxSavings * 100)
		}
		view.Kinds = append(view.Kinds, htmlKind{
			Label:          kind.Label(),
			Count:          totals.Count,
			IdleCount:      totals.IdleCount,
			MonthlyCost:    totals.MonthlyCost,
			MonthlySavings: totals.MonthlySavings,
			BarPercent:     percent,
		})
	}

	return view
}
