package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/costsift/costsift/model"
)

// CSVHeader is the column layout of the resource section, shared by the
// writer, the reader, and external consumers of published reports.
var CSVHeader = []string{
	"ResourceID",
	"Kind",
	"Name",
	"Region",
	"BillingDimension",
	"UsageMetric",
	"Idle",
	"Rule",
	"MonthlyCostUSD",
	"MonthlySavingsUSD",
	"Flags",
}

const (
	flagUnknown  = "unknown"
	flagUnpriced = "unpriced"
)

// WriteCSV renders the report as one resource row per line followed by a
// summary section, preserving report row order.
func WriteCSV(report *model.Report, writer io.Writer) error {
	w := csv.NewWriter(writer)
	defer w.Flush()

	if err := w.Write(CSVHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, row := range report.Rows {
		record := []string{
			row.Record.ID,
			string(row.Record.Kind),
			row.Record.Name,
			row.Record.Region,
			row.Record.BillingDimension,
			row.Record.UsageSummary(),
			strconv.FormatBool(row.Classification.Idle),
			string(row.Classification.Rule),
			fmt.Sprintf("%.2f", row.Estimate.MonthlyCost),
			fmt.Sprintf("%.2f", row.Estimate.MonthlySavings),
			rowFlags(row),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing CSV row %s: %w", row.Record.ID, err)
		}
	}

	w.Write([]string{})
	w.Write([]string{"SUMMARY"})
	w.Write([]string{"Account", report.AccountID})
	w.Write([]string{"Region", report.Region})
	w.Write([]string{"Run", report.RunID})
	w.Write([]string{"Generated", report.GeneratedAt.Format(time.RFC3339)})
	w.Write([]string{"Resources", strconv.Itoa(len(report.Rows))})
	w.Write([]string{"Idle Resources", strconv.Itoa(report.Totals.IdleCount)})
	w.Write([]string{"Unknown", strconv.Itoa(report.Totals.UnknownCount)})
	w.Write([]string{"Unpriced", strconv.Itoa(report.Totals.UnpricedCount)})
	w.Write([]string{"Total Monthly Cost", fmt.Sprintf("$%.2f", report.Totals.MonthlyCost)})
	w.Write([]string{"Total Monthly Savings", fmt.Sprintf("$%.2f", report.Totals.MonthlySavings)})

	w.Write([]string{})
	w.Write([]string{"KIND BREAKDOWN"})
	w.Write([]string{"Kind", "Resources", "Idle", "MonthlyCostUSD", "MonthlySavingsUSD"})
	for _, kind := range model.AllKinds() {
		kindTotals, ok := report.Totals.ByKind[kind]
		if !ok {
			continue
		}
		w.Write([]string{
			string(kind),
			strconv.Itoa(kindTotals.Count),
			strconv.Itoa(kindTotals.IdleCount),
			fmt.Sprintf("%.2f", kindTotals.MonthlyCost),
			fmt.Sprintf("%.2f", kindTotals.MonthlySavings),
		})
	}

	if len(report.Skipped) > 0 {
		w.Write([]string{})
		w.Write([]string{"SKIPPED KINDS"})
		w.Write([]string{"Kind", "Reason"})
		for _, skipped := range report.Skipped {
			w.Write([]string{string(skipped.Kind), skipped.Reason})
		}
	}

	w.Flush()
	return w.Error()
}

// ReadCSV parses the resource section of a report written by WriteCSV back
// into rows. The summary section is informational and is not parsed; usage
// metrics survive only as their rendered string, carried in the classifier
// detail.
func ReadCSV(reader io.Reader) ([]model.Row, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	if len(header) != len(CSVHeader) || header[0] != CSVHeader[0] {
		return nil, fmt.Errorf("unrecognized CSV header %q", strings.Join(header, ","))
	}

	var rows []model.Row
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row %d: %w", len(rows)+1, err)
		}
		if len(record) == 0 || record[0] == "SUMMARY" {
			break
		}
		if len(record) != len(CSVHeader) {
			return nil, fmt.Errorf("CSV row %d has %d fields, want %d", len(rows)+1, len(record), len(CSVHeader))
		}

		row, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("CSV row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func parseRow(record []string) (model.Row, error) {
	kind := model.Kind(record[1])
	if !kind.Valid() {
		return model.Row{}, fmt.Errorf("unknown kind %q", record[1])
	}

	idle, err := strconv.ParseBool(record[6])
	if err != nil {
		return model.Row{}, fmt.Errorf("parsing idle flag: %w", err)
	}
	cost, err := strconv.ParseFloat(record[8], 64)
	if err != nil {
		return model.Row{}, fmt.Errorf("parsing monthly cost: %w", err)
	}
	savings, err := strconv.ParseFloat(record[9], 64)
	if err != nil {
		return model.Row{}, fmt.Errorf("parsing monthly savings: %w", err)
	}

	flags := strings.Split(record[10], ";")
	unknown := lo.Contains(flags, flagUnknown)
	unpriced := lo.Contains(flags, flagUnpriced)

	priceSource := model.PriceSourceTable
	if unpriced {
		priceSource = model.PriceSourceNone
	}

	return model.Row{
		Record: model.ResourceRecord{
			ID:               record[0],
			Kind:             kind,
			Name:             record[2],
			Region:           record[3],
			BillingDimension: record[4],
		},
		Classification: model.Classification{
			Idle:    idle,
			Unknown: unknown,
			Rule:    model.Rule(record[7]),
			Detail:  record[5],
		},
		Estimate: model.SavingsEstimate{
			MonthlyCost:    cost,
			MonthlySavings: savings,
			Currency:       "USD",
			Unpriced:       unpriced,
			PriceSource:    priceSource,
		},
	}, nil
}

func rowFlags(row model.Row) string {
	var flags []string
	if row.Classification.Unknown {
		flags = append(flags, flagUnknown)
	}
	if row.Estimate.Unpriced {
		flags = append(flags, flagUnpriced)
	}
	return strings.Join(flags, ";")
}
