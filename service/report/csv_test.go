package report

import (
	"bytes"
	"strings"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costsift/costsift/model"
)

func sampleReport(t *testing.T) *model.Report {
	t.Helper()

	idleCompute := model.Row{
		Record: model.ResourceRecord{
			ID:               "i-0abc",
			Name:             "web-1",
			Kind:             model.KindCompute,
			Region:           "ap-south-1",
			BillingDimension: "t2.micro",
			Compute: &model.ComputeMetrics{
				AvgCPUPercent: awssdk.Float64(2.31),
				State:         "running",
				WindowDays:    14,
			},
		},
		Classification: model.Classification{
			Idle:   true,
			Rule:   model.RuleCPUBelowThreshold,
			Detail: "avg CPU 2.31% over 14d, below 5.0%",
		},
		Estimate: model.SavingsEstimate{
			MonthlyCost:    16.79,
			MonthlySavings: 16.79,
			Currency:       "USD",
			PriceSource:    model.PriceSourceTable,
		},
	}

	unknownStorage := model.Row{
		Record: model.ResourceRecord{
			ID:               "assets",
			Name:             "assets",
			Kind:             model.KindObjectStorage,
			Region:           "ap-south-1",
			BillingDimension: "STANDARD",
			Storage: &model.StorageMetrics{
				SizeBytes:   5 * 1024 * 1024 * 1024,
				ObjectCount: 1200,
				WindowDays:  14,
			},
		},
		Classification: model.Classification{
			Unknown: true,
			Rule:    model.RuleMetricsUnavailable,
			Detail:  "request metrics not enabled on 5.0 GiB bucket",
		},
		Estimate: model.SavingsEstimate{
			MonthlyCost: 0.12,
			Currency:    "USD",
			PriceSource: model.PriceSourceTable,
		},
	}

	unpricedDB := model.Row{
		Record: model.ResourceRecord{
			ID:               "orders-db",
			Kind:             model.KindDatabase,
			Region:           "ap-south-1",
			BillingDimension: "db.x2g.large",
			Database: &model.DatabaseMetrics{
				AvgConnections: awssdk.Float64(0.1),
				Engine:         "postgres",
				WindowDays:     14,
			},
		},
		Classification: model.Classification{
			Idle:   true,
			Rule:   model.RuleLowConnections,
			Detail: "avg 0.10 connections over 14d, below 1.0",
		},
		Estimate: model.SavingsEstimate{
			Currency:    "USD",
			Unpriced:    true,
			PriceSource: model.PriceSourceNone,
		},
	}

	return Build(
		&model.AccountInfo{AccountID: "123456789012"},
		"ap-south-1",
		[]model.Row{idleCompute, unknownStorage, unpricedDB},
		[]model.SkippedKind{{Kind: model.KindDatabase, Reason: "fetching rds resources: AccessDenied"}},
		nil,
	)
}

func TestWriteCSVLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(sampleReport(t), &buf))

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Equal(t, strings.Join(CSVHeader, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "i-0abc,ec2,web-1,ap-south-1,t2.micro,"), "rows keep report order, got %q", lines[1])
	assert.Contains(t, out, "SUMMARY")
	assert.Contains(t, out, "Account,123456789012")
	assert.Contains(t, out, "Total Monthly Savings,$16.79")
	assert.Contains(t, out, "KIND BREAKDOWN")
	assert.Contains(t, out, "SKIPPED KINDS")
	assert.Contains(t, out, "rds,fetching rds resources: AccessDenied")
	assert.Contains(t, out, "unknown")
	assert.Contains(t, out, "unpriced")
}

func TestCSVRoundTrip(t *testing.T) {
	report := sampleReport(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(report, &buf))

	rows, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, rows, len(report.Rows))

	for i, got := range rows {
		want := report.Rows[i]
		assert.Equal(t, want.Record.ID, got.Record.ID)
		assert.Equal(t, want.Record.Kind, got.Record.Kind)
		assert.Equal(t, want.Record.Region, got.Record.Region)
		assert.Equal(t, want.Record.BillingDimension, got.Record.BillingDimension)
		assert.Equal(t, want.Classification.Idle, got.Classification.Idle)
		assert.Equal(t, want.Classification.Unknown, got.Classification.Unknown)
		assert.Equal(t, want.Classification.Rule, got.Classification.Rule)
		assert.Equal(t, want.Estimate.Unpriced, got.Estimate.Unpriced)
		assert.InDelta(t, want.Estimate.MonthlySavings, got.Estimate.MonthlySavings, 0.005)
		assert.InDelta(t, want.Estimate.MonthlyCost, got.Estimate.MonthlyCost, 0.005)
	}
}

func TestReadCSVRejectsForeignHeader(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("Namespace,Workload,Savings\na,b,1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized CSV header")
}

func TestReadCSVRejectsUnknownKind(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(sampleReport(t), &buf))
	broken := strings.Replace(buf.String(), "i-0abc,ec2,", "i-0abc,lambda,", 1)

	_, err := ReadCSV(strings.NewReader(broken))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown kind")
}

func TestReadCSVStopsAtSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(sampleReport(t), &buf))

	rows, err := ReadCSV(&buf)
	require.NoError(t, err)
	for _, row := range rows {
		assert.True(t, row.Record.Kind.Valid(), "summary rows must not leak into parsed rows")
	}
}
