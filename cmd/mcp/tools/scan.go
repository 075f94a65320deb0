package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/costsift/costsift/cmd/mcp/response"
	"github.com/costsift/costsift/config"
	"github.com/costsift/costsift/model"
	"github.com/costsift/costsift/service"
	awscloudwatch "github.com/costsift/costsift/service/aws/cloudwatch"
	awsconfig "github.com/costsift/costsift/service/aws/config"
	awscostexplorer "github.com/costsift/costsift/service/aws/costexplorer"
	awsec2 "github.com/costsift/costsift/service/aws/ec2"
	awsrds "github.com/costsift/costsift/service/aws/rds"
	awss3 "github.com/costsift/costsift/service/aws/s3"
	awssts "github.com/costsift/costsift/service/aws/sts"
	"github.com/costsift/costsift/service/classifier"
	"github.com/costsift/costsift/service/estimator"
	"github.com/costsift/costsift/service/orchestrator"
	"github.com/costsift/costsift/service/pricing"
)

// RegisterScanTools registers tools that run a live scan against AWS
func RegisterScanTools(s *server.MCPServer, region, profile, configPath string) {
	s.AddTool(
		mcp.NewTool("scan_report",
			mcp.WithDescription("Scan EC2 instances, RDS instances and S3 buckets for idle resources and estimated monthly savings. Returns the run summary: totals, skipped kinds and the biggest savers."),
			mcp.WithNumber("top", mcp.Description("How many top-saver rows to inline (default 5)")),
			mcp.WithBoolean("with_actuals", mcp.Description("Include month-to-date billed spend from Cost Explorer")),
		),
		makeScanReportHandler(region, profile, configPath),
	)

	s.AddTool(
		mcp.NewTool("list_rows",
			mcp.WithDescription("Scan and list resources ordered by descending potential savings. Supports filtering by kind and idle verdict."),
			mcp.WithString("kind", mcp.Description("Filter by resource kind: ec2, rds or s3")),
			mcp.WithBoolean("idle_only", mcp.Description("Return only resources flagged idle")),
			mcp.WithNumber("limit", mcp.Description("Maximum rows to return (default 50)")),
		),
		makeListRowsHandler(region, profile, configPath),
	)

	s.AddTool(
		mcp.NewTool("top_savers",
			mcp.WithDescription("Scan and return the resources with the largest potential monthly savings"),
			mcp.WithNumber("limit", mcp.Description("How many rows to return (default 5)")),
		),
		makeTopSaversHandler(region, profile, configPath),
	)

	s.AddTool(
		mcp.NewTool("get_totals",
			mcp.WithDescription("Scan and return aggregate totals: resource counts, idle counts and monthly cost/savings, overall and per kind"),
		),
		makeGetTotalsHandler(region, profile, configPath),
	)

	s.AddTool(
		mcp.NewTool("get_account",
			mcp.WithDescription("Resolve the AWS account the configured credentials belong to, without scanning"),
		),
		makeGetAccountHandler(region, profile),
	)
}

// runScan builds the pipeline and performs one scan. A non-nil report with a
// non-nil error means some kinds were skipped; the report notes them.
func runScan(ctx context.Context, region, profile, configPath string, withActuals bool) (*model.Report, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	profile, region = cfg.Merge(profile, region)

	awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, region, profile)
	if err != nil {
		return nil, err
	}
	if region == "" {
		region = awsCfg.Region
	}

	// Protocol traffic owns stdout; logs stay on stderr.
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	windowDays := cfg.Window()
	metricsService := awscloudwatch.NewService(cloudwatch.NewFromConfig(awsCfg))

	fetchers := []service.Fetcher{
		awsec2.NewService(ec2.NewFromConfig(awsCfg), metricsService, log, region, windowDays),
		awsrds.NewService(rds.NewFromConfig(awsCfg), metricsService, log, region, windowDays),
		awss3.NewService(s3.NewFromConfig(awsCfg), metricsService, log, region, windowDays),
	}

	orchestratorService := orchestrator.NewService(
		awssts.NewService(sts.NewFromConfig(awsCfg)),
		fetchers,
		classifier.NewService(cfg.ScanThresholds()),
		estimator.NewService(pricing.NewService(cfg.PriceTable())),
		awscostexplorer.NewService(costexplorer.NewFromConfig(awsCfg)),
		log,
	)

	result, err := orchestratorService.Scan(ctx, model.ScanOptions{
		Region:      region,
		Profile:     profile,
		Kinds:       cfg.ScanKinds(),
		WithActuals: withActuals,
	})
	if result == nil {
		return nil, err
	}
	return result, nil
}

func makeScanReportHandler(region, profile, configPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		top := request.GetInt("top", 5)
		withActuals := request.GetBool("with_actuals", false)

		result, err := runScan(ctx, region, profile, configPath, withActuals)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Scan failed: %v", err)), nil
		}

		resp := response.ConvertSummary(result, top)
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeListRowsHandler(region, profile, configPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kindName := request.GetString("kind", "")
		idleOnly := request.GetBool("idle_only", false)
		limit := request.GetInt("limit", 50)

		if kindName != "" && !model.Kind(kindName).Valid() {
			return mcp.NewToolResultError(fmt.Sprintf("Unknown kind %q, expected ec2, rds or s3", kindName)), nil
		}

		result, err := runScan(ctx, region, profile, configPath, false)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Scan failed: %v", err)), nil
		}

		rows := result.Rows
		if kindName != "" {
			rows = result.RowsByKind(model.Kind(kindName))
		}
		if idleOnly {
			rows = filterIdle(rows)
		}
		rows = limitRows(rows, limit)

		resp := response.RowList{RunID: result.RunID, Count: len(rows), Rows: response.ConvertRows(rows)}
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeTopSaversHandler(region, profile, configPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := request.GetInt("limit", 5)

		result, err := runScan(ctx, region, profile, configPath, false)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Scan failed: %v", err)), nil
		}

		rows := limitRows(filterSaving(result.Rows), limit)

		resp := response.RowList{RunID: result.RunID, Count: len(rows), Rows: response.ConvertRows(rows)}
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeGetAccountHandler(region, profile string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, region, profile)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Loading AWS config failed: %v", err)), nil
		}

		info, err := awssts.NewService(sts.NewFromConfig(awsCfg)).GetAccountInfo(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Resolving caller identity failed: %v", err)), nil
		}

		data, _ := json.MarshalIndent(response.ConvertAccountInfo(info), "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeGetTotalsHandler(region, profile, configPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := runScan(ctx, region, profile, configPath, false)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Scan failed: %v", err)), nil
		}

		type totalsPayload struct {
			RunID   string                 `json:"run_id"`
			Totals  response.Totals        `json:"totals"`
			Skipped []response.SkippedKind `json:"skipped,omitempty"`
		}
		resp := totalsPayload{
			RunID:   result.RunID,
			Totals:  response.ConvertTotals(result),
			Skipped: response.ConvertSkipped(result.Skipped),
		}
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func filterIdle(rows []model.Row) []model.Row {
	var filtered []model.Row
	for _, row := range rows {
		if row.Classification.Idle {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func filterSaving(rows []model.Row) []model.Row {
	var filtered []model.Row
	for _, row := range rows {
		if row.Estimate.MonthlySavings > 0 {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func limitRows(rows []model.Row, limit int) []model.Row {
	if limit <= 0 || limit >= len(rows) {
		return rows
	}
	return rows[:limit]
}
