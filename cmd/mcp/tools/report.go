package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/costsift/costsift/cmd/mcp/response"
	"github.com/costsift/costsift/model"
	"github.com/costsift/costsift/service/report"
)

// RegisterReportTools registers tools that work on previously written reports
func RegisterReportTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool("load_report",
			mcp.WithDescription("Parse a previously written costsift CSV report and return its rows, ordered by descending potential savings"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path to the report CSV file")),
			mcp.WithString("kind", mcp.Description("Filter by resource kind: ec2, rds or s3")),
			mcp.WithNumber("limit", mcp.Description("Maximum rows to return (default all)")),
		),
		makeLoadReportHandler(),
	)
}

func makeLoadReportHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, err := request.RequireString("path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		kindName := request.GetString("kind", "")
		limit := request.GetInt("limit", 0)

		if kindName != "" && !model.Kind(kindName).Valid() {
			return mcp.NewToolResultError(fmt.Sprintf("Unknown kind %q, expected ec2, rds or s3", kindName)), nil
		}

		file, err := os.Open(path)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to open report: %v", err)), nil
		}
		defer file.Close()

		rows, err := report.ReadCSV(file)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to parse report: %v", err)), nil
		}

		if kindName != "" {
			rows = filterKind(rows, model.Kind(kindName))
		}
		rows = limitRows(rows, limit)

		resp := response.RowList{Count: len(rows), Rows: response.ConvertRows(rows)}
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func filterKind(rows []model.Row, kind model.Kind) []model.Row {
	var filtered []model.Row
	for _, row := range rows {
		if row.Record.Kind == kind {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
