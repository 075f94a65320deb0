package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/costsift/costsift/cmd/mcp/tools"
)

func main() {
	cfg := LoadConfig()

	s := server.NewMCPServer(
		"costsift-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	tools.RegisterScanTools(s, cfg.AWSRegion, cfg.AWSProfile, cfg.ConfigPath)
	tools.RegisterReportTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
