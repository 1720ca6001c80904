package mcpserver

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"subcost/internal/config"
	"subcost/internal/correlate"
	"subcost/internal/events"
	"subcost/internal/pricing"
)

// registerReportTools registers the accounting query surface.
func registerReportTools(server *mcpsdk.Server) {
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "usage_report",
		Description: "Get the most recent subagent tasks with token usage and cost, most recent first",
	}, usageReportHandler)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "pricing_table",
		Description: "Get the versioned per-model rate table reports are priced against",
	}, pricingTableHandler)
}

// usage_report types

type usageReportInput struct {
	Limit int `json:"limit" jsonschema:"Number of recent tasks to return (default: configured window, normally 5)"`
}

type usageReportOutput struct {
	PricingVersion string             `json:"pricingVersion"`
	Records        []correlate.Record `json:"records"`
}

func usageReportHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input usageReportInput) (*mcpsdk.CallToolResult, usageReportOutput, error) {
	cfg, store, table, err := loadPipeline()
	if err != nil {
		return nil, usageReportOutput{}, err
	}

	completions, err := store.ReadCompletions()
	if err != nil {
		return nil, usageReportOutput{}, fmt.Errorf("read completion log: %w", err)
	}
	starts, err := store.ReadStarts()
	if err != nil {
		return nil, usageReportOutput{}, fmt.Errorf("read start log: %w", err)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = cfg.WindowOrDefault()
	}

	return nil, usageReportOutput{
		PricingVersion: table.Version,
		Records:        correlate.Window(completions, starts, table, limit),
	}, nil
}

// pricing_table types

type pricingTableInput struct{}

type pricingTableOutput struct {
	Version string         `json:"version"`
	Tiers   []pricing.Tier `json:"tiers"`
}

func pricingTableHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input pricingTableInput) (*mcpsdk.CallToolResult, pricingTableOutput, error) {
	_, _, table, err := loadPipeline()
	if err != nil {
		return nil, pricingTableOutput{}, err
	}
	return nil, pricingTableOutput{Version: table.Version, Tiers: table.Tiers}, nil
}

// loadPipeline assembles the read side: config, event store, rate table.
func loadPipeline() (*config.Config, *events.Store, *pricing.Table, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	store, err := events.Open(cfg.DataDirOrDefault())
	if err != nil {
		return nil, nil, nil, err
	}
	table, err := cfg.PricingTable()
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, store, table, nil
}
