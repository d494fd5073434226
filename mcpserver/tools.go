package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gecko-tools/market-gateway/controller"
	"github.com/gecko-tools/market-gateway/metrics"
	"github.com/gecko-tools/market-gateway/operations"
)

// registerTools registers one tool per operation descriptor. The input
// schemas are generated from the shared table so tool metadata can never
// drift from the other surfaces.
func registerTools(s *server.MCPServer, ctrl *controller.Controller, writer *metrics.Writer) {
	for _, d := range operations.All() {
		descriptor := d
		s.AddTool(toolFromDescriptor(descriptor), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return dispatchTool(ctx, ctrl, writer, descriptor, toolArguments(request))
		})
	}
}

func toolFromDescriptor(d operations.Descriptor) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(d.Description)}
	for _, p := range d.Required {
		opts = append(opts, paramOption(p, true))
	}
	for _, p := range d.Optional {
		opts = append(opts, paramOption(p, false))
	}
	return mcp.NewTool(d.Name, opts...)
}

func paramOption(p operations.Param, required bool) mcp.ToolOption {
	propOpts := []mcp.PropertyOption{mcp.Description(p.Description)}
	if required {
		propOpts = append(propOpts, mcp.Required())
	}

	switch p.Type {
	case "boolean":
		return mcp.WithBoolean(p.Name, propOpts...)
	case "number":
		return mcp.WithNumber(p.Name, propOpts...)
	default:
		return mcp.WithString(p.Name, propOpts...)
	}
}

// dispatchTool routes a tool call to its operation by name. Failures
// come back as textual error content, never as transport faults.
func dispatchTool(ctx context.Context, ctrl *controller.Controller, writer *metrics.Writer, d operations.Descriptor, args map[string]any) (*mcp.CallToolResult, error) {
	start := time.Now()

	var (
		envelope *operations.Envelope
		err      error
	)

	switch d.Name {
	case operations.OpSimplePrice:
		envelope, err = ctrl.SimplePrice(ctx, operations.PriceParams{
			IDs:                  stringArg(args, "ids"),
			Currencies:           stringArg(args, "vs_currencies"),
			IncludeMarketCap:     stringArg(args, "include_market_cap"),
			Include24hrVol:       stringArg(args, "include_24hr_vol"),
			Include24hrChange:    stringArg(args, "include_24hr_change"),
			IncludeLastUpdatedAt: stringArg(args, "include_last_updated_at"),
			Precision:            stringArg(args, "precision"),
		})
	case operations.OpTrending:
		envelope, err = ctrl.Trending(ctx)
	case operations.OpNewCoins:
		envelope, err = ctrl.NewCoins(ctx)
	case operations.OpTokenByAddress:
		envelope, err = ctrl.TokenByAddress(ctx, operations.TokenParams{
			ChainID:       stringArg(args, "chainId"),
			TokenAddress:  stringArg(args, "tokenAddress"),
			Localization:  stringArg(args, "localization"),
			Tickers:       stringArg(args, "tickers"),
			MarketData:    stringArg(args, "market_data"),
			CommunityData: stringArg(args, "community_data"),
			DeveloperData: stringArg(args, "developer_data"),
			Sparkline:     stringArg(args, "sparkline"),
		})
	default:
		writer.RecordOperation(d.Name, "error", start)
		return mcp.NewToolResultError(fmt.Sprintf("unknown tool: %s", d.Name)), nil
	}

	if err != nil {
		writer.RecordOperation(d.Name, "error", start)
		failure, _ := json.Marshal(operations.FailureEnvelope(d, err))
		return mcp.NewToolResultError(string(failure)), nil
	}

	writer.RecordOperation(d.Name, "success", start)

	result, err := json.Marshal(envelope)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(result)), nil
}

// toolArguments extracts the arguments map from a tool request
func toolArguments(request mcp.CallToolRequest) map[string]any {
	if args, ok := request.Params.Arguments.(map[string]any); ok {
		return args
	}
	return map[string]any{}
}

// stringArg converts a caller-supplied argument to the raw string the
// operation handlers expect. Booleans and numbers are stringified,
// absent values become the empty string.
func stringArg(args map[string]any, name string) string {
	value, ok := args[name]
	if !ok || value == nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
