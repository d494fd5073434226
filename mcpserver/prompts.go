package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gecko-tools/market-gateway/operations"
)

// registerPrompts registers the canned prompt templates. Each template
// references its tool by the shared operation name.
func registerPrompts(s *server.MCPServer) {
	s.AddPrompt(mcp.NewPrompt("check_crypto_prices",
		mcp.WithPromptDescription("Check current prices for a list of cryptocurrencies"),
		mcp.WithArgument("coins",
			mcp.ArgumentDescription("Comma-separated CoinGecko coin IDs to look up"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("currencies",
			mcp.ArgumentDescription("Comma-separated quote currencies, defaults to usd"),
		),
	), handleCheckPricesPrompt)

	s.AddPrompt(mcp.NewPrompt("whats_trending_crypto",
		mcp.WithPromptDescription("Summarize the coins currently trending on CoinGecko"),
	), handleTrendingPrompt)

	s.AddPrompt(mcp.NewPrompt("lookup_token_contract",
		mcp.WithPromptDescription("Look up a token by its contract address"),
		mcp.WithArgument("chain",
			mcp.ArgumentDescription("Asset platform ID, e.g. 'ethereum'"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("address",
			mcp.ArgumentDescription("Token contract address"),
			mcp.RequiredArgument(),
		),
	), handleTokenLookupPrompt)
}

func handleCheckPricesPrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	coins := request.Params.Arguments["coins"]
	currencies := request.Params.Arguments["currencies"]
	if currencies == "" {
		currencies = "usd"
	}

	text := fmt.Sprintf(
		"Use the %s tool with ids=%q and vs_currencies=%q, then summarize the current prices in a short table.",
		operations.OpSimplePrice, coins, currencies)

	return mcp.NewGetPromptResult(
		"Check current cryptocurrency prices",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}

func handleTrendingPrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	text := fmt.Sprintf(
		"Use the %s tool to fetch the coins currently trending on CoinGecko and summarize the top results with their rank and symbol.",
		operations.OpTrending)

	return mcp.NewGetPromptResult(
		"Summarize trending cryptocurrencies",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}

func handleTokenLookupPrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	chain := request.Params.Arguments["chain"]
	address := request.Params.Arguments["address"]

	text := fmt.Sprintf(
		"Use the %s tool with chainId=%q and tokenAddress=%q and report the token's name, symbol and current market data.",
		operations.OpTokenByAddress, chain, address)

	return mcp.NewGetPromptResult(
		"Look up a token by contract address",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}
