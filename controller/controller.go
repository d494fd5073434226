// Package controller is the internal facade surface: one method per
// operation with the same signature as the underlying handler, no added
// behavior. Both the HTTP and MCP surfaces call through it so every
// surface shares a single entry point.
package controller

import (
	"context"

	"github.com/gecko-tools/market-gateway/operations"
)

type Controller struct {
	handlers *operations.Handlers
}

// New creates the facade around the shared operation handlers
func New(handlers *operations.Handlers) *Controller {
	return &Controller{handlers: handlers}
}

// SimplePrice proxies to the price lookup handler
func (c *Controller) SimplePrice(ctx context.Context, params operations.PriceParams) (*operations.Envelope, error) {
	return c.handlers.SimplePrice(ctx, params)
}

// Trending proxies to the trending coins handler
func (c *Controller) Trending(ctx context.Context) (*operations.Envelope, error) {
	return c.handlers.Trending(ctx)
}

// NewCoins proxies to the new listings handler
func (c *Controller) NewCoins(ctx context.Context) (*operations.Envelope, error) {
	return c.handlers.NewCoins(ctx)
}

// TokenByAddress proxies to the token lookup handler
func (c *Controller) TokenByAddress(ctx context.Context, params operations.TokenParams) (*operations.Envelope, error) {
	return c.handlers.TokenByAddress(ctx, params)
}
