// Package nes is the client of the NES e-document platform.
package nes

import (
	"context"

	"github.com/afea/einvoice/gateway"
	"github.com/afea/einvoice/provider"
)

// Client talks to NES through one gateway.
type Client struct {
	gw *gateway.Gateway
}

// New creates a NES client. An empty BaseURL defaults to the NES test
// environment.
func New(cfg gateway.Config, opts ...gateway.Option) (*Client, error) {
	gw, err := gateway.New(provider.Prepare(provider.NES, cfg), opts...)
	if err != nil {
		return nil, err
	}
	return &Client{gw: gw}, nil
}

// Factory creates a NES client for a provider.Registry.
func Factory(cfg gateway.Config, opts ...gateway.Option) (provider.Client, error) {
	return New(cfg, opts...)
}

// Name returns provider.NES.
func (c *Client) Name() provider.Name { return provider.NES }

// Gateway returns the underlying transport.
func (c *Client) Gateway() *gateway.Gateway { return c.gw }

// SetToken rotates the bearer token.
func (c *Client) SetToken(token string) { c.gw.SetToken(token) }

// Token returns the current bearer token.
func (c *Client) Token() string { return c.gw.Token() }

// General groups account-level endpoints.
func (c *Client) General() *GeneralClient {
	return &GeneralClient{gw: c.gw}
}

// CreditReport returns the credit summary.
func (c *Client) CreditReport(ctx context.Context) (any, error) {
	summary, err := c.General().Credit().Get(ctx)
	if err != nil {
		return nil, err
	}
	return summary, nil
}
