// Package nilvera is the client of the Nilvera e-document platform.
package nilvera

import (
	"context"

	"github.com/afea/einvoice/gateway"
	"github.com/afea/einvoice/provider"
)

// Client talks to Nilvera through one gateway.
type Client struct {
	gw *gateway.Gateway
}

// New creates a Nilvera client. An empty BaseURL defaults to the Nilvera
// test environment.
func New(cfg gateway.Config, opts ...gateway.Option) (*Client, error) {
	gw, err := gateway.New(provider.Prepare(provider.Nilvera, cfg), opts...)
	if err != nil {
		return nil, err
	}
	return &Client{gw: gw}, nil
}

// Factory creates a Nilvera client for a provider.Registry.
func Factory(cfg gateway.Config, opts ...gateway.Option) (provider.Client, error) {
	return New(cfg, opts...)
}

// Name returns provider.Nilvera.
func (c *Client) Name() provider.Name { return provider.Nilvera }

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

// CreditReport returns the credit list.
func (c *Client) CreditReport(ctx context.Context) (any, error) {
	credits, err := c.General().Credit().Get(ctx)
	if err != nil {
		return nil, err
	}
	return credits, nil
}
