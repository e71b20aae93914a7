package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/afea/einvoice/gateway"
)

// Name identifies a provider.
type Name string

const (
	// NES is the NES e-document platform.
	NES Name = "nes"
	// Nilvera is the Nilvera e-document platform.
	Nilvera Name = "nilvera"
)

// String returns the provider name.
func (n Name) String() string { return string(n) }

var defaultBaseURLs = map[Name]string{
	NES:     "https://apitest.nes.com.tr",
	Nilvera: "https://apitest.nilvera.com",
}

// Names returns all known providers.
func Names() []Name {
	return []Name{NES, Nilvera}
}

// Parse converts a user-supplied name, ignoring case and surrounding space.
func Parse(s string) (Name, error) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := defaultBaseURLs[n]; !ok {
		return "", fmt.Errorf("unknown provider %q (want one of nes, nilvera)", s)
	}
	return n, nil
}

// DefaultBaseURL returns the test environment base URL of a provider.
func DefaultBaseURL(n Name) string {
	return defaultBaseURLs[n]
}

// Client is the behavior shared by all provider clients.
type Client interface {
	// Name returns the provider name.
	Name() Name
	// Gateway returns the underlying transport.
	Gateway() *gateway.Gateway
	// SetToken rotates the bearer token.
	SetToken(token string)
	// Token returns the current bearer token.
	Token() string
	// CreditReport returns the provider's credit information.
	CreditReport(ctx context.Context) (any, error)
}

// Factory creates a provider client from a gateway configuration.
type Factory func(cfg gateway.Config, opts ...gateway.Option) (Client, error)

// Prepare fills provider defaults into a gateway configuration.
func Prepare(n Name, cfg gateway.Config) gateway.Config {
	if cfg.Name == "" {
		cfg.Name = n.String()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL(n)
	}
	return cfg
}
