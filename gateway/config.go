package gateway

import (
	"fmt"
	"strings"
	"time"

	"github.com/afea/einvoice/validation"
)

const (
	defaultTimeout = 30 * time.Second
	defaultName    = "gateway"
)

// Config configures a Gateway.
type Config struct {
	// Name identifies the gateway in logs, spans and metrics (e.g. "nes").
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is prepended to all request paths. A trailing slash is stripped.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,http_url"`

	// Token is the bearer token. Empty means no Authorization header is sent.
	Token string `yaml:"token" mapstructure:"token"`

	// Timeout bounds every call. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("gateway %s: %w", c.Name, err)
	}
	return nil
}
