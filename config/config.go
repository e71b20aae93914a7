package config

import (
	"fmt"

	"github.com/afea/einvoice/gateway"
	"github.com/afea/einvoice/logger"
	"github.com/afea/einvoice/observability"
	"github.com/afea/einvoice/provider"
	"github.com/afea/einvoice/validation"
)

var environments = []string{"development", "staging", "production"}

// Config is the complete client configuration.
type Config struct {
	Environment string               `yaml:"environment" mapstructure:"environment"`
	Logging     logger.Config        `yaml:"logging" mapstructure:"logging"`
	Telemetry   observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
	NES         gateway.Config       `yaml:"nes" mapstructure:"nes"`
	Nilvera     gateway.Config       `yaml:"nilvera" mapstructure:"nilvera"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	c.Logging.ApplyDefaults()

	if c.Telemetry.Environment == "" {
		c.Telemetry.Environment = c.Environment
	}
	c.Telemetry.ApplyDefaults()

	c.NES = provider.Prepare(provider.NES, c.NES)
	c.NES.ApplyDefaults()
	c.Nilvera = provider.Prepare(provider.Nilvera, c.Nilvera)
	c.Nilvera.ApplyDefaults()
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	v := validation.New()
	v.OneOf("environment", c.Environment, environments)
	v.Merge("logging", c.Logging.Validate())
	v.Merge("telemetry", c.Telemetry.Validate())
	v.Merge("nes", validation.NewWithPrefix("nes.").Merge("gateway", c.NES.Validate()).Err())
	v.Merge("nilvera", validation.NewWithPrefix("nilvera.").Merge("gateway", c.Nilvera.Validate()).Err())
	return v.Err()
}

// Gateway returns the gateway configuration of a provider.
func (c *Config) Gateway(name provider.Name) (gateway.Config, error) {
	switch name {
	case provider.NES:
		return c.NES, nil
	case provider.Nilvera:
		return c.Nilvera, nil
	default:
		return gateway.Config{}, fmt.Errorf("no configuration for provider %q", name)
	}
}
