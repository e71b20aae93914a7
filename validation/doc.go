// Package validation validates configuration structs before they are used
// to build gateways and provider clients.
//
// It supports struct tag validation (using the validator library) and
// programmatic validation with error collection.
//
// # Struct Tag Validation
//
//	type Config struct {
//	    BaseURL string        `mapstructure:"base_url" validate:"required,url"`
//	    Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.OneOf("environment", env, []string{"development", "production"})
//	err := v.Err()
package validation
