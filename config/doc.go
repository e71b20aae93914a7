// Package config loads the e-invoice client configuration.
//
// Values are layered in this order, later sources winning:
//
//  1. defaults (provider test base URLs, 30s timeout, info logging)
//  2. a YAML file (explicit, or einvoice.yml / config.yml discovered nearby)
//  3. a .env file (explicit, or .env.einvoice / .env discovered nearby)
//  4. EINVOICE_* environment variables, e.g. EINVOICE_NES_TOKEN or
//     EINVOICE_NILVERA_BASE_URL
//
// Example config.yml:
//
//	environment: production
//	logging:
//	  level: debug
//	  format: json
//	nes:
//	  base_url: https://api.nes.com.tr
//	  timeout: 45s
//
// Tokens are best kept out of the YAML file and supplied through the
// environment or a .env file.
package config
