// Package config provides configuration management for pricebook.
//
// Configuration is read from a YAML file, completed with defaults,
// overridden from the environment and validated:
//
//	cfg, err := config.LoadConfigWithEnvOverrides("pricebook.yaml")
//
// A missing file is not an error for LoadOrDefault, which is what the CLI
// uses so that `pricebook serve` works out of the box against ./data.
//
// # Environment Variable Overrides
//
// Variables follow PRICEBOOK_SECTION_FIELD, for example:
//
//   - PRICEBOOK_SERVER_LISTEN_ADDRESS overrides server.listen_address
//   - PRICEBOOK_CATALOGUE_DIR overrides catalogue.dir
//   - PRICEBOOK_CURRENCY_DEFAULT overrides currency.default
//   - PRICEBOOK_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Precedence
//
//  1. Default values (defaults.go)
//  2. Values from the YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Currency Rates
//
// Rates are an ordered list; the order is the order of the currency
// selector:
//
//	currency:
//	  reference: USD
//	  default: USD
//	  rates:
//	    - code: USD
//	      per_reference: 1
//	    - code: CNY
//	      per_reference: 7.2
package config
