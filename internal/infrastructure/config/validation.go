package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate validates the configuration using struct tags and custom rules.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	return validateCustomRules(cfg)
}

func validateCustomRules(cfg *Config) error {
	if cfg.Apps.IncludeAll != nil && *cfg.Apps.IncludeAll && len(cfg.Apps.Include) > 0 {
		return fmt.Errorf("apps: include_all and include are mutually exclusive")
	}
	if cfg.RateLimit.Burst < cfg.RateLimit.RequestsPerSecond {
		return fmt.Errorf("rate_limit: burst (%d) must be at least requests_per_second (%d)",
			cfg.RateLimit.Burst, cfg.RateLimit.RequestsPerSecond)
	}
	return nil
}

// formatValidationError converts validator errors into user-friendly messages.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		e := validationErrs[0]
		return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
			e.Namespace(), e.Tag(), e.Value())
	}
	return err
}
