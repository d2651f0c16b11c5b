package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError describes a single config validation failure.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface for a single validation error.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// Validate checks the Config for completeness and consistency. It
// returns every discovered issue rather than stopping at the first one.
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	if cfg.Name == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "required field is empty"})
	}
	if cfg.ActiveEnv == "" {
		errs = append(errs, ValidationError{Field: "activeEnv", Message: "required field is empty"})
	}
	if len(cfg.Envs) == 0 {
		errs = append(errs, ValidationError{Field: "environments", Message: "at least one environment is required"})
	}

	if cfg.ActiveEnv != "" {
		if _, ok := cfg.Envs[cfg.ActiveEnv]; !ok {
			errs = append(errs, ValidationError{
				Field:   "activeEnv",
				Message: fmt.Sprintf("%q is not defined in environments", cfg.ActiveEnv),
			})
		}
	}

	for name, env := range cfg.Envs {
		field := "environments." + name
		if env.APIBaseURL == "" {
			errs = append(errs, ValidationError{Field: field + ".apiBaseUrl", Message: "required field is empty"})
			continue
		}
		u, err := url.Parse(env.APIBaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".apiBaseUrl",
				Message: fmt.Sprintf("%q is not a valid http(s) URL", env.APIBaseURL),
			})
		}
	}

	switch cfg.Auth.Mode {
	case "", "mock", "live":
	default:
		errs = append(errs, ValidationError{
			Field:   "auth.mode",
			Message: fmt.Sprintf("must be mock or live, got %q", cfg.Auth.Mode),
		})
	}

	switch strings.ToLower(cfg.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("unknown level %q", cfg.Log.Level),
		})
	}

	return errs
}
