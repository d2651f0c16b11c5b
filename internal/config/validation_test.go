package config

import (
	"strings"
	"testing"
)

func hasError(errs []ValidationError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestValidateDefaultIsClean(t *testing.T) {
	if errs := Validate(Default()); len(errs) != 0 {
		t.Errorf("default config should validate, got %v", errs)
	}
}

func TestValidateCollectsEveryIssue(t *testing.T) {
	cfg := &Config{
		ActiveEnv: "missing",
		Envs: map[string]Environment{
			"local":  {APIBaseURL: ""},
			"broken": {APIBaseURL: "not a url"},
		},
		Auth: AuthConfig{Mode: "telepathy"},
		Log:  LogConfig{Level: "loud"},
	}

	errs := Validate(cfg)

	for _, field := range []string{
		"name",
		"activeEnv",
		"environments.local.apiBaseUrl",
		"environments.broken.apiBaseUrl",
		"auth.mode",
		"log.level",
	} {
		if !hasError(errs, field) {
			t.Errorf("missing validation error for %s in %v", field, errs)
		}
	}
}

func TestValidateEmptyEnvironments(t *testing.T) {
	cfg := &Config{Name: "swapcell", ActiveEnv: "local"}
	errs := Validate(cfg)
	if !hasError(errs, "environments") {
		t.Errorf("missing environments error in %v", errs)
	}
}

func TestValidationErrorString(t *testing.T) {
	ve := ValidationError{Field: "auth.mode", Message: "must be mock or live"}
	if got := ve.Error(); !strings.Contains(got, "auth.mode") || !strings.Contains(got, "must be") {
		t.Errorf("Error() = %q", got)
	}
}

func TestActiveEnvironment(t *testing.T) {
	cfg := Default()
	env := cfg.ActiveEnvironment()
	if env == nil || env.APIBaseURL == "" {
		t.Fatalf("active environment = %+v", env)
	}

	cfg.ActiveEnv = "nope"
	if cfg.ActiveEnvironment() != nil {
		t.Error("unknown activeEnv should resolve to nil")
	}
}

func TestAPIBaseURLOverride(t *testing.T) {
	cfg := Default()
	t.Setenv("SWAPCELL_API_URL", "http://override.test:9999")
	if got := cfg.APIBaseURL(); got != "http://override.test:9999" {
		t.Errorf("APIBaseURL = %q, want the env override", got)
	}
}
