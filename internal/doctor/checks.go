package doctor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/swapcell/swapcell/internal/auth"
	"github.com/swapcell/swapcell/internal/config"
	"github.com/swapcell/swapcell/internal/refdata"
)

// Deps are the collaborators the checks exercise.
type Deps struct {
	Cfg       *config.Config
	Paths     *config.Paths
	Refdata   *refdata.Client
	Auth      auth.Gateway
	HTTP      *http.Client
	APIBase   string
}

// registerChecks registers all checks across four categories.
func (c *Checker) registerChecks() {
	c.add("config-file", "config", c.checkConfigFile)
	c.add("config-valid", "config", c.checkConfigValid)
	c.add("active-env", "config", c.checkActiveEnv)

	c.add("api-reachable", "network", c.checkAPIReachable)
	c.add("brand-catalog", "network", c.checkBrandCatalog)

	c.add("session", "auth", c.checkSession)

	c.add("drafts-dir", "storage", c.checkDraftsDir)
	c.add("log-file", "storage", c.checkLogFile)
}

// ---------------------------------------------------------------------------
// Config checks
// ---------------------------------------------------------------------------

func (c *Checker) checkConfigFile(_ context.Context) CheckResult {
	if _, err := os.Stat(c.deps.Paths.ConfigFile); err != nil {
		return CheckResult{Status: StatusWarn, Message: "no config file; built-in defaults in use"}
	}
	return CheckResult{Status: StatusPass, Message: c.deps.Paths.ConfigFile}
}

func (c *Checker) checkConfigValid(_ context.Context) CheckResult {
	errs := config.Validate(c.deps.Cfg)
	if len(errs) == 0 {
		return CheckResult{Status: StatusPass, Message: "no issues"}
	}
	return CheckResult{
		Status:  StatusFail,
		Message: fmt.Sprintf("%d issue(s), first: %s", len(errs), errs[0].Error()),
	}
}

func (c *Checker) checkActiveEnv(_ context.Context) CheckResult {
	env := c.deps.Cfg.ActiveEnvironment()
	if env == nil {
		return CheckResult{Status: StatusFail, Message: fmt.Sprintf("activeEnv %q not defined", c.deps.Cfg.ActiveEnv)}
	}
	return CheckResult{Status: StatusPass, Message: fmt.Sprintf("%s (%s)", c.deps.Cfg.ActiveEnv, env.APIBaseURL)}
}

// ---------------------------------------------------------------------------
// Network checks
// ---------------------------------------------------------------------------

func (c *Checker) checkAPIReachable(ctx context.Context) CheckResult {
	reqCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.deps.APIBase+"/health", nil)
	if err != nil {
		return CheckResult{Status: StatusFail, Message: err.Error()}
	}
	resp, err := c.deps.HTTP.Do(req)
	if err != nil {
		return CheckResult{Status: StatusFail, Message: "unreachable: " + err.Error()}
	}
	resp.Body.Close()
	return CheckResult{Status: StatusPass, Message: fmt.Sprintf("status %d", resp.StatusCode)}
}

func (c *Checker) checkBrandCatalog(ctx context.Context) CheckResult {
	reqCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	brands, err := c.deps.Refdata.Brands(reqCtx)
	if err != nil {
		return CheckResult{Status: StatusWarn, Message: "brand fetch failed; wizard falls back to built-in list"}
	}
	return CheckResult{Status: StatusPass, Message: fmt.Sprintf("%d brands", len(brands))}
}

// ---------------------------------------------------------------------------
// Auth checks
// ---------------------------------------------------------------------------

func (c *Checker) checkSession(ctx context.Context) CheckResult {
	user, err := c.deps.Auth.CurrentUser(ctx)
	if errors.Is(err, auth.ErrNotAuthenticated) {
		return CheckResult{Status: StatusWarn, Message: "not signed in; submissions will be blocked"}
	}
	if err != nil {
		return CheckResult{Status: StatusFail, Message: err.Error()}
	}
	return CheckResult{Status: StatusPass, Message: user.Email}
}

// ---------------------------------------------------------------------------
// Storage checks
// ---------------------------------------------------------------------------

func (c *Checker) checkDraftsDir(_ context.Context) CheckResult {
	dir := c.deps.Paths.DraftsDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return CheckResult{Status: StatusFail, Message: err.Error()}
	}
	probe := filepath.Join(dir, ".doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return CheckResult{Status: StatusFail, Message: "not writable: " + err.Error()}
	}
	os.Remove(probe)
	return CheckResult{Status: StatusPass, Message: dir}
}

func (c *Checker) checkLogFile(_ context.Context) CheckResult {
	f, err := os.OpenFile(c.deps.Paths.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return CheckResult{Status: StatusWarn, Message: "log file not writable: " + err.Error()}
	}
	f.Close()
	return CheckResult{Status: StatusPass, Message: c.deps.Paths.LogFile}
}
