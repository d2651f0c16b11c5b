package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths holds every resolved filesystem path the CLI uses.
type Paths struct {
	ConfigDir  string // ~/.config/swapcell (or $SWAPCELL_HOME)
	ConfigFile string // <ConfigDir>/config.json
	TokenFile  string // <ConfigDir>/session-token
	DraftsDir  string // <ConfigDir>/drafts unless overridden in config
	LogFile    string // <ConfigDir>/swapcell.log unless overridden
}

// NewPaths resolves all paths, applying any overrides from the loaded
// config. It may be called before Load, in which case only defaults
// apply.
func NewPaths() (*Paths, error) {
	dir := os.Getenv("SWAPCELL_HOME")
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolving user config dir: %w", err)
		}
		dir = filepath.Join(base, "swapcell")
	}

	p := &Paths{
		ConfigDir:  dir,
		ConfigFile: filepath.Join(dir, "config.json"),
		TokenFile:  filepath.Join(dir, "session-token"),
		DraftsDir:  filepath.Join(dir, "drafts"),
		LogFile:    filepath.Join(dir, "swapcell.log"),
	}

	mu.RLock()
	cfg := globalCfg
	mu.RUnlock()

	if cfg != nil {
		if cfg.Drafts.Dir != "" {
			p.DraftsDir = cfg.Drafts.Dir
		}
		if cfg.Log.File != "" {
			p.LogFile = cfg.Log.File
		}
	}

	return p, nil
}

// EnsureDirectories creates the config and drafts directories if they
// do not already exist.
func EnsureDirectories(p *Paths) error {
	for _, d := range []string{p.ConfigDir, p.DraftsDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}
	return nil
}
