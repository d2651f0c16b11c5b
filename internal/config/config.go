package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Config is the full config.json schema for the swapcell CLI.
type Config struct {
	Name      string                 `json:"name" mapstructure:"name"`
	Version   string                 `json:"version" mapstructure:"version"`
	ActiveEnv string                 `json:"activeEnv" mapstructure:"activeEnv"`
	Envs      map[string]Environment `json:"environments" mapstructure:"environments"`
	Auth      AuthConfig             `json:"auth" mapstructure:"auth"`
	Drafts    DraftsConfig           `json:"drafts" mapstructure:"drafts"`
	Log       LogConfig              `json:"log" mapstructure:"log"`
}

// Environment selects which marketplace backend the client talks to.
type Environment struct {
	APIBaseURL    string `json:"apiBaseUrl" mapstructure:"apiBaseUrl"`
	OAuthClientID string `json:"oauthClientId" mapstructure:"oauthClientId"`
	DisplayName   string `json:"displayName" mapstructure:"displayName"`
}

// AuthConfig picks the auth gateway implementation wired at startup.
type AuthConfig struct {
	// Mode is "live" or "mock". The mock gateway accepts the fixed
	// development OTP and never touches the network.
	Mode string `json:"mode" mapstructure:"mode"`
}

// DraftsConfig controls where wizard drafts are stored.
type DraftsConfig struct {
	Dir string `json:"dir" mapstructure:"dir"` // empty = <config dir>/drafts
}

// LogConfig controls the zerolog output.
type LogConfig struct {
	Level string `json:"level" mapstructure:"level"` // debug, info, warn, error
	File  string `json:"file" mapstructure:"file"`   // empty = <config dir>/swapcell.log
}

// Default returns the baked-in configuration used when no config file
// exists yet: a local environment pointing at the mock API server.
func Default() *Config {
	return &Config{
		Name:      "swapcell",
		Version:   "1.0.0",
		ActiveEnv: "local",
		Envs: map[string]Environment{
			"local": {
				APIBaseURL:  "http://localhost:8817",
				DisplayName: "Local mock API",
			},
			"staging": {
				APIBaseURL:  "https://staging-api.swapcell.example",
				DisplayName: "Staging",
			},
			"production": {
				APIBaseURL:  "https://api.swapcell.example",
				DisplayName: "Production",
			},
		},
		Auth: AuthConfig{Mode: "mock"},
		Log:  LogConfig{Level: "info"},
	}
}

// singleton holds the loaded config and its file path.
var (
	globalCfg  *Config
	globalPath string
	mu         sync.RWMutex
)

// Load reads the config file at path, falling back to Default() when
// the file does not exist. The result is cached for Get().
func Load(path string) (*Config, error) {
	var cfg *Config

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		cfg = Default()
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	default:
		cfg = &Config{}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	mu.Lock()
	globalCfg = cfg
	globalPath = path
	mu.Unlock()

	return cfg, nil
}

// Get returns the cached config. It panics if Load has not been called.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()

	if globalCfg == nil {
		panic("config.Get() called before config.Load()")
	}
	return globalCfg
}

// Path returns the config file path set during Load.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return globalPath
}

// Save writes the config back to the path it was loaded from.
func Save(cfg *Config) error {
	mu.RLock()
	path := globalPath
	mu.RUnlock()

	if path == "" {
		return fmt.Errorf("cannot save: config path not set (call Load first)")
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	mu.Lock()
	globalCfg = cfg
	mu.Unlock()

	return nil
}

// ActiveEnvironment returns the environment named by activeEnv. Returns
// nil if the name is not present in the environments map.
func (c *Config) ActiveEnvironment() *Environment {
	if env, ok := c.Envs[c.ActiveEnv]; ok {
		return &env
	}
	return nil
}

// APIBaseURL resolves the active environment's base URL, honouring the
// SWAPCELL_API_URL override.
func (c *Config) APIBaseURL() string {
	if v := os.Getenv("SWAPCELL_API_URL"); v != "" {
		return v
	}
	if env := c.ActiveEnvironment(); env != nil {
		return env.APIBaseURL
	}
	return ""
}
