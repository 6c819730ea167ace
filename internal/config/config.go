package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/docview/internal/toggler"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (DOCVIEW_*). Nested keys use a double
// underscore: DOCVIEW_SERVER__PORT -> server.port.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider("DOCVIEW_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "DOCVIEW_"))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.SourceDir == "" {
		return fmt.Errorf("source_dir is required")
	}
	if c.SiteDir == "" {
		return fmt.Errorf("site_dir is required")
	}
	if c.ExpansionLevel < 0 {
		return fmt.Errorf("expansion_level must be non-negative")
	}
	if _, err := toggler.ParseVariant(c.Theme); err != nil {
		return err
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Server.SessionIdle != "" {
		if _, err := time.ParseDuration(c.Server.SessionIdle); err != nil {
			return fmt.Errorf("invalid server.session_idle %q: %w", c.Server.SessionIdle, err)
		}
	}
	return nil
}

// Variant returns the configured theme variant, falling back to root.
func (c *Config) Variant() toggler.Variant {
	v, _ := toggler.ParseVariant(c.Theme)
	return v
}

// SessionIdleTimeout returns how long an unused server session is kept.
func (c *Config) SessionIdleTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.SessionIdle)
	if err != nil || d <= 0 {
		return 30 * time.Minute
	}
	return d
}

// Title returns the project name, or a name derived from the source dir.
func (c *Config) Title() string {
	if c.ProjectName != "" {
		return c.ProjectName
	}
	return projectNameFrom(c.SourceDir)
}
