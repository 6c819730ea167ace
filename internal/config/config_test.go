package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ziadkadry99/docview/internal/toggler"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.SiteDir != "docview-site" {
		t.Errorf("expected default site_dir %q, got %q", "docview-site", cfg.SiteDir)
	}
	if cfg.ExpansionLevel != 1 {
		t.Errorf("expected default expansion_level 1, got %d", cfg.ExpansionLevel)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Variant() != toggler.VariantRoot {
		t.Errorf("expected root variant, got %v", cfg.Variant())
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.docview.yml")

	original := DefaultConfig()
	original.ProjectName = "demo"
	original.SiteDir = "out"
	original.Include = []string{"**/*.go", "**/*.md"}
	original.ExpansionLevel = 3
	original.Theme = "nested"
	original.Server.Port = 9090
	original.Server.AllowAllOrigins = true

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.ProjectName != original.ProjectName {
		t.Errorf("project_name: got %q, want %q", loaded.ProjectName, original.ProjectName)
	}
	if loaded.SiteDir != original.SiteDir {
		t.Errorf("site_dir: got %q, want %q", loaded.SiteDir, original.SiteDir)
	}
	if loaded.ExpansionLevel != 3 {
		t.Errorf("expansion_level: got %d, want 3", loaded.ExpansionLevel)
	}
	if loaded.Variant() != toggler.VariantNested {
		t.Errorf("theme: got %q, want nested", loaded.Theme)
	}
	if loaded.Server.Port != 9090 || !loaded.Server.AllowAllOrigins {
		t.Errorf("server: got %+v", loaded.Server)
	}
	if len(loaded.Include) != len(original.Include) {
		t.Fatalf("include length: got %d, want %d", len(loaded.Include), len(original.Include))
	}
	for i, v := range loaded.Include {
		if v != original.Include[i] {
			t.Errorf("include[%d]: got %q, want %q", i, v, original.Include[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.SiteDir != "docview-site" {
		t.Errorf("expected defaults, got site_dir %q", cfg.SiteDir)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yml")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("DOCVIEW_SITE_DIR", "public")
	t.Setenv("DOCVIEW_SERVER__PORT", "7070")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.SiteDir != "public" {
		t.Errorf("env override failed: got %q, want %q", loaded.SiteDir, "public")
	}
	if loaded.Server.Port != 7070 {
		t.Errorf("nested env override failed: got %d, want 7070", loaded.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty source", func(c *Config) { c.SourceDir = "" }, true},
		{"empty site", func(c *Config) { c.SiteDir = "" }, true},
		{"negative level", func(c *Config) { c.ExpansionLevel = -1 }, true},
		{"bad theme", func(c *Config) { c.Theme = "dark" }, true},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, true},
		{"bad idle", func(c *Config) { c.Server.SessionIdle = "soon" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSessionIdleTimeout(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.SessionIdleTimeout(); got != 30*time.Minute {
		t.Errorf("default idle = %v", got)
	}
	cfg.Server.SessionIdle = "5m"
	if got := cfg.SessionIdleTimeout(); got != 5*time.Minute {
		t.Errorf("idle = %v, want 5m", got)
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := splitAndTrim(" a, b ,,c ")
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
