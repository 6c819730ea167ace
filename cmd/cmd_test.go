package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/ziadkadry99/docview/internal/config"
	"github.com/ziadkadry99/docview/internal/site"
	"github.com/ziadkadry99/docview/internal/toggler"
)

func generateSite(t *testing.T) string {
	t.Helper()
	src := t.TempDir()
	files := map[string]string{
		"main.go":                   "package main\n\nfunc main() {\n}\n",
		"internal/config/config.go": "package config\n\ntype Config struct {\n\tPort int\n}\n",
	}
	for rel, content := range files {
		p := filepath.Join(src, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := config.DefaultConfig()
	cfg.SourceDir = src
	cfg.SiteDir = filepath.Join(t.TempDir(), "site")
	if _, err := site.NewGenerator(cfg, nil).Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return cfg.SiteDir
}

// resetFlags restores flag defaults, since rootCmd is shared between tests.
func resetFlags(t *testing.T, c *cobra.Command) {
	t.Helper()
	c.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else if err := f.Value.Set(f.DefValue); err != nil {
			t.Fatalf("resetting --%s: %v", f.Name, err)
		}
		f.Changed = false
	})
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetOut(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "docview dev" {
		t.Errorf("version output = %q", got)
	}
}

func TestRenderCommandState(t *testing.T) {
	siteDir := generateSite(t)
	resetFlags(t, renderCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"render", "files.html", "--site", siteDir, "--level", "3", "--state"})
	defer rootCmd.SetOut(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	var snap toggler.Snapshot
	if err := json.Unmarshal(out.Bytes(), &snap); err != nil {
		t.Fatalf("decoding state: %v\n%s", err, out.String())
	}
	if len(snap.Rows) == 0 {
		t.Fatal("expected directory rows in state")
	}
	for _, r := range snap.Rows {
		if !r.Visible {
			t.Errorf("row %s should be visible at level 3", r.ID)
		}
	}
}

func TestRenderCommandFileMode(t *testing.T) {
	page := filepath.Join(t.TempDir(), "page.html")
	src := `<html><body><div class="fragment">
<div class="line" id="l00001"><span class="lineno">    1</span>package main</div>
<div class="foldopen" id="foldopen00001" data-start="{" data-end="}">
<div class="line glow" id="l00002"><span class="lineno">    2</span>func main() {</div>
<div class="line" id="l00003"><span class="lineno">    3</span>	run()</div>
<div class="line" id="l00004"><span class="lineno">    4</span>}</div>
</div>
</div></body></html>`
	if err := os.WriteFile(page, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "out.html")
	resetFlags(t, renderCmd)

	rootCmd.SetArgs([]string{"render", page, "--file", "--theme", "nested", "--region", "00001", "--out", out})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	html := string(got)
	if !strings.Contains(html, `<div class="foldopen" id="foldopen00001" data-start="{" data-end="}" style="display:none;">`) {
		t.Errorf("region should be folded:\n%s", html)
	}
	if !strings.Contains(html, "../../plus.svg") {
		t.Errorf("nested theme should use ../../plus.svg:\n%s", html)
	}
}
