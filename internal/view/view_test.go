package view

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ziadkadry99/docview/internal/toggler"
)

const treePage = `<html><body><table class="directory">
<tr id="row_0_"><td><span class="arrow">►</span><span class="iconfclosed"></span>cmd</td></tr>
<tr id="row_0_0_" style="display:none;"><td>root.go</td></tr>
<tr id="row_1_"><td><span class="arrow">►</span><span class="iconfclosed"></span>internal</td></tr>
<tr id="row_1_0_" style="display:none;"><td><span class="arrow">►</span><span class="iconfclosed"></span>config</td></tr>
<tr id="row_1_0_0_" style="display:none;"><td>config.go</td></tr>
</table></body></html>`

func writeSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "files.html"), []byte(treePage), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestCommandValidate(t *testing.T) {
	tests := []struct {
		cmd  Command
		want error
	}{
		{Command{Op: OpToggleFolder, Target: "0"}, nil},
		{Command{Op: OpToggleFolder}, ErrMissingTarget},
		{Command{Op: OpSetLevel, Level: 2}, nil},
		{Command{Op: OpSetLevel}, ErrInvalidLevel},
		{Command{Op: OpFoldAll}, nil},
		{Command{Op: "explode"}, ErrUnknownOp},
	}
	for _, tt := range tests {
		err := tt.cmd.Validate()
		if tt.want == nil && err != nil {
			t.Errorf("%+v: unexpected error %v", tt.cmd, err)
		}
		if tt.want != nil && !errors.Is(err, tt.want) {
			t.Errorf("%+v: got %v, want %v", tt.cmd, err, tt.want)
		}
	}
}

func TestVariantFor(t *testing.T) {
	tests := map[string]toggler.Variant{
		"index.html":                   toggler.VariantRoot,
		"files.html":                   toggler.VariantRoot,
		"source/internal-config/a.html": toggler.VariantNested,
	}
	for p, want := range tests {
		if got := VariantFor(p); got != want {
			t.Errorf("VariantFor(%q) = %v, want %v", p, got, want)
		}
	}
}

func TestCleanPath(t *testing.T) {
	if got, err := CleanPath("/"); err != nil || got != "index.html" {
		t.Errorf("CleanPath(/) = %q, %v", got, err)
	}
	if got, err := CleanPath("/../../etc/files.html"); err != nil || got != "etc/files.html" {
		t.Errorf("CleanPath traversal = %q, %v", got, err)
	}
	if _, err := CleanPath("style.css"); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("CleanPath(style.css) error = %v", err)
	}
}

func TestRegistrySessionsAreIndependent(t *testing.T) {
	reg := NewRegistry(writeSite(t), 0)

	res, err := reg.Execute("alice", "files.html", Command{Op: OpToggleFolder, Target: "1"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.Open {
		t.Error("row 1 should be expanded for alice")
	}

	snap, err := reg.Snapshot("bob", "files.html")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	for _, r := range snap.Rows {
		if r.ID == "row_1_0_" && r.Visible {
			t.Error("bob must not see alice's expansion")
		}
	}

	var buf bytes.Buffer
	if err := reg.Render("alice", "files.html", &buf, true); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), `<tr id="row_1_0_" class="even"><td><span class="arrow">►</span>`) {
		t.Errorf("alice's page not projected:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "<html>") {
		t.Error("body-only render should not include <html>")
	}
}

func TestRegistryDefaultLevel(t *testing.T) {
	reg := NewRegistry(writeSite(t), 2)

	snap, err := reg.Snapshot("s", "/files.html")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	want := map[string]bool{
		"row_0_":     true,
		"row_0_0_":   true,
		"row_1_":     true,
		"row_1_0_":   true,
		"row_1_0_0_": false,
	}
	for _, r := range snap.Rows {
		if r.Visible != want[r.ID] {
			t.Errorf("%s visible = %v, want %v", r.ID, r.Visible, want[r.ID])
		}
	}
}

func TestRegistryErrors(t *testing.T) {
	reg := NewRegistry(writeSite(t), 0)

	if _, err := reg.Snapshot("s", "missing.html"); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("missing page error = %v", err)
	}
	if _, err := reg.Execute("s", "files.html", Command{Op: OpSetLevel}); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("invalid level error = %v", err)
	}
	// Unknown targets are silently ignored.
	res, err := reg.Execute("s", "files.html", Command{Op: OpToggleFolder, Target: "42"})
	if err != nil || res.Open {
		t.Errorf("unknown row = %+v, %v", res, err)
	}
}

func TestRegistryInvalidateAndPrune(t *testing.T) {
	dir := writeSite(t)
	reg := NewRegistry(dir, 0)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }

	if _, err := reg.Execute("s", "files.html", Command{Op: OpToggleFolder, Target: "0"}); err != nil {
		t.Fatal(err)
	}

	updated := strings.Replace(treePage, "<td>root.go</td>", "<td>main.go</td>", 1)
	if err := os.WriteFile(filepath.Join(dir, "files.html"), []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}
	reg.Invalidate("files.html")

	var buf bytes.Buffer
	if err := reg.Render("s", "files.html", &buf, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "main.go") {
		t.Error("invalidated page should be reloaded from disk")
	}
	if !strings.Contains(buf.String(), `<tr id="row_0_0_" style="display:none;">`) {
		t.Error("reloaded view should start from the rendered state")
	}

	now = now.Add(time.Hour)
	if got := reg.Prune(30 * time.Minute); got != 1 {
		t.Errorf("Prune removed %d sessions, want 1", got)
	}
}

func TestRegistryFailedLookupsKeepNoSession(t *testing.T) {
	reg := NewRegistry(writeSite(t), 0)

	if _, err := reg.Snapshot("ghost", "missing.html"); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("missing page error = %v", err)
	}
	if _, err := reg.Snapshot("ghost", "style.css"); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("non-page error = %v", err)
	}
	if got := reg.Sessions(); got != 0 {
		t.Errorf("sessions after failed lookups = %d, want 0", got)
	}

	if _, err := reg.Snapshot("alice", "files.html"); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Snapshot("alice", "missing.html"); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("missing page error = %v", err)
	}
	if got := reg.Sessions(); got != 1 {
		t.Errorf("sessions = %d, want 1", got)
	}
}

func TestRegistryFailedLookupDoesNotRefreshSession(t *testing.T) {
	reg := NewRegistry(writeSite(t), 0)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }

	if _, err := reg.Snapshot("s", "files.html"); err != nil {
		t.Fatal(err)
	}
	now = now.Add(time.Hour)
	if _, err := reg.Snapshot("s", "missing.html"); err == nil {
		t.Fatal("expected an error for a missing page")
	}
	if got := reg.Prune(30 * time.Minute); got != 1 {
		t.Errorf("Prune removed %d sessions, want 1", got)
	}
}
