package walker

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func relPaths(files []File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.RelPath
	}
	return out
}

func TestWalk(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.go":                   "package main\n",
		"README.md":                 "# demo\n",
		"internal/config/config.go": "package config\n",
		"vendor/x/x.go":             "package x\n",
		"node_modules/a/index.js":   "module.exports = 1\n",
		"bin/tool":                  "\x00\x01\x02",
		"build/out.txt":             "generated\n",
		".gitignore":                "build/\n*.log\n",
		"debug.log":                 "noise\n",
	})

	files, err := Walk(Options{
		Root:    root,
		Exclude: []string{"vendor/**", "node_modules/**"},
	})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	got := relPaths(files)
	want := []string{".gitignore", "README.md", "internal/config/config.go", "main.go"}
	if len(got) != len(want) {
		t.Fatalf("Walk() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("file %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWalkInclude(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.go":     "package a\n",
		"b.py":     "print(1)\n",
		"pkg/c.go": "package pkg\n",
	})
	files, err := Walk(Options{Root: root, Include: []string{"**/*.go"}})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	got := relPaths(files)
	if len(got) != 2 || got[0] != "a.go" || got[1] != "pkg/c.go" {
		t.Errorf("Walk() = %v", got)
	}
}

func TestWalkMaxFileSize(t *testing.T) {
	root := writeTree(t, map[string]string{
		"small.txt": "ok",
		"large.txt": "0123456789",
	})
	files, err := Walk(Options{Root: root, MaxFileSize: 5})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if len(files) != 1 || files[0].RelPath != "small.txt" {
		t.Errorf("Walk() = %v", relPaths(files))
	}
}

func TestWalkNotADirectory(t *testing.T) {
	root := writeTree(t, map[string]string{"f.txt": "x"})
	if _, err := Walk(Options{Root: filepath.Join(root, "f.txt")}); err == nil {
		t.Error("expected error for file root")
	}
	if _, err := Walk(Options{Root: filepath.Join(root, "missing")}); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestFileDir(t *testing.T) {
	tests := map[string]string{
		"main.go":                   "",
		"internal/config/config.go": "internal/config",
	}
	for rel, want := range tests {
		if got := (File{RelPath: rel}).Dir(); got != want {
			t.Errorf("Dir(%q) = %q, want %q", rel, got, want)
		}
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := map[string]string{
		"main.go":    "Go",
		"x/app.py":   "Python",
		"unknown.zz": "plaintext",
	}
	for name, want := range tests {
		if got := DetectLanguage(name); got != want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		rel      string
		patterns []string
		want     bool
	}{
		{"a/b/c.go", []string{"**/*.go"}, true},
		{"c.go", []string{"**/*.go"}, true},
		{"a/yarn.lock", []string{"*.lock"}, true},
		{"a/b.txt", []string{"*.go"}, false},
		{"a/b.txt", nil, false},
	}
	for _, tt := range tests {
		if got := Match(tt.rel, tt.patterns); got != tt.want {
			t.Errorf("Match(%q, %v) = %v, want %v", tt.rel, tt.patterns, got, tt.want)
		}
	}
}
