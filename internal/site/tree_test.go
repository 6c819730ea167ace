package site

import "testing"

func TestBuildTree(t *testing.T) {
	tree := BuildTree([]string{
		"main.go",
		"cmd/root.go",
		"cmd/generate.go",
		"internal/config/config.go",
		"internal/config/types.go",
		"internal/view/view.go",
	})

	if len(tree.Children) != 3 {
		t.Fatalf("root children = %d, want 3", len(tree.Children))
	}
	want := []struct {
		name  string
		isDir bool
	}{{"cmd", true}, {"internal", true}, {"main.go", false}}
	for i, w := range want {
		c := tree.Children[i]
		if c.Name != w.name || c.IsDir != w.isDir {
			t.Errorf("child %d = %q (dir=%v), want %q (dir=%v)", i, c.Name, c.IsDir, w.name, w.isDir)
		}
	}

	cmd := tree.Children[0]
	if cmd.Children[0].Name != "generate.go" || cmd.Children[1].Name != "root.go" {
		t.Errorf("cmd children not sorted: %q, %q", cmd.Children[0].Name, cmd.Children[1].Name)
	}
	if cmd.Children[1].Path != "cmd/root.go" {
		t.Errorf("path = %q, want cmd/root.go", cmd.Children[1].Path)
	}
	if got := tree.Depth(); got != 3 {
		t.Errorf("Depth() = %d, want 3", got)
	}
}

func TestBuildTreeEmpty(t *testing.T) {
	tree := BuildTree(nil)
	if len(tree.Children) != 0 || tree.Depth() != 0 {
		t.Errorf("empty tree = %+v", tree)
	}
}

func TestDirectoryRows(t *testing.T) {
	rows := directoryRows(BuildTree([]string{
		"README.md",
		"cmd/root.go",
		"internal/config/config.go",
	}))

	want := []struct {
		id     string
		indent int
		link   string
	}{
		{"row_0_", 0, ""},
		{"row_0_0_", 1, "source/cmd/root.go.html"},
		{"row_1_", 0, ""},
		{"row_1_0_", 1, ""},
		{"row_1_0_0_", 2, "source/internal-config/config.go.html"},
		{"row_2_", 0, "source/_root/README.md.html"},
	}
	if len(rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(rows), len(want))
	}
	for i, w := range want {
		r := rows[i]
		if r.ID != w.id || r.Indent != w.indent || r.Link != w.link {
			t.Errorf("row %d = {%s %d %s}, want {%s %d %s}", i, r.ID, r.Indent, r.Link, w.id, w.indent, w.link)
		}
	}
}

func TestListingPath(t *testing.T) {
	tests := map[string]string{
		"main.go":                   "source/_root/main.go.html",
		"cmd/root.go":               "source/cmd/root.go.html",
		"internal/config/config.go": "source/internal-config/config.go.html",
	}
	for rel, want := range tests {
		if got := listingPath(rel); got != want {
			t.Errorf("listingPath(%q) = %q, want %q", rel, got, want)
		}
	}
}
