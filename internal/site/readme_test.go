package site

import (
	"strings"
	"testing"

	"github.com/ziadkadry99/docview/internal/markup"
	"github.com/ziadkadry99/docview/internal/toggler"
)

const readme = `# Demo

Intro text.

## Install

Run the installer.

## Usage

Call it.
`

func TestRenderReadmeSections(t *testing.T) {
	out, err := renderReadme(newMarkdown(), []byte(readme))
	if err != nil {
		t.Fatalf("renderReadme: %v", err)
	}

	for _, want := range []string{
		`id="install" class="dynheader opened" data-cmd="toggle_section" data-target="install"`,
		`<img id="install-trigger" src="open.png" alt="+"/>`,
		`<div id="install-summary" class="dynsummary" style="display:none;">Run the installer.</div>`,
		`<div id="usage-content" class="dyncontent">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	// The intro stays outside any section.
	if strings.Index(out, "Intro text.") > strings.Index(out, "install-content") {
		t.Error("intro paragraph was moved into a section")
	}
}

func TestReadmeSectionsToggle(t *testing.T) {
	out, err := renderReadme(newMarkdown(), []byte(readme))
	if err != nil {
		t.Fatal(err)
	}
	page, err := markup.Parse(strings.NewReader("<html><body>" + out + "</body></html>"))
	if err != nil {
		t.Fatal(err)
	}
	doc := page.Document(toggler.VariantRoot)
	if len(doc.Sections()) != 2 {
		t.Fatalf("sections = %d, want 2", len(doc.Sections()))
	}
	if doc.ToggleSection("install") {
		t.Error("install should close")
	}
	page.Apply(doc)

	html := page.String()
	if !strings.Contains(html, `<div id="install-content" class="dyncontent" style="display:none;">`) {
		t.Errorf("content not hidden:\n%s", html)
	}
	if !strings.Contains(html, `<div id="install-summary" class="dynsummary">`) {
		t.Errorf("summary not shown:\n%s", html)
	}
	if !strings.Contains(html, `src="closed.png"`) {
		t.Error("trigger should switch to closed.png")
	}
}

func TestSummarizeTruncates(t *testing.T) {
	long := strings.Repeat("word ", 60)
	out, err := renderReadme(newMarkdown(), []byte("## Long\n\n"+long+"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "…</div>") {
		t.Errorf("long summary should be truncated:\n%s", out)
	}
}
