package view

import (
	"io"
	"strings"

	"github.com/ziadkadry99/docview/internal/markup"
	"github.com/ziadkadry99/docview/internal/toggler"
)

// View is one page as seen by one client: its own copy of the markup and
// the state projected onto it.
type View struct {
	Path string
	page *markup.Page
	doc  *toggler.Document
}

// New prepares a view over page. The page is modified in place, so callers
// sharing a parsed page must pass a clone. A level of 0 keeps the expansion
// state the page was rendered with.
func New(path string, page *markup.Page, variant toggler.Variant, level int) *View {
	page.InitializeFoldRegions(variant)
	doc := page.Document(variant)
	if level > 0 {
		doc.SetExpansionLevel(level)
	}
	page.Apply(doc)
	return &View{Path: path, page: page, doc: doc}
}

// VariantFor picks the asset path variant from the page's location in the
// site. Pages two or more directories down use the nested variant.
func VariantFor(path string) toggler.Variant {
	if strings.Count(strings.Trim(path, "/"), "/") >= 2 {
		return toggler.VariantNested
	}
	return toggler.VariantRoot
}

// Execute validates and runs one command, then re-projects the page.
func (v *View) Execute(c Command) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	open := run(v.doc, c)
	v.page.Apply(v.doc)
	return Result{
		Op:     c.Op,
		Target: c.Target,
		Open:   open,
		State:  v.doc.Snapshot(),
	}, nil
}

// Snapshot returns the current state.
func (v *View) Snapshot() toggler.Snapshot {
	return v.doc.Snapshot()
}

// Render writes the full projected page.
func (v *View) Render(w io.Writer) error {
	return v.page.Render(w)
}

// RenderBody writes the projected page body only.
func (v *View) RenderBody(w io.Writer) error {
	return v.page.RenderBody(w)
}
