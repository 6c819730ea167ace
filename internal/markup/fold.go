package markup

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ziadkadry99/docview/internal/toggler"
)

// gutterStyle is applied to every line-number gutter so the fold glyphs
// line up against the guide line.
var gutterStyle = []styleDecl{
	{"padding-right", "4px"},
	{"margin-right", "2px"},
	{"display", "inline-block"},
	{"width", "54px"},
	{"background", "linear-gradient(#808080,#808080) no-repeat 46px/2px 100%"},
}

// InitializeFoldRegions prepares a source listing for folding: it styles the
// line gutters, adds the fold-all control and per-line fold glyphs, and
// builds the closed rendering of every open region right after it. It
// reports false without touching the page when the listing is already
// initialised.
func (p *Page) InitializeFoldRegions(variant toggler.Variant) bool {
	if p.foldAll != nil {
		return false
	}
	for _, r := range p.regions {
		if r.closed != nil {
			return false
		}
	}

	minus := toggler.FoldIcon(true, variant)
	plus := toggler.FoldIcon(false, variant)

	for i, g := range p.gutters {
		for _, d := range gutterStyle {
			setStyle(g, d.prop, d.val)
		}
		if i == 0 {
			p.foldAll = element(atom.Span,
				"class", "fold",
				"id", "fold_all",
				"data-cmd", "fold_all",
				"style", "background-image:"+minus+";")
			g.AppendChild(p.foldAll)
			continue
		}
		g.AppendChild(element(atom.Span, "class", "fold"))
	}
	if p.foldAll != nil {
		p.byID["fold_all"] = p.foldAll
	}

	for _, r := range p.regions {
		first := firstElementChild(r.open)
		if first != nil && p.foldAll != nil && isAncestor(first, p.foldAll) {
			// The region opens on the line carrying the fold-all control, so
			// that line needs a glyph of its own.
			if next := p.foldAll.NextSibling; next == nil || !isFoldGlyph(next) {
				insertAfter(p.foldAll, element(atom.Span, "class", "fold"))
			}
		}
		glyph := find(r.open, isFoldGlyph)
		if glyph != nil {
			setAttr(glyph, "data-cmd", "fold_region")
			setAttr(glyph, "data-target", r.id)
			setStyle(glyph, "background-image", minus)
		}

		closed := element(atom.Div,
			"id", "foldclosed"+r.id,
			"class", "foldclosed",
			"style", "display:none;")
		insertAfter(r.open, closed)
		r.closed = closed
		p.byID["foldclosed"+r.id] = closed

		if first == nil {
			continue
		}
		line := cloneNode(first)
		setClass(line, "glow", false)
		for _, f := range findAll(line, isFoldAll) {
			f.Parent.RemoveChild(f)
		}
		if r.start != "" {
			trimTrailing(line, r.start)
		}
		for _, f := range findAll(line, isFoldGlyph) {
			setStyle(f, "background-image", plus)
		}
		line.AppendChild(&html.Node{Type: html.TextNode, Data: " " + r.start})
		ellipsis := element(atom.A,
			"href", "#foldopen"+r.id,
			"data-cmd", "fold_region",
			"data-target", r.id)
		ellipsis.AppendChild(&html.Node{Type: html.TextNode, Data: "…"})
		line.AppendChild(ellipsis)
		if r.end != "" {
			line.AppendChild(&html.Node{Type: html.TextNode, Data: r.end})
		}
		closed.AppendChild(line)
	}
	return true
}

func isFoldGlyph(n *html.Node) bool {
	return n.DataAtom == atom.Span && attr(n, "class") == "fold" && !isFoldAll(n)
}

func isFoldAll(n *html.Node) bool {
	return attr(n, "id") == "fold_all"
}

// isAncestor reports whether a is n or one of its ancestors.
func isAncestor(a, n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == a {
			return true
		}
	}
	return false
}
