// Package markup binds the toggler state model to a rendered documentation
// page. It reads the initial state out of the server-rendered HTML and
// projects state changes back onto the element tree.
package markup

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ziadkadry99/docview/internal/toggler"
)

type rowNodes struct {
	id    string
	tr    *html.Node
	icon  *html.Node
	arrow *html.Node
}

type sectionNodes struct {
	id        string
	container *html.Node
	summary   *html.Node
	content   *html.Node
	trigger   *html.Node
}

type groupNodes struct {
	id     string
	rows   []*html.Node
	header *html.Node
}

type regionNodes struct {
	id     string
	open   *html.Node
	closed *html.Node
	start  string
	end    string
}

// Page is a parsed documentation page with its interactive elements indexed.
type Page struct {
	root     *html.Node
	byID     map[string]*html.Node
	rows     []*rowNodes
	sections []*sectionNodes
	groups   []*groupNodes
	regions  []*regionNodes
	gutters  []*html.Node
	foldAll  *html.Node
}

// Parse reads an HTML document and indexes its rows, sections, inherited
// groups, fold regions and line-number gutters.
func Parse(r io.Reader) (*Page, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	p := &Page{root: root}
	p.index()
	return p, nil
}

// Clone returns an independent copy of the page.
func (p *Page) Clone() *Page {
	c := &Page{root: cloneNode(p.root)}
	c.index()
	return c
}

// Render writes the full document.
func (p *Page) Render(w io.Writer) error {
	return html.Render(w, p.root)
}

// RenderBody writes only the children of <body>.
func (p *Page) RenderBody(w io.Writer) error {
	body := find(p.root, func(n *html.Node) bool { return n.DataAtom == atom.Body })
	if body == nil {
		return p.Render(w)
	}
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return err
		}
	}
	return nil
}

// String renders the document, mostly for tests and debugging.
func (p *Page) String() string {
	var buf bytes.Buffer
	_ = p.Render(&buf)
	return buf.String()
}

func (p *Page) index() {
	p.byID = make(map[string]*html.Node)
	p.rows = nil
	p.sections = nil
	p.groups = nil
	p.regions = nil
	p.gutters = nil

	var contentIDs []string
	groupIndex := make(map[string]*groupNodes)
	group := func(id string) *groupNodes {
		g, ok := groupIndex[id]
		if !ok {
			g = &groupNodes{id: id}
			groupIndex[id] = g
			p.groups = append(p.groups, g)
		}
		return g
	}

	var walk func(n *html.Node, inDirectory bool)
	walk = func(n *html.Node, inDirectory bool) {
		if n.Type == html.ElementNode {
			id := attr(n, "id")
			if id != "" {
				if _, dup := p.byID[id]; !dup {
					p.byID[id] = n
				}
				if strings.HasSuffix(id, "-content") {
					contentIDs = append(contentIDs, strings.TrimSuffix(id, "-content"))
				}
			}
			switch n.DataAtom {
			case atom.Table:
				inDirectory = hasClass(n, "directory")
			case atom.Tr:
				switch {
				case inDirectory && strings.HasPrefix(id, "row_"):
					p.rows = append(p.rows, &rowNodes{id: id, tr: n})
				case hasClass(n, "inherit"):
					if gid := groupID(n, "inherit"); gid != "" {
						g := group(gid)
						g.rows = append(g.rows, n)
					}
				case hasClass(n, "inherit_header"):
					if gid := groupID(n, "inherit_header"); gid != "" {
						group(gid).header = find(n, func(c *html.Node) bool { return c.DataAtom == atom.Img })
					}
				}
			case atom.Div:
				if hasClass(n, "foldopen") && strings.HasPrefix(id, "foldopen") {
					p.regions = append(p.regions, &regionNodes{
						id:    strings.TrimPrefix(id, "foldopen"),
						open:  n,
						start: attr(n, "data-start"),
						end:   attr(n, "data-end"),
					})
				}
			case atom.Span:
				if attr(n, "class") == "lineno" {
					p.gutters = append(p.gutters, n)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inDirectory)
		}
	}
	walk(p.root, false)

	for _, r := range p.rows {
		key := toggler.RowKey(r.id)
		r.icon = find(r.tr, func(n *html.Node) bool {
			return n.DataAtom == atom.Span && (hasClass(n, toggler.ClassFolderOpen) || hasClass(n, toggler.ClassFolderClosed))
		})
		if r.icon == nil {
			r.icon = p.byID["img"+key]
		}
		r.arrow = find(r.tr, func(n *html.Node) bool { return n.DataAtom == atom.Span && hasClass(n, "arrow") })
		if r.arrow == nil {
			r.arrow = p.byID["arr"+key]
		}
	}

	for _, id := range contentIDs {
		container, ok := p.byID[id]
		if !ok {
			continue
		}
		p.sections = append(p.sections, &sectionNodes{
			id:        id,
			container: container,
			summary:   p.byID[id+"-summary"],
			content:   p.byID[id+"-content"],
			trigger:   p.byID[id+"-trigger"],
		})
	}

	for _, r := range p.regions {
		r.closed = p.byID["foldclosed"+r.id]
	}
	p.foldAll = p.byID["fold_all"]
}

// groupID returns the class following marker on n, so structural classes
// placed before the marker are never taken for the group.
func groupID(n *html.Node, marker string) string {
	cs := classes(n)
	for i, c := range cs {
		if c == marker && i+1 < len(cs) {
			return cs[i+1]
		}
	}
	return ""
}

// Document derives the initial toggle state from the markup as rendered.
func (p *Page) Document(variant toggler.Variant) *toggler.Document {
	doc := toggler.New(variant)
	for _, r := range p.rows {
		doc.AddRow(r.id, !isHidden(r.tr), hasClass(r.icon, toggler.ClassFolderOpen), r.icon != nil || r.arrow != nil)
	}
	doc.UpdateStriping()
	for _, s := range p.sections {
		open := s.content != nil && !isHidden(s.content)
		doc.AddSection(s.id, open)
	}
	for _, g := range p.groups {
		visible := make([]bool, len(g.rows))
		for i, tr := range g.rows {
			visible[i] = !isHidden(tr)
		}
		doc.AddGroup(g.id, visible)
	}
	for _, r := range p.regions {
		doc.AddRegion(r.id, r.start, r.end, !isHidden(r.open))
	}
	return doc
}

// HasFolds reports whether the page carries fold regions or line gutters.
func (p *Page) HasFolds() bool {
	return len(p.regions) > 0 || len(p.gutters) > 0
}
