package markup

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func getAttr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func attr(n *html.Node, key string) string {
	v, _ := getAttr(n, key)
	return v
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

func classes(n *html.Node) []string {
	return strings.Fields(attr(n, "class"))
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

// setClass adds or removes one class, keeping the order of the others.
func setClass(n *html.Node, class string, on bool) {
	if n == nil {
		return
	}
	var out []string
	found := false
	for _, c := range classes(n) {
		if c == class {
			if !on || found {
				continue
			}
			found = true
		}
		out = append(out, c)
	}
	if on && !found {
		out = append(out, class)
	}
	if len(out) == 0 {
		removeAttr(n, "class")
		return
	}
	setAttr(n, "class", strings.Join(out, " "))
}

type styleDecl struct {
	prop, val string
}

func parseStyle(s string) []styleDecl {
	var decls []styleDecl
	for _, part := range strings.Split(s, ";") {
		prop, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		if prop == "" {
			continue
		}
		decls = append(decls, styleDecl{prop: prop, val: strings.TrimSpace(val)})
	}
	return decls
}

func styleValue(n *html.Node, prop string) string {
	for _, d := range parseStyle(attr(n, "style")) {
		if d.prop == prop {
			return d.val
		}
	}
	return ""
}

// setStyle sets one inline style property. An empty value removes it.
func setStyle(n *html.Node, prop, val string) {
	if n == nil {
		return
	}
	decls := parseStyle(attr(n, "style"))
	out := decls[:0]
	replaced := false
	for _, d := range decls {
		if d.prop == prop {
			if val == "" || replaced {
				continue
			}
			d.val = val
			replaced = true
		}
		out = append(out, d)
	}
	if val != "" && !replaced {
		out = append(out, styleDecl{prop: prop, val: val})
	}
	if len(out) == 0 {
		removeAttr(n, "style")
		return
	}
	var b strings.Builder
	for _, d := range out {
		b.WriteString(d.prop)
		b.WriteByte(':')
		b.WriteString(d.val)
		b.WriteByte(';')
	}
	setAttr(n, "style", b.String())
}

func isHidden(n *html.Node) bool {
	return n != nil && strings.EqualFold(styleValue(n, "display"), "none")
}

// setDisplay shows or hides an element. shown is the display value used when
// visible; empty falls back to the element's default.
func setDisplay(n *html.Node, visible bool, shown string) {
	if visible {
		setStyle(n, "display", shown)
		return
	}
	setStyle(n, "display", "none")
}

func setText(n *html.Node, text string) {
	if n == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func element(tag atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: tag, Data: tag.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func cloneNode(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(cloneNode(child))
	}
	return c
}

func insertAfter(ref, n *html.Node) {
	if ref.Parent == nil {
		return
	}
	ref.Parent.InsertBefore(n, ref.NextSibling)
}

func firstElementChild(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// find returns the first descendant of n, in document order, matching fn.
func find(n *html.Node, fn func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && fn(c) {
			return c
		}
		if m := find(c, fn); m != nil {
			return m
		}
	}
	return nil
}

func findAll(n *html.Node, fn func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && fn(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// trimTrailing strips suffix from the last non-blank text inside n. It
// reports whether such a text node was reached.
func trimTrailing(n *html.Node, suffix string) bool {
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		switch c.Type {
		case html.TextNode:
			trimmed := strings.TrimRightFunc(c.Data, unicode.IsSpace)
			if trimmed == "" {
				continue
			}
			if strings.HasSuffix(trimmed, suffix) {
				c.Data = strings.TrimRightFunc(strings.TrimSuffix(trimmed, suffix), unicode.IsSpace)
			}
			return true
		case html.ElementNode:
			if trimTrailing(c, suffix) {
				return true
			}
		}
	}
	return false
}
