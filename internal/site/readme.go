package site

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// summaryLength caps the text shown for a collapsed section.
const summaryLength = 120

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)
}

// renderReadme converts markdown to HTML and turns every H2 section into a
// collapsible section: the heading becomes the toggle and carries the
// trigger image, the body moves into X-content and a one-line X-summary is
// shown while it is closed.
func renderReadme(md goldmark.Markdown, src []byte) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(&buf, body)
	if err != nil {
		return "", fmt.Errorf("parsing rendered markdown: %w", err)
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}

	var sections []*html.Node
	for n := body.FirstChild; n != nil; n = n.NextSibling {
		if n.DataAtom == atom.H2 {
			sections = append(sections, n)
		}
	}
	for i, h := range sections {
		wrapSection(h, fmt.Sprintf("section%d", i))
	}

	var out bytes.Buffer
	for n := body.FirstChild; n != nil; n = n.NextSibling {
		if err := html.Render(&out, n); err != nil {
			return "", fmt.Errorf("rendering readme: %w", err)
		}
	}
	return out.String(), nil
}

// wrapSection moves the siblings following heading h, up to the next H1 or
// H2, into the section's content block.
func wrapSection(h *html.Node, fallbackID string) {
	id := nodeAttr(h, "id")
	if id == "" {
		id = fallbackID
		h.Attr = append(h.Attr, html.Attribute{Key: "id", Val: id})
	}
	h.Attr = append(h.Attr,
		html.Attribute{Key: "class", Val: "dynheader opened"},
		html.Attribute{Key: "data-cmd", Val: "toggle_section"},
		html.Attribute{Key: "data-target", Val: id},
	)
	trigger := newElement(atom.Img, "id", id+"-trigger", "src", "open.png", "alt", "+")
	h.InsertBefore(trigger, h.FirstChild)
	h.InsertBefore(&html.Node{Type: html.TextNode, Data: " "}, trigger.NextSibling)

	content := newElement(atom.Div, "id", id+"-content", "class", "dyncontent")
	for n := h.NextSibling; n != nil; {
		if n.DataAtom == atom.H1 || n.DataAtom == atom.H2 {
			break
		}
		next := n.NextSibling
		n.Parent.RemoveChild(n)
		content.AppendChild(n)
		n = next
	}

	summary := newElement(atom.Div, "id", id+"-summary", "class", "dynsummary", "style", "display:none;")
	summary.AppendChild(&html.Node{Type: html.TextNode, Data: summarize(content)})

	parent := h.Parent
	parent.InsertBefore(content, h.NextSibling)
	parent.InsertBefore(summary, content)
}

// summarize returns the leading text of n, shortened to summaryLength.
func summarize(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if b.Len() > summaryLength {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	text := strings.Join(strings.Fields(b.String()), " ")
	if r := []rune(text); len(r) > summaryLength {
		text = string(r[:summaryLength]) + "…"
	}
	if text == "" {
		text = "…"
	}
	return text
}

func nodeAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func newElement(tag atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: tag, Data: tag.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}
