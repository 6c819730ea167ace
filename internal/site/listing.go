package site

import (
	"fmt"
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// listingLine is one highlighted source line.
type listingLine struct {
	Number int
	HTML   string // highlighted tokens, no trailing newline
	opens  int    // '{' left unmatched at the end of the line
	closes int    // '}' matching braces from earlier lines
}

// highlight tokenises src with the lexer registered for name and returns
// one entry per line.
func highlight(name, src string) ([]listingLine, error) {
	lexer := lexers.Match(name)
	if lexer == nil {
		lexer = lexers.Analyse(src)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		return nil, fmt.Errorf("tokenising %s: %w", name, err)
	}

	var lines []listingLine
	for i, tokens := range chroma.SplitTokensIntoLines(it.Tokens()) {
		line := listingLine{Number: i + 1}
		var b strings.Builder
		for _, tok := range tokens {
			value := strings.TrimRight(tok.Value, "\n")
			if value == "" {
				continue
			}
			if tok.Type.InCategory(chroma.Punctuation) || tok.Type == chroma.Operator {
				line.count(value)
			}
			if class := tokenClass(tok.Type); class != "" {
				fmt.Fprintf(&b, `<span class="%s">%s</span>`, class, html.EscapeString(value))
			} else {
				b.WriteString(html.EscapeString(value))
			}
		}
		line.HTML = b.String()
		lines = append(lines, line)
	}
	// A trailing newline produces an empty last line.
	if n := len(lines); n > 1 && lines[n-1].HTML == "" {
		lines = lines[:n-1]
	}
	return lines, nil
}

// count tracks braces in a punctuation token.
func (l *listingLine) count(value string) {
	for _, r := range value {
		switch r {
		case '{':
			l.opens++
		case '}':
			if l.opens > 0 {
				l.opens--
			} else {
				l.closes++
			}
		}
	}
}

// tokenClass returns the short CSS class chroma uses for a token type.
func tokenClass(t chroma.TokenType) string {
	for ; t != 0; t = t.Parent() {
		if class, ok := chroma.StandardTypes[t]; ok {
			if class == "" || t == chroma.Text || t == chroma.TextWhitespace {
				return ""
			}
			return class
		}
	}
	return ""
}

// writeListing renders lines as a fragment with brace-delimited blocks
// wrapped in fold regions. A line that both closes and opens a block, such
// as "} else {", ends the previous region and starts the next one.
func writeListing(b *strings.Builder, lines []listingLine) {
	var stack []bool // true where the entry owns a region div
	closeRegions := func(n int) {
		for ; n > 0 && len(stack) > 0; n-- {
			if stack[len(stack)-1] {
				b.WriteString("</div>\n")
			}
			stack = stack[:len(stack)-1]
		}
	}

	b.WriteString(`<div class="fragment">` + "\n")
	for _, l := range lines {
		if l.opens > 0 {
			closeRegions(l.closes)
			fmt.Fprintf(b, `<div class="foldopen" id="foldopen%05d" data-start="{" data-end="}">`+"\n", l.Number)
			stack = append(stack, true)
			for i := 1; i < l.opens; i++ {
				stack = append(stack, false)
			}
			writeLine(b, l)
			continue
		}
		writeLine(b, l)
		closeRegions(l.closes)
	}
	closeRegions(len(stack))
	b.WriteString("</div>\n")
}

func writeLine(b *strings.Builder, l listingLine) {
	fmt.Fprintf(b, `<div class="line" id="l%05d"><span class="lineno">%5d</span>%s</div>`+"\n", l.Number, l.Number, l.HTML)
}
