package render

import (
	"html/template"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// summaryTags are the only elements kept from TVmaze summaries. Attributes
// are always dropped.
var summaryTags = map[atom.Atom]bool{
	atom.P:      true,
	atom.B:      true,
	atom.I:      true,
	atom.Em:     true,
	atom.Strong: true,
	atom.U:      true,
	atom.Br:     true,
}

// skippedTags have their whole content discarded.
var skippedTags = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Iframe:   true,
	atom.Noscript: true,
}

// SanitizeSummary reduces summary markup to a small formatting allowlist and
// escapes all text, so the result is safe to embed in the page. The output is
// balanced: stray end tags are dropped and unclosed tags are closed at the
// end, so nothing leaks into the surrounding card.
func SanitizeSummary(raw string) template.HTML {
	if raw == "" {
		return ""
	}

	z := html.NewTokenizer(strings.NewReader(raw))
	var b strings.Builder
	var open tagStack
	skipDepth := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			open.closeFrom(&b, 0)
			return template.HTML(b.String())

		case html.TextToken:
			if skipDepth == 0 {
				b.WriteString(html.EscapeString(string(z.Text())))
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := atom.Lookup(name)
			if skippedTags[tag] {
				if tt == html.StartTagToken {
					skipDepth++
				}
				continue
			}
			if skipDepth > 0 || !summaryTags[tag] {
				continue
			}
			if tag == atom.Br {
				b.WriteString("<br>")
				continue
			}
			// A new paragraph ends the open one, as an HTML parser would.
			if tag == atom.P {
				if i := open.lastIndex(atom.P); i >= 0 {
					open.closeFrom(&b, i)
				}
			}
			b.WriteString("<" + tag.String() + ">")
			open = append(open, tag)

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := atom.Lookup(name)
			if skippedTags[tag] {
				if skipDepth > 0 {
					skipDepth--
				}
				continue
			}
			if skipDepth > 0 || !summaryTags[tag] {
				continue
			}
			if i := open.lastIndex(tag); i >= 0 {
				open.closeFrom(&b, i)
			}
		}
	}
}

// tagStack holds the allowlisted elements currently open in the output.
type tagStack []atom.Atom

func (s tagStack) lastIndex(tag atom.Atom) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == tag {
			return i
		}
	}
	return -1
}

// closeFrom writes end tags for s[i:], innermost first, and pops them.
func (s *tagStack) closeFrom(b *strings.Builder, i int) {
	for j := len(*s) - 1; j >= i; j-- {
		b.WriteString("</" + (*s)[j].String() + ">")
	}
	*s = (*s)[:i]
}
