package richtext

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseHTML reduces an HTML fragment to a Document.
func ParseHTML(s string) Document {
	if s == "" {
		return nil
	}
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), body)
	if err != nil {
		// The HTML5 parser only fails on reader errors; keep the raw text.
		return Plain(s)
	}
	p := &parser{}
	for _, n := range nodes {
		p.walk(n, style{})
	}
	return normalize(p.out)
}

type style struct {
	bold      bool
	highlight bool
}

func (s style) kind() Kind {
	switch {
	case s.bold:
		return KindBold
	case s.highlight:
		return KindHighlight
	default:
		return KindText
	}
}

type parser struct {
	out  Document
	item *strings.Builder
}

func (p *parser) emit(s Span) {
	p.out = append(p.out, s)
}

func (p *parser) lineBreak() {
	if n := len(p.out); n == 0 || p.out[n-1].Kind == KindBreak || p.out[n-1].Kind == KindListItem {
		return
	}
	p.emit(Span{Kind: KindBreak})
}

func (p *parser) walk(n *html.Node, st style) {
	switch n.Type {
	case html.TextNode:
		if p.item != nil {
			p.item.WriteString(n.Data)
			return
		}
		if parent := n.Parent; parent != nil && (parent.DataAtom == atom.Ul || parent.DataAtom == atom.Ol) && strings.TrimSpace(n.Data) == "" {
			return
		}
		p.emit(Span{Kind: st.kind(), Text: n.Data})
		return
	case html.ElementNode:
	default:
		p.children(n, st)
		return
	}

	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Head, atom.Title, atom.Template, atom.Iframe, atom.Object:
		return
	case atom.B, atom.Strong:
		st.bold = true
	case atom.Mark:
		st.highlight = true
	case atom.Span, atom.Font:
		if strings.Contains(strings.ToLower(attr(n, "style")), "background") {
			st.highlight = true
		}
	case atom.Br:
		if p.item != nil {
			p.item.WriteByte('\n')
			return
		}
		p.emit(Span{Kind: KindBreak})
		return
	case atom.Img:
		if src := attr(n, "src"); strings.HasPrefix(src, "data:image/") {
			p.emit(Span{Kind: KindImage, Src: src})
		}
		return
	case atom.Li:
		if p.item != nil {
			p.children(n, st)
			return
		}
		p.item = &strings.Builder{}
		p.children(n, st)
		p.emit(Span{Kind: KindListItem, Text: p.item.String()})
		p.item = nil
		return
	case atom.Div, atom.P:
		if p.item == nil {
			p.lineBreak()
		}
	}
	p.children(n, st)
}

func (p *parser) children(n *html.Node, st style) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c, st)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// Render produces the canonical HTML form. ParseHTML(d.Render()) equals d for
// every normalized document.
func (d Document) Render() string {
	var b strings.Builder
	inList := false
	for _, s := range d {
		if s.Kind != KindListItem && inList {
			b.WriteString("</ul>")
			inList = false
		}
		switch s.Kind {
		case KindText:
			b.WriteString(html.EscapeString(s.Text))
		case KindBold:
			b.WriteString("<b>" + html.EscapeString(s.Text) + "</b>")
		case KindHighlight:
			b.WriteString("<mark>" + html.EscapeString(s.Text) + "</mark>")
		case KindListItem:
			if !inList {
				b.WriteString("<ul>")
				inList = true
			}
			b.WriteString("<li>" + html.EscapeString(s.Text) + "</li>")
		case KindImage:
			b.WriteString(`<img src="` + html.EscapeString(s.Src) + `">`)
		case KindBreak:
			b.WriteString("<br>")
		}
	}
	if inList {
		b.WriteString("</ul>")
	}
	return b.String()
}
