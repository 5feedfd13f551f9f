// Package richtext holds note content as a closed set of inline spans.
//
// Content arrives as HTML (stored documents, backups, pasted markup) and is
// reduced to text, bold, highlight, list item, inline image and line break
// spans. Anything else is unwrapped to its text or dropped, so rendering a
// Document never reproduces markup it did not understand.
package richtext

import (
	"encoding/json"
	"strings"
)

// Kind identifies a span's presentation.
type Kind string

const (
	KindText      Kind = "text"
	KindBold      Kind = "bold"
	KindHighlight Kind = "highlight"
	KindListItem  Kind = "li"
	KindImage     Kind = "image"
	KindBreak     Kind = "br"
)

// Span is one run of content. Src is set only for images and always holds a
// data: URL.
type Span struct {
	Kind Kind
	Text string
	Src  string
}

// Document is normalized content: adjacent runs of the same inline kind are
// merged and empty inline runs are removed.
type Document []Span

// Plain builds a document holding a single text run.
func Plain(text string) Document {
	return normalize(Document{{Kind: KindText, Text: text}})
}

// Image builds a document holding a single inline image.
func Image(dataURL string) Document {
	return Document{{Kind: KindImage, Src: dataURL}}
}

// Concat joins documents and normalizes the result.
func Concat(docs ...Document) Document {
	var out Document
	for _, d := range docs {
		out = append(out, d...)
	}
	return normalize(out)
}

// AppendTag appends " #tag" to the document, the composer's tag shortcut.
func AppendTag(d Document, tag string) Document {
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
	if tag == "" {
		return d
	}
	return Concat(d, Document{{Kind: KindText, Text: " #" + tag}})
}

// PlainText returns the document's text as a reader would see it. Hashtags
// are extracted from this form.
func (d Document) PlainText() string {
	var b strings.Builder
	for _, s := range d {
		switch s.Kind {
		case KindText, KindBold, KindHighlight:
			b.WriteString(s.Text)
		case KindListItem:
			b.WriteString(s.Text)
			b.WriteByte('\n')
		case KindBreak:
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// HasImage reports whether the document embeds at least one image.
func (d Document) HasImage() bool {
	for _, s := range d {
		if s.Kind == KindImage {
			return true
		}
	}
	return false
}

// IsBlank reports whether the document has neither visible text nor an image.
func (d Document) IsBlank() bool {
	return strings.TrimSpace(d.PlainText()) == "" && !d.HasImage()
}

// Images returns the data URLs of every embedded image in order.
func (d Document) Images() []string {
	var out []string
	for _, s := range d {
		if s.Kind == KindImage {
			out = append(out, s.Src)
		}
	}
	return out
}

// Equal reports whether two documents hold the same spans.
func (d Document) Equal(o Document) bool {
	if len(d) != len(o) {
		return false
	}
	for i := range d {
		if d[i] != o[i] {
			return false
		}
	}
	return true
}

// MarshalJSON stores the document as its rendered HTML string so persisted
// notes keep a plain "content" string.
func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Render())
}

// UnmarshalJSON accepts an HTML string (or null).
func (d *Document) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*d = ParseHTML(s)
	return nil
}

func isInline(k Kind) bool {
	return k == KindText || k == KindBold || k == KindHighlight
}

func normalize(d Document) Document {
	out := make(Document, 0, len(d))
	for _, s := range d {
		if isInline(s.Kind) {
			if s.Text == "" {
				continue
			}
			if n := len(out); n > 0 && out[n-1].Kind == s.Kind {
				out[n-1].Text += s.Text
				continue
			}
		}
		if s.Kind == KindImage && s.Src == "" {
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
