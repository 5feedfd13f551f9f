package richtext

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

const pixelPNG = "data:image/png;base64,iVBORw0KGgo="

func TestParseHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Document
	}{
		{
			name:     "plain text",
			input:    "hello world",
			expected: Document{{Kind: KindText, Text: "hello world"}},
		},
		{
			name:  "bold and highlight",
			input: `a <b>bold</b> <span style="background-color: rgb(254, 240, 138)">marked</span>`,
			expected: Document{
				{Kind: KindText, Text: "a "},
				{Kind: KindBold, Text: "bold"},
				{Kind: KindText, Text: " "},
				{Kind: KindHighlight, Text: "marked"},
			},
		},
		{
			name:  "contenteditable divs become breaks",
			input: "first<div>second</div><div>third</div>",
			expected: Document{
				{Kind: KindText, Text: "first"},
				{Kind: KindBreak},
				{Kind: KindText, Text: "second"},
				{Kind: KindBreak},
				{Kind: KindText, Text: "third"},
			},
		},
		{
			name:  "list items",
			input: "<ul>\n<li>one</li>\n<li><b>two</b></li></ul>",
			expected: Document{
				{Kind: KindListItem, Text: "one"},
				{Kind: KindListItem, Text: "two"},
			},
		},
		{
			name:     "scripts dropped",
			input:    `<script>alert(1)</script>safe<a href="javascript:x" onclick="y">link</a>`,
			expected: Document{{Kind: KindText, Text: "safelink"}},
		},
		{
			name:  "only inline images survive",
			input: `<img src="https://example.com/a.png"><img src="` + pixelPNG + `" onerror="x">`,
			expected: Document{
				{Kind: KindImage, Src: pixelPNG},
			},
		},
		{
			name:     "entities decoded",
			input:    "fish &amp; chips &lt;3",
			expected: Document{{Kind: KindText, Text: "fish & chips <3"}},
		},
		{
			name:     "empty",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseHTML(tt.input)
			if !got.Equal(tt.expected) {
				t.Errorf("expected %#v, got %#v", tt.expected, got)
			}
		})
	}
}

func TestRenderRoundTrip(t *testing.T) {
	docs := []Document{
		Plain("just text with <angle> & \"quotes\""),
		{
			{Kind: KindText, Text: "intro "},
			{Kind: KindBold, Text: "#生活"},
			{Kind: KindBreak},
			{Kind: KindListItem, Text: "a"},
			{Kind: KindListItem, Text: "b"},
			{Kind: KindText, Text: "after "},
			{Kind: KindHighlight, Text: "note"},
			{Kind: KindImage, Src: pixelPNG},
			{Kind: KindBreak},
			{Kind: KindBreak},
			{Kind: KindText, Text: "end"},
		},
		ParseHTML("line one<div>line two</div>"),
	}

	for i, d := range docs {
		got := ParseHTML(d.Render())
		if !got.Equal(d) {
			t.Errorf("doc %d: round trip changed document\nexpected %#v\ngot      %#v", i, d, got)
		}
	}
}

func TestPlainTextAndBlank(t *testing.T) {
	d := ParseHTML("<b>#Work2</b> done<div><li>#生活</li></div>")
	text := d.PlainText()
	if !strings.Contains(text, "#Work2 done") || !strings.Contains(text, "#生活") {
		t.Errorf("unexpected plain text %q", text)
	}

	if !ParseHTML("<div> <br> </div>").IsBlank() {
		t.Error("whitespace-only markup should be blank")
	}
	if ParseHTML(`<img src="` + pixelPNG + `">`).IsBlank() {
		t.Error("an image-only document is not blank")
	}
}

func TestJSONStoresHTMLString(t *testing.T) {
	d := Document{{Kind: KindText, Text: "hi "}, {Kind: KindBold, Text: "there"}}
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("content should encode as a JSON string: %v", err)
	}
	if raw != "hi <b>there</b>" {
		t.Errorf("expected %q, got %q", "hi <b>there</b>", raw)
	}

	var back Document
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("expected %#v, got %#v", d, back)
	}

	if err := json.Unmarshal([]byte(`42`), &back); err == nil {
		t.Error("expected non-string content to be rejected")
	}
}

func TestAppendTag(t *testing.T) {
	d := AppendTag(Plain("reading"), "#书")
	if d.PlainText() != "reading #书" {
		t.Errorf("expected %q, got %q", "reading #书", d.PlainText())
	}
	if got := AppendTag(d, "  "); !got.Equal(d) {
		t.Error("blank tag should leave the document unchanged")
	}
}

func TestParseMarkup(t *testing.T) {
	got := ParseMarkup("today **big** ==win==\n- first\n- second\nbye")
	expected := Document{
		{Kind: KindText, Text: "today "},
		{Kind: KindBold, Text: "big"},
		{Kind: KindText, Text: " "},
		{Kind: KindHighlight, Text: "win"},
		{Kind: KindListItem, Text: "first"},
		{Kind: KindListItem, Text: "second"},
		{Kind: KindText, Text: "bye"},
	}
	if !got.Equal(expected) {
		t.Errorf("expected %#v, got %#v", expected, got)
	}

	if got := ParseMarkup("unclosed **bold"); !got.Equal(Plain("unclosed **bold")) {
		t.Errorf("unclosed markers should stay literal, got %#v", got)
	}
}

func TestEncodeImage(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	url, err := EncodeImage(bytes.NewReader(png))
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Errorf("unexpected data URL prefix: %q", url)
	}

	if _, err := EncodeImage(strings.NewReader("plain text, not an image")); err == nil {
		t.Error("expected non-image content to be rejected")
	}
	if _, err := EncodeImage(strings.NewReader("")); err == nil {
		t.Error("expected empty input to be rejected")
	}
}
