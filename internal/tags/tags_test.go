package tags

import (
	"reflect"
	"strings"
	"testing"

	"github.com/julianstephens/lifetracks/internal/richtext"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"mixed scripts", "今天 #生活 and #Work2!", []string{"生活", "Work2"}},
		{"duplicates kept", "#a #b #a", []string{"a", "b", "a"}},
		{"adjacent", "#one#two", []string{"one", "two"}},
		{"underscore and digits", "#to_do_2024", []string{"to_do_2024"}},
		{"lone hash", "# not a tag, nor is #", []string{}},
		{"punctuation stops a tag", "#read-later", []string{"read"}},
		{"no tags", "plain text", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Extract(%q) = %#v, want %#v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFromDocumentIgnoresMarkup(t *testing.T) {
	doc := richtext.ParseHTML(`<div>今天 <b>#生活</b></div><span style="background-color:#fef08a">#Work2</span>`)
	got := FromDocument(doc)
	want := []string{"生活", "Work2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	first := Extract("#生活 #Work2 #生活")
	second := Extract("#" + strings.Join(first, " #"))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-extracting tags changed them: %v vs %v", first, second)
	}
}

func TestUniqueAndRecent(t *testing.T) {
	lists := [][]string{
		{"a", "b"},
		{"b", "c", "d"},
		{"e", "f", "g", "h", "i"},
	}
	if got := Unique(lists...); len(got) != 9 || got[0] != "a" || got[2] != "c" {
		t.Errorf("unexpected unique tags %v", got)
	}

	recent := Recent(lists, 8)
	if len(recent) != 8 {
		t.Fatalf("expected 8 recent tags, got %d", len(recent))
	}
	if recent[7] != "h" {
		t.Errorf("expected last recent tag %q, got %q", "h", recent[7])
	}

	if got := Recent(nil, 8); len(got) != 0 {
		t.Errorf("expected no tags, got %v", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"fitness":    "fitness",
		"#work":      "work",
		"self care":  "selfcare",
		" 读书-笔记 ": "读书笔记",
		"#!?":        "",
		"":           "",
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
		if want != "" {
			if got := Extract("#" + want); len(got) != 1 || got[0] != want {
				t.Errorf("Extract(#%s) = %v, want [%s]", want, got, want)
			}
		}
	}
}
