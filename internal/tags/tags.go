// Package tags extracts hashtag-style tags from note content.
package tags

import (
	"regexp"
	"strings"

	"github.com/julianstephens/lifetracks/internal/richtext"
)

// pattern matches '#' followed by ASCII word characters or CJK unified ideographs.
var pattern = regexp.MustCompile(`#[\w\x{4e00}-\x{9fa5}]+`)

// Extract returns every tag in text, in order, without the leading '#'.
// Duplicates are kept.
func Extract(text string) []string {
	matches := pattern.FindAllString(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1:])
	}
	return out
}

var invalid = regexp.MustCompile(`[^\w\x{4e00}-\x{9fa5}]+`)

// Normalize turns free text such as "#self care" into the tag Extract would
// read back ("selfcare"). It returns "" when nothing usable is left.
func Normalize(s string) string {
	return invalid.ReplaceAllString(strings.TrimPrefix(strings.TrimSpace(s), "#"), "")
}

// FromDocument extracts tags from the rendered text of a document, so markup
// around a hashtag never affects the result.
func FromDocument(d richtext.Document) []string {
	return Extract(d.PlainText())
}

// Unique flattens tag lists, keeping the first occurrence of each tag.
func Unique(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range lists {
		for _, t := range l {
			if seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// Recent returns at most n unique tags, taken in list order.
func Recent(lists [][]string, n int) []string {
	all := Unique(lists...)
	if len(all) > n {
		all = all[:n]
	}
	return all
}

// Contains reports whether tag is in list.
func Contains(list []string, tag string) bool {
	for _, t := range list {
		if t == tag {
			return true
		}
	}
	return false
}
