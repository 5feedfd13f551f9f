package richtext

import "strings"

// ParseMarkup turns the terse markup accepted on the command line into a
// Document: "- " starts a list item, **x** is bold, ==x== is highlighted,
// and every other newline is a line break.
func ParseMarkup(s string) Document {
	var out Document
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if item, ok := strings.CutPrefix(line, "- "); ok {
			out = append(out, Span{Kind: KindListItem, Text: item})
			continue
		}
		out = append(out, inline(line)...)
		if i < len(lines)-1 && !strings.HasPrefix(lines[i+1], "- ") {
			out = append(out, Span{Kind: KindBreak})
		}
	}
	return normalize(out)
}

func inline(line string) Document {
	var out Document
	for line != "" {
		bi := strings.Index(line, "**")
		hi := strings.Index(line, "==")
		marker, kind, at := "**", KindBold, bi
		if hi >= 0 && (bi < 0 || hi < bi) {
			marker, kind, at = "==", KindHighlight, hi
		}
		if at < 0 {
			break
		}
		end := strings.Index(line[at+2:], marker)
		if end < 0 {
			break
		}
		out = append(out,
			Span{Kind: KindText, Text: line[:at]},
			Span{Kind: kind, Text: line[at+2 : at+2+end]},
		)
		line = line[at+2+end+2:]
	}
	return append(out, Span{Kind: KindText, Text: line})
}
