package site

import (
	"strings"

	"golang.org/x/net/html"
)

// Heading is an h1..h6 element of a rendered page body.
type Heading struct {
	Level int
	Text  string
}

// extractHeadings tokenizes an HTML fragment and collects heading text with
// entities decoded, nested tags dropped and whitespace collapsed.
func extractHeadings(fragment string) []Heading {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var (
		out   []Heading
		level int
		text  strings.Builder
	)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return out
		case html.StartTagToken:
			name, _ := z.TagName()
			if l := headingLevel(name); l > 0 && level == 0 {
				level = l
				text.Reset()
			}
		case html.TextToken:
			if level > 0 {
				text.Write(z.Text())
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if l := headingLevel(name); l > 0 && l == level {
				out = append(out, Heading{Level: level, Text: strings.Join(strings.Fields(text.String()), " ")})
				level = 0
			}
		}
	}
}

func headingLevel(tag []byte) int {
	if len(tag) != 2 || tag[0] != 'h' || tag[1] < '1' || tag[1] > '6' {
		return 0
	}
	return int(tag[1] - '0')
}
