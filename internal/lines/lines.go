package lines

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	timeToken     = regexp.MustCompile(`(\d{1,2}:\d{2})`)
)

// TimeSentinel sorts untimed events after timed ones within the same day.
const TimeSentinel = "99:99"

// Normalize collapses all whitespace runs (including non-breaking spaces)
// to single spaces and trims both ends.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// StripBullets normalizes s and removes leading bullet glyphs, used before
// a line becomes a field value.
func StripBullets(s string) string {
	return strings.TrimSpace(strings.TrimLeft(Normalize(s), "•*·- "))
}

// FirstTimeToken returns the first H:MM or HH:MM token found in s, or
// TimeSentinel when there is none.
func FirstTimeToken(s string) string {
	if m := timeToken.FindString(s); m != "" {
		return m
	}
	return TimeSentinel
}

// Flatten renders doc to its visible text and returns it as normalized,
// non-empty lines in document order. Script and style contents are skipped.
func Flatten(doc *goquery.Document) []string {
	var out []string
	for _, root := range doc.Nodes {
		var walk func(n *html.Node)
		walk = func(n *html.Node) {
			if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
				return
			}
			if n.Type == html.TextNode {
				if line := Normalize(n.Data); line != "" {
					out = append(out, line)
				}
				return
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
		walk(root)
	}
	return out
}

// FlattenText splits raw text on newlines and returns the normalized,
// non-empty lines. Used where text was already extracted from markup.
func FlattenText(text string) []string {
	var out []string
	for _, raw := range strings.Split(text, "\n") {
		if line := Normalize(raw); line != "" {
			out = append(out, line)
		}
	}
	return out
}
