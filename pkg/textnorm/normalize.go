// Package textnorm turns free-text diagnostic labels into plain text.
//
// Labels produced by editors are often HTML tooltips. Normalize extracts
// the readable part, strips the "Problem" prefix some renderers prepend,
// and collapses whitespace. It never fails: unparseable markup falls back
// to a regex pass, and an empty result becomes Fallback.
package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// Fallback is returned when no text could be recovered.
const Fallback = "Problem"

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	looksLikeMarkup   = regexp.MustCompile(`<[a-zA-Z!/][^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	problemPrefix     = regexp.MustCompile(`^Problem\s*`)

	entityReplacer = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
		"&quot;", `"`,
		"&#39;", "'",
		"&nbsp;", " ",
	)
)

// problemClasses are the class names whose elements hold the message.
var problemClasses = []string{"problem", "error", "warning"}

// IsHTML reports whether s contains something that looks like a tag.
func IsHTML(s string) bool {
	return looksLikeMarkup.MatchString(s)
}

// Normalize returns the plain-text form of raw.
func Normalize(raw string) string {
	var text string
	if IsHTML(raw) {
		text = fromHTML(raw)
	} else {
		text = clean(raw)
	}
	if text == "" {
		return Fallback
	}
	return text
}

// Trim is the trivial normalization used for sources known to be plain.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

func fromHTML(raw string) string {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return StripTags(raw)
	}

	candidates := []string{
		classText(doc),
		elementText(findElement(doc, "body")),
		elementText(doc),
	}
	for _, c := range candidates {
		c = collapse(c)
		if c == "" || c == Fallback {
			continue
		}
		if cleaned := clean(c); cleaned != "" {
			return cleaned
		}
	}
	return StripTags(raw)
}

// StripTags is the regex fallback: tags become spaces, the common
// entities are decoded, whitespace is collapsed and the "Problem" prefix
// removed. An empty result becomes Fallback.
func StripTags(raw string) string {
	text := tagPattern.ReplaceAllString(raw, " ")
	text = entityReplacer.Replace(text)
	text = clean(text)
	if text == "" {
		return Fallback
	}
	return text
}

func clean(s string) string {
	s = collapse(s)
	s = problemPrefix.ReplaceAllString(s, "")
	return strings.TrimSpace(norm.NFC.String(s))
}

func collapse(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// classText joins the text of every element carrying a problem class.
func classText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasProblemClass(n) {
			if t := collapse(elementText(n)); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}

func hasProblemClass(n *html.Node) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, class := range strings.Fields(attr.Val) {
			for _, want := range problemClasses {
				if class == want {
					return true
				}
			}
		}
	}
	return false
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// elementText concatenates text nodes below n. Block-level boundaries
// become spaces so adjacent paragraphs do not run together.
func elementText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "head", "title":
				return
			case "br", "p", "div", "li", "tr", "td", "table", "ul", "ol", "hr":
				b.WriteByte(' ')
				defer b.WriteByte(' ')
			}
		case html.CommentNode, html.DoctypeNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
