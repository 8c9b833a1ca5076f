// Package format renders problem records through user templates.
//
// Templates use named placeholders such as {file} or {line}. Each
// formatting context recognizes a fixed set; any other brace token is left
// alone. Substitution is literal and single-pass, so values containing
// placeholder-looking text are never expanded again.
package format

import (
	"strconv"
	"strings"

	"github.com/dkoosis/copyproblem/pkg/problem"
)

// Placeholder names.
const (
	File        = "file"
	Description = "description"
	Line        = "line"
	Index       = "index"
	Problems    = "problems"
)

// Context selects the recognized placeholders.
type Context int

const (
	// Single formats one problem: {file} {description} {line}.
	Single Context = iota
	// Header wraps a problem list: {file} {problems}.
	Header
	// ListItem formats one entry of a list: {index} {description} {line}.
	ListItem
)

var contextPlaceholders = map[Context][]string{
	Single:   {File, Description, Line},
	Header:   {File, Problems},
	ListItem: {Index, Description, Line},
}

// defaults apply to recognized placeholders without a binding.
var defaults = map[string]string{
	File:        problem.DefaultFile,
	Description: problem.DefaultDescription,
	Line:        strconv.Itoa(problem.DefaultLine),
	Index:       "1",
	Problems:    "",
}

// Default templates.
const (
	DefaultPattern            = "In file {file} - {description} (Line № {line})"
	DefaultPatternMultiple    = "Problems in file {file}:\n{problems}"
	DefaultPatternProblemItem = "{index}. {description} (Line № {line})"
)

// Token returns the placeholder token for name, e.g. "{file}".
func Token(name string) string {
	return "{" + name + "}"
}

// Placeholders returns the names recognized in ctx.
func Placeholders(ctx Context) []string {
	return append([]string(nil), contextPlaceholders[ctx]...)
}

// Format substitutes the recognized placeholders of ctx in tmpl.
func Format(tmpl string, ctx Context, bindings map[string]string) string {
	names := contextPlaceholders[ctx]
	pairs := make([]string, 0, 2*len(names))
	for _, name := range names {
		value, ok := bindings[name]
		if !ok {
			value = defaults[name]
		}
		pairs = append(pairs, Token(name), value)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// Templates holds the three user templates.
type Templates struct {
	Single   string
	Multiple string
	Item     string
}

// DefaultTemplates returns the built-in templates.
func DefaultTemplates() Templates {
	return Templates{
		Single:   DefaultPattern,
		Multiple: DefaultPatternMultiple,
		Item:     DefaultPatternProblemItem,
	}
}

// Problem renders one record with the single template.
func (t Templates) Problem(info problem.Info) string {
	return Format(t.Single, Single, map[string]string{
		File:        info.FileLabel,
		Description: info.Description,
		Line:        strconv.Itoa(info.LineNumber),
	})
}

// Group renders a multi-problem record: each item with the item
// template, joined by newlines, then placed in the header template.
func (t Templates) Group(g problem.Group) string {
	lines := make([]string, len(g.Items))
	for i, item := range g.Items {
		lines[i] = Format(t.Item, ListItem, map[string]string{
			Index:       strconv.Itoa(item.Index),
			Description: item.Description,
			Line:        strconv.Itoa(item.Line),
		})
	}
	return Format(t.Multiple, Header, map[string]string{
		File:     g.FileLabel,
		Problems: strings.Join(lines, "\n"),
	})
}
