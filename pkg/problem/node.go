package problem

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/dkoosis/copyproblem/pkg/diagnostic"
)

// Node is an entry in the Problems panel tree: a file grouping or one
// diagnostic. The concrete type says which structural information the
// panel had for the entry.
type Node interface {
	Text() string
}

// FileNode groups the problems of one file.
type FileNode struct {
	Name     string // display text, usually the base name
	Path     string // full or project-relative path; may be empty
	Children []Node
}

// ProblemNodeWithLineField is a problem whose 0-based line is known as a
// value of unspecified numeric type.
type ProblemNodeWithLineField struct {
	Label string
	Line  any
	Level diagnostic.Severity
}

// ProblemNodeWithLineAccessor is a problem whose 0-based line is
// available through a call that may fail.
type ProblemNodeWithLineAccessor struct {
	Label    string
	LineFunc func() (int, error)
	Level    diagnostic.Severity
}

// OpaqueTextNode is a problem known only by its display text.
type OpaqueTextNode struct {
	Label string
}

func (n FileNode) Text() string                    { return n.Name }
func (n ProblemNodeWithLineField) Text() string    { return n.Label }
func (n ProblemNodeWithLineAccessor) Text() string { return n.Label }
func (n OpaqueTextNode) Text() string              { return n.Label }

// NodeSeverity returns the severity shown for n. Nodes that carry no
// severity report Info.
func NodeSeverity(n Node) diagnostic.Severity {
	switch v := n.(type) {
	case ProblemNodeWithLineField:
		return v.Level
	case ProblemNodeWithLineAccessor:
		return v.Level
	default:
		return diagnostic.Info
	}
}

var (
	fileLabelPattern  = regexp.MustCompile(`^[^'"\s]+\.\w{1,5}\s*$`)
	lineSuffixPattern = regexp.MustCompile(`^(.+?)\s*:\s*(\d+)\s*$`)
)

// IsFileLabel reports whether text looks like a file name: one token with
// an extension of 1 to 5 word characters and no quotes.
func IsFileLabel(text string) bool {
	return fileLabelPattern.MatchString(text)
}

// ClassifyText builds a node from display text alone.
func ClassifyText(text string) Node {
	if IsFileLabel(text) {
		return FileNode{Name: strings.TrimSpace(text)}
	}
	return OpaqueTextNode{Label: text}
}

// LineMethod names how a node's line number was resolved.
type LineMethod int

const (
	LineUnresolved LineMethod = iota
	LineFromField
	LineFromAccessor
	LineFromText
)

func (m LineMethod) String() string {
	switch m {
	case LineFromField:
		return "field"
	case LineFromAccessor:
		return "accessor"
	case LineFromText:
		return "text"
	default:
		return "unresolved"
	}
}

// Resolved is a problem node reduced to its description and line.
type Resolved struct {
	Description string
	Line        int // 1-based, 0 when unresolved
	Method      LineMethod
}

// ResolveNode recovers the description and 1-based line of a problem
// node. Field and accessor values are 0-based and shifted by one; a
// trailing ": <digits>" suffix in the text is taken as-is and removed
// from the description. When nothing yields a line, Line is 0.
func ResolveNode(n Node) Resolved {
	text := n.Text()
	switch v := n.(type) {
	case ProblemNodeWithLineField:
		if line, err := cast.ToIntE(v.Line); err == nil && v.Line != nil && line >= 0 {
			return Resolved{Description: text, Line: line + 1, Method: LineFromField}
		}
	case ProblemNodeWithLineAccessor:
		if line, ok := callLine(v.LineFunc); ok {
			return Resolved{Description: text, Line: line + 1, Method: LineFromAccessor}
		}
	}
	if desc, line, ok := SplitLineSuffix(text); ok {
		return Resolved{Description: desc, Line: line, Method: LineFromText}
	}
	return Resolved{Description: text}
}

func callLine(fn func() (int, error)) (line int, ok bool) {
	if fn == nil {
		return 0, false
	}
	defer func() {
		if recover() != nil {
			line, ok = 0, false
		}
	}()
	line, err := fn()
	if err != nil || line < 0 {
		return 0, false
	}
	return line, true
}

// SplitLineSuffix splits "Unused import directive :14" into its
// description and line.
func SplitLineSuffix(text string) (desc string, line int, ok bool) {
	m := lineSuffixPattern.FindStringSubmatch(text)
	if m == nil {
		return "", 0, false
	}
	line, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return strings.TrimSpace(m[1]), line, true
}

// Item is one entry of a multi-problem record.
type Item struct {
	Index       int // 1-based position
	Description string
	Line        int
}

// Collect resolves children in order. Nested file nodes are skipped;
// duplicates are kept.
func Collect(children []Node) []Item {
	items := make([]Item, 0, len(children))
	for _, child := range children {
		if _, isFile := child.(FileNode); isFile {
			continue
		}
		r := ResolveNode(child)
		items = append(items, Item{
			Index:       len(items) + 1,
			Description: r.Description,
			Line:        r.Line,
		})
	}
	return items
}

// Group is a multi-problem record for one file.
type Group struct {
	FileLabel string
	Items     []Item
}

// CollectFile builds the Group for a file node. label overrides the
// node's own text when non-empty.
func CollectFile(n FileNode, label string) Group {
	if label == "" {
		label = strings.TrimSpace(n.Name)
	}
	return Group{FileLabel: label, Items: Collect(n.Children)}
}

func (g Group) String() string {
	return fmt.Sprintf("%s (%d problems)", g.FileLabel, len(g.Items))
}
