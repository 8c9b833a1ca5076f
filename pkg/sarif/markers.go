package sarif

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/dkoosis/copyproblem/pkg/diagnostic"
	"github.com/dkoosis/copyproblem/pkg/document"
	"github.com/dkoosis/copyproblem/pkg/locate"
	"github.com/dkoosis/copyproblem/pkg/problem"
)

// Diagnostic exposes a result to the text extractor: message text as
// the description, markdown or the tooltip property as rich text, and
// the text property as raw text.
type Diagnostic struct {
	Result Result
}

var levelSeverity = map[string]diagnostic.Severity{
	"error":   diagnostic.Error,
	"warning": diagnostic.Warning,
	"note":    diagnostic.WeakWarning,
	"none":    diagnostic.Info,
}

// Severity maps the result level, or the severity property when set.
func (d Diagnostic) Severity() diagnostic.Severity {
	if p := d.Result.Properties; p != nil && p.Severity != "" {
		return diagnostic.ParseSeverity(p.Severity)
	}
	if sev, ok := levelSeverity[strings.ToLower(d.Result.Level)]; ok {
		return sev
	}
	// SARIF's default level is warning.
	return diagnostic.Warning
}

func (d Diagnostic) Description() (string, bool) {
	return d.Result.Message.Text, d.Result.Message.Text != ""
}

func (d Diagnostic) Tooltip() (string, bool) {
	if p := d.Result.Properties; p != nil && p.Tooltip != "" {
		return p.Tooltip, true
	}
	return d.Result.Message.Markdown, d.Result.Message.Markdown != ""
}

func (d Diagnostic) RawText() (string, error) {
	if p := d.Result.Properties; p != nil && p.Text != "" {
		return p.Text, nil
	}
	return "", diagnostic.ErrNoRawText
}

// SamePath reports whether an artifact URI refers to the file at p.
// Relative URIs match any path that ends with them.
func SamePath(uri, p string) bool {
	a := path.Clean(filepath.ToSlash(NormalizePath(uri)))
	b := path.Clean(filepath.ToSlash(p))
	if a == b {
		return true
	}
	if !path.IsAbs(a) && strings.HasSuffix(b, "/"+a) {
		return true
	}
	return !path.IsAbs(b) && strings.HasSuffix(a, "/"+b)
}

// Markers converts the results located in the file at p into markers
// over doc. Offsets are inclusive rune offsets.
func Markers(sd *Document, doc *document.Document, p string) []locate.Marker {
	var out []locate.Marker
	for _, run := range sd.Runs {
		for _, r := range run.Results {
			if !SamePath(r.URI(), p) {
				continue
			}
			start, end := span(r.Region(), doc, run.ColumnKind != ColumnKindCodePoint)
			out = append(out, locate.Marker{Start: start, End: end, Payload: Diagnostic{Result: r}})
		}
	}
	return out
}

// span resolves a region to inclusive rune offsets. With utf16 set,
// columns and character offsets count UTF-16 code units.
func span(reg Region, doc *document.Document, utf16 bool) (start, end int) {
	offset, at := doc.Offset, func(u int) int { return u }
	if utf16 {
		offset, at = doc.OffsetUTF16, doc.FromUTF16
	}

	if reg.CharOffset != nil {
		start = at(*reg.CharOffset)
		end = start
		if reg.CharLength > 0 {
			end = at(*reg.CharOffset+reg.CharLength) - 1
		}
		if end < start {
			end = start
		}
		return start, end
	}

	line := reg.StartLine
	if line < 1 {
		line = 1
	}
	col := reg.StartColumn
	if col < 1 {
		col = 1
	}
	start = offset(line, col)

	switch {
	case reg.EndLine > 0 || reg.EndColumn > 0:
		endLine := reg.EndLine
		if endLine < line {
			endLine = line
		}
		if reg.EndColumn > 1 {
			end = offset(endLine, reg.EndColumn) - 1
		} else {
			_, end = doc.LineBounds(endLine - 1)
		}
	default:
		_, end = doc.LineBounds(line - 1)
	}
	if end < start {
		end = start
	}
	return start, end
}

// PanelNodes builds the Problems panel tree: one file node per artifact,
// in order of first appearance, with a child per result carrying its
// 0-based line.
func PanelNodes(sd *Document) []problem.FileNode {
	groups := GroupByFile(sd)
	files := make([]problem.FileNode, 0, len(groups))
	for _, g := range groups {
		f := problem.FileNode{Name: path.Base(filepath.ToSlash(g.Key)), Path: g.Key}
		for _, r := range g.Results {
			d := Diagnostic{Result: r}
			var line any
			if sl := r.Region().StartLine; sl > 0 {
				line = sl - 1
			}
			f.Children = append(f.Children, problem.ProblemNodeWithLineField{
				Label: diagnostic.ExtractText(d),
				Line:  line,
				Level: d.Severity(),
			})
		}
		files = append(files, f)
	}
	return files
}
