package render

import (
	"strings"

	"github.com/dkoosis/copyproblem/pkg/problem"
)

// Plain renders problem trees as indented text with no ANSI codes.
// Each problem line shows the resolved line number, severity and
// description, in panel order.
type Plain struct{}

// NewPlain creates a plain-text renderer.
func NewPlain() *Plain {
	return &Plain{}
}

// Render formats all file nodes as plain text.
func (p *Plain) Render(files []problem.FileNode) string {
	var sb strings.Builder
	for _, f := range files {
		sb.WriteString(f.Name)
		if f.Path != "" && f.Path != f.Name {
			sb.WriteString("  (" + f.Path + ")")
		}
		sb.WriteString("\n")
		for _, r := range rows(f) {
			sb.WriteString("  ")
			sb.WriteString(lineLabel(r.Line))
			sb.WriteString("  [")
			sb.WriteString(r.Severity.String())
			sb.WriteString("] ")
			sb.WriteString(r.Description)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
