package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/copyproblem/pkg/problem"
)

// Terminal renders problem trees as styled terminal output via lipgloss.
type Terminal struct {
	theme Theme
	width int
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

// Render formats all file nodes for terminal display.
func (t *Terminal) Render(files []problem.FileNode) string {
	sections := make([]string, 0, len(files))
	for _, f := range files {
		sections = append(sections, t.renderFile(f))
	}
	return strings.Join(sections, "\n")
}

func (t *Terminal) renderFile(f problem.FileNode) string {
	var sb strings.Builder
	rs := rows(f)
	sb.WriteString(t.theme.Bold.Render(t.theme.Icons.File + " " + f.Name))
	sb.WriteString(t.theme.Muted.Render(fmt.Sprintf(" (%d)", len(rs))))
	sb.WriteString("\n")

	maxLine := 0
	for _, r := range rs {
		if w := len(lineLabel(r.Line)); w > maxLine {
			maxLine = w
		}
	}
	for _, r := range rs {
		sb.WriteString(t.Row(r.Node, maxLine, false))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Row renders one problem node: icon, line column and description,
// truncated to the renderer width. lineWidth pads the line column.
func (t *Terminal) Row(n problem.Node, lineWidth int, selected bool) string {
	res := problem.ResolveNode(n)
	icon, style := t.theme.Severity(problem.NodeSeverity(n))

	prefix := "  "
	if selected {
		prefix = t.theme.Icons.Cursor + " "
	}
	line := padLeft(lineLabel(res.Line), lineWidth)
	head := prefix + icon + " " + line + "  "
	avail := t.width - runewidth.StringWidth(head)
	if avail < 8 {
		avail = 8
	}
	desc := runewidth.Truncate(res.Description, avail, "…")

	out := prefix + style.Render(icon) + " " + t.theme.Muted.Render(line) + "  " + desc
	if selected {
		return t.theme.Selected.Render(out)
	}
	return out
}

// FileRow renders a file node header.
func (t *Terminal) FileRow(f problem.FileNode, selected bool) string {
	prefix := "  "
	if selected {
		prefix = t.theme.Icons.Cursor + " "
	}
	out := prefix + t.theme.Bold.Render(t.theme.Icons.File+" "+f.Name) +
		t.theme.Muted.Render(fmt.Sprintf(" (%d)", len(rows(f))))
	if selected {
		return t.theme.Selected.Render(out)
	}
	return out
}

func lineLabel(line int) string {
	if line <= 0 {
		return "?"
	}
	return strconv.Itoa(line)
}

func padLeft(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}
