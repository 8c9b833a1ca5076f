// Package render draws problem trees for terminals and for tooling.
package render

import (
	"github.com/dkoosis/copyproblem/pkg/diagnostic"
	"github.com/dkoosis/copyproblem/pkg/problem"
)

// Renderer converts file nodes to formatted output.
type Renderer interface {
	Render(files []problem.FileNode) string
}

// row is one resolved problem under a file.
type row struct {
	problem.Resolved
	Node     problem.Node
	Severity diagnostic.Severity
}

func rows(f problem.FileNode) []row {
	out := make([]row, 0, len(f.Children))
	for _, child := range f.Children {
		if _, nested := child.(problem.FileNode); nested {
			continue
		}
		out = append(out, row{
			Resolved: problem.ResolveNode(child),
			Node:     child,
			Severity: problem.NodeSeverity(child),
		})
	}
	return out
}
