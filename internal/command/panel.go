package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/dkoosis/copyproblem/internal/config"
	"github.com/dkoosis/copyproblem/internal/notify"
	"github.com/dkoosis/copyproblem/pkg/diagnostic"
	"github.com/dkoosis/copyproblem/pkg/problem"
)

// CopyProvider is the panel's standard copy: it places the selected
// node's own text on the clipboard.
type CopyProvider interface {
	PerformCopy() error
}

// Selection is the Problems panel state for "copy problem from panel".
type Selection struct {
	Node problem.Node
	// File is the file node enclosing Node; nil for a file node itself.
	File *problem.FileNode
	// Provider is used when the node has no usable text.
	Provider CopyProvider
}

// CopyProblemFromPanel copies the selected panel entry. A file node with
// problems becomes a multi-problem record; a problem node becomes a
// single record. If neither a description nor a file is known it warns
// and returns ErrNoSelection.
func (d *Dispatcher) CopyProblemFromPanel(ctx context.Context, sel Selection) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s := d.store.Snapshot().Settings
	tmpl := s.Templates()

	var (
		fileLabel   string
		description string
		line        int
	)
	if sel.File != nil {
		fileLabel = d.nodeLabel(*sel.File, s)
	}

	switch n := sel.Node.(type) {
	case nil:
	case problem.FileNode:
		fileLabel = d.nodeLabel(n, s)
		g := problem.CollectFile(n, fileLabel)
		if len(g.Items) > 0 {
			d.log.Debug("copying file problems", "file", g.FileLabel, "count", len(g.Items))
			return d.finish(tmpl.Group(g))
		}
	default:
		r := problem.ResolveNode(n)
		if text := strings.TrimSpace(r.Description); text != "" && !strings.Contains(text, "file://") {
			description = text
			line = r.Line
			d.log.Debug("resolved panel node", "method", r.Method.String(), "line", line)
		}
	}

	if description == "" && sel.Provider != nil {
		text, err := d.viaProvider(ctx, sel.Provider, s)
		if err != nil {
			return "", err
		}
		description = text
	}

	if description == "" && fileLabel == "" {
		d.notifier.Notify(notify.Notification{
			Title: "No Selection",
			Body:  "Could not extract problem information. Try using the standard 'Copy Problem Description' first.",
			Level: notify.Warning,
		})
		return "", ErrNoSelection
	}

	sev := diagnostic.Info
	if sel.Node != nil {
		sev = problem.NodeSeverity(sel.Node)
	}
	return d.finish(tmpl.Problem(problem.New(description, fileLabel, line, sev)))
}

func (d *Dispatcher) finish(text string) (string, error) {
	if err := d.deliver(text); err != nil {
		return "", err
	}
	return text, nil
}

func (d *Dispatcher) nodeLabel(f problem.FileNode, s config.Settings) string {
	if f.Path != "" {
		return d.FileLabel(f.Path, s)
	}
	return strings.TrimSpace(f.Name)
}

// viaProvider delegates to the standard copy, waits for the clipboard to
// settle and returns the new clipboard text, or "" if it did not change.
func (d *Dispatcher) viaProvider(ctx context.Context, p CopyProvider, s config.Settings) (string, error) {
	before, err := d.clip.Read()
	if err != nil {
		d.log.Debug("clipboard unreadable before copy", "error", err)
	}
	if err := p.PerformCopy(); err != nil {
		return "", d.fail(fmt.Errorf("standard copy: %w", err))
	}
	if err := settle(ctx, s.ClipboardSettle()); err != nil {
		return "", err
	}
	after, err := d.clip.Read()
	if err != nil {
		d.log.Debug("clipboard unreadable after copy", "error", err)
		return "", nil
	}
	if after == before {
		return "", nil
	}
	return strings.TrimSpace(after), nil
}
