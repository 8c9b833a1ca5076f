package command

import (
	"context"
	"fmt"

	"github.com/dkoosis/copyproblem/internal/config"
	"github.com/dkoosis/copyproblem/internal/notify"
	"github.com/dkoosis/copyproblem/pkg/document"
	"github.com/dkoosis/copyproblem/pkg/locate"
	"github.com/dkoosis/copyproblem/pkg/problem"
)

// CursorRequest is the editor state for "copy problem at cursor".
type CursorRequest struct {
	Document  *document.Document
	Markers   []locate.Marker
	Offset    int
	Selection string
}

// CopyProblemAtCursor copies the problem under or near the cursor. A
// marker containing the cursor wins; otherwise the selection and the line
// heuristics are tried before the closest marker. With nothing found it warns and returns ErrNoProblem, leaving
// the clipboard untouched.
func (d *Dispatcher) CopyProblemAtCursor(ctx context.Context, req CursorRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if req.Document == nil {
		return "", d.fail(fmt.Errorf("copy problem at cursor: no document"))
	}
	s := d.store.Snapshot().Settings
	doc := req.Document
	label := d.FileLabel(doc.Path(), s)

	info, found := d.infoAt(req, label, s)
	if !found {
		d.log.Debug("no problem at cursor", "offset", req.Offset, "markers", len(req.Markers))
		d.notifier.Notify(notify.Notification{
			Title: "No problem found",
			Body:  "Place cursor on a warning or error and try again",
			Level: notify.Warning,
		})
		return "", ErrNoProblem
	}

	text := s.Templates().Problem(info)
	if err := d.deliver(text); err != nil {
		return "", err
	}
	return text, nil
}

// infoAt tries, in order: a marker containing the cursor, the selection,
// the line heuristics, and the closest marker within the threshold.
func (d *Dispatcher) infoAt(req CursorRequest, label string, s config.Settings) (problem.Info, bool) {
	doc := req.Document

	if m, ok := locate.Containing(req.Markers, req.Offset); ok {
		d.log.Debug("located marker", "strategy", locate.Containment.String(), "start", m.Start, "end", m.End)
		return d.builder.Build(m, doc, label), true
	}

	line := doc.LineOf(req.Offset)
	if info, ok := problem.FromSelection(req.Selection, label, line+1); ok {
		d.log.Debug("using selection fallback")
		return info, true
	}
	if s.LineHeuristics {
		if info, ok := problem.FromLineHint(doc.LineText(line), label, line+1); ok {
			d.log.Debug("using line heuristic", "line", line+1)
			return info, true
		}
	}

	threshold := s.ProximityThreshold
	if threshold <= 0 {
		threshold = locate.DefaultThreshold
	}
	if m, ok := locate.Closest(req.Markers, req.Offset, threshold); ok {
		d.log.Debug("located marker", "strategy", locate.Nearest.String(), "start", m.Start, "end", m.End)
		return d.builder.Build(m, doc, label), true
	}
	return problem.Info{}, false
}
