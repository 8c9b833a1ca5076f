package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/dkoosis/copyproblem/internal/notify"
	"github.com/dkoosis/copyproblem/pkg/diagnostic"
	"github.com/dkoosis/copyproblem/pkg/document"
	"github.com/dkoosis/copyproblem/pkg/problem"
)

// CopyCurrentLine copies the trimmed text of the line holding offset,
// formatted with the single-problem template.
func (d *Dispatcher) CopyCurrentLine(ctx context.Context, doc *document.Document, offset int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if doc == nil {
		return "", d.fail(fmt.Errorf("copy current line: no document"))
	}
	s := d.store.Snapshot().Settings
	line := doc.LineOf(offset)
	info := problem.New(strings.TrimSpace(doc.LineText(line)), d.FileLabel(doc.Path(), s), line+1, diagnostic.Info)

	text := s.Templates().Problem(info)
	if err := d.deliver(text); err != nil {
		return "", err
	}
	d.notifier.Notify(notify.Notification{Title: "Line copied", Body: text, Level: notify.Info})
	return text, nil
}
