// Package command implements the three copy commands on top of the
// diagnostics, formatting and clipboard packages.
package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/dkoosis/copyproblem/internal/clipboard"
	"github.com/dkoosis/copyproblem/internal/config"
	"github.com/dkoosis/copyproblem/internal/logging"
	"github.com/dkoosis/copyproblem/internal/notify"
	"github.com/dkoosis/copyproblem/pkg/diagnostic"
	"github.com/dkoosis/copyproblem/pkg/problem"
)

var (
	// ErrNoProblem means no diagnostic or fallback applied at the cursor.
	ErrNoProblem = errors.New("no problem found")
	// ErrNoSelection means the panel selection yielded nothing to copy.
	ErrNoSelection = errors.New("nothing selected")
)

// Dispatcher runs commands against one settings store, clipboard and
// notifier. Each command reads a single settings snapshot when it starts.
type Dispatcher struct {
	store    *config.Store
	clip     clipboard.Sink
	notifier notify.Notifier
	log      hclog.Logger
	builder  *problem.Builder

	// wd returns the directory relative labels are computed against when
	// no project root is configured.
	wd func() (string, error)
}

// New returns a Dispatcher. A nil notifier discards notifications; a nil
// logger is silent.
func New(store *config.Store, clip clipboard.Sink, notifier notify.Notifier, log hclog.Logger) *Dispatcher {
	log = logging.OrNull(log).Named("command")
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Dispatcher{
		store:    store,
		clip:     clip,
		notifier: notifier,
		log:      log,
		builder:  problem.NewBuilder(diagnostic.NewExtractor(log)),
		wd:       os.Getwd,
	}
}

// Settings returns the current settings snapshot.
func (d *Dispatcher) Settings() config.Snapshot {
	return d.store.Snapshot()
}

// FileLabel returns the label used for the file at path: its base name,
// or the slash-separated path relative to the project root when
// use_relative_path is on. Paths outside the root keep their base name.
func (d *Dispatcher) FileLabel(path string, s config.Settings) string {
	if strings.TrimSpace(path) == "" {
		return ""
	}
	base := filepath.Base(path)
	if !s.UseRelativePath {
		return base
	}
	root := s.ProjectRoot
	if root == "" {
		wd, err := d.wd()
		if err != nil {
			d.log.Debug("no working directory for relative label", "error", err)
			return base
		}
		root = wd
	}
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(root, abs)
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return base
	}
	return filepath.ToSlash(rel)
}

// deliver writes text to the clipboard. Failures are reported to the
// user and returned wrapped.
func (d *Dispatcher) deliver(text string) error {
	if err := d.clip.Write(text); err != nil {
		return d.fail(fmt.Errorf("copy to clipboard: %w", err))
	}
	d.log.Info("copied to clipboard", "text", text)
	return nil
}

func (d *Dispatcher) fail(err error) error {
	d.log.Error("command failed", "error", err)
	d.notifier.Notify(FailureNotification(err))
	return &reportedError{err: err}
}

// FailureNotification is the error notification shown for a failed copy.
func FailureNotification(err error) notify.Notification {
	return notify.Notification{
		Title: "Error",
		Body:  "Failed to copy: " + err.Error(),
		Level: notify.Error,
	}
}

// reportedError marks an error the dispatcher already notified the user of.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Reported reports whether err was already shown to the user as a
// notification by the dispatcher.
func Reported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// settle waits for the clipboard after delegating a copy.
func settle(ctx context.Context, wait time.Duration) error {
	if wait <= 0 {
		return nil
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
