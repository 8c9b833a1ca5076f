// Package notify shows short user notifications.
package notify

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/dkoosis/copyproblem/pkg/render"
)

// Level is the notification kind.
type Level int

const (
	Info Level = iota
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Notification is one message for the user.
type Notification struct {
	Title string
	Body  string
	Level Level
}

// Notifier delivers notifications.
type Notifier interface {
	Notify(n Notification)
}

// Terminal writes notifications to a terminal stream. Styling is applied
// only when the stream is a TTY.
type Terminal struct {
	out    io.Writer
	theme  render.Theme
	styled bool
	mu     sync.Mutex
}

// NewTerminal returns a notifier writing to out.
func NewTerminal(out io.Writer, theme render.Theme) *Terminal {
	return &Terminal{out: out, theme: theme, styled: isTTY(out)}
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Notify writes n as a single line.
func (t *Terminal) Notify(n Notification) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintln(t.out, t.format(n))
}

func (t *Terminal) format(n Notification) string {
	if !t.styled {
		if n.Body == "" {
			return n.Title
		}
		return n.Title + ": " + n.Body
	}
	var icon string
	var style lipgloss.Style
	switch n.Level {
	case Error:
		icon, style = t.theme.Icons.Error, t.theme.Error
	case Warning:
		icon, style = t.theme.Icons.Warning, t.theme.Warning
	default:
		icon, style = t.theme.Icons.Copied, t.theme.Success
	}
	out := style.Render(icon+" ") + t.theme.Bold.Render(n.Title)
	if n.Body != "" {
		out += " " + t.theme.Muted.Render(n.Body)
	}
	return out
}

// Recorder keeps notifications in memory.
type Recorder struct {
	mu   sync.Mutex
	list []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = append(r.list, n)
}

// All returns the recorded notifications in order.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.list...)
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.list) == 0 {
		return Notification{}, false
	}
	return r.list[len(r.list)-1], true
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Notify(Notification) {}
