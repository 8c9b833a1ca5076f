// Package panel is an interactive Problems panel: a tree of files and
// their problems with the copy commands bound to keys.
package panel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/copyproblem/internal/clipboard"
	"github.com/dkoosis/copyproblem/internal/command"
	"github.com/dkoosis/copyproblem/internal/config"
	"github.com/dkoosis/copyproblem/internal/logging"
	"github.com/dkoosis/copyproblem/internal/menu"
	"github.com/dkoosis/copyproblem/pkg/problem"
	"github.com/dkoosis/copyproblem/pkg/render"
)

// Deps are the collaborators of the panel.
type Deps struct {
	Dispatcher *command.Dispatcher
	Store      *config.Store
	Menu       *menu.Group
	Clipboard  clipboard.Sink
	Log        hclog.Logger
}

// row is one visible line: a file header (child < 0) or a problem.
type row struct {
	file  int
	child int
}

// Model is the bubbletea model of the panel.
type Model struct {
	ctx   context.Context
	deps  Deps
	log   hclog.Logger
	files []problem.FileNode
	rows  []row

	selected int
	keys     keyMap
	help     help.Model
	viewport viewport.Model
	theme    render.Theme
	term     *render.Terminal

	status string
	width  int
	height int
	ready  bool
}

// New returns a panel over files.
func New(ctx context.Context, files []problem.FileNode, deps Deps) Model {
	theme := render.ThemeByName(deps.Store.Snapshot().Settings.Theme)
	m := Model{
		ctx:      ctx,
		deps:     deps,
		log:      logging.OrNull(deps.Log).Named("panel"),
		files:    files,
		keys:     defaultKeys(),
		help:     help.New(),
		viewport: viewport.New(0, 0),
		theme:    theme,
		term:     render.NewTerminal(theme, 80),
	}
	for fi, f := range files {
		m.rows = append(m.rows, row{file: fi, child: -1})
		for ci := range f.Children {
			m.rows = append(m.rows, row{file: fi, child: ci})
		}
	}
	m.keys.Standard.SetEnabled(deps.Menu.HasStandardCopy())
	return m
}

// Run starts the interactive panel and blocks until it quits.
func Run(ctx context.Context, files []problem.FileNode, deps Deps) error {
	program := tea.NewProgram(New(ctx, files, deps), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run panel: %w", err)
	}
	return nil
}

type copiedMsg struct {
	text string
	err  error
}

type settingsMsg struct {
	status string
	err    error
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.selected > 0 {
				m.selected--
				m.refresh()
			}
		case key.Matches(msg, m.keys.Down):
			if m.selected < len(m.rows)-1 {
				m.selected++
				m.refresh()
			}
		case key.Matches(msg, m.keys.Copy):
			return m, m.copyPlus()
		case key.Matches(msg, m.keys.Standard):
			return m, m.copyStandard()
		case key.Matches(msg, m.keys.Relative):
			return m, m.toggle("relative path", func(s *config.Settings) { s.UseRelativePath = !s.UseRelativePath })
		case key.Matches(msg, m.keys.Hide):
			return m, m.toggle("standard copy", func(s *config.Settings) { s.HideStandardCopyAction = !s.HideStandardCopyAction })
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.term = render.NewTerminal(m.theme, msg.Width)
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-4, 3)
		m.ready = true
		m.refresh()
	case copiedMsg:
		switch {
		case msg.err == nil:
			m.status = "Copied: " + firstLine(msg.text)
		case errors.Is(msg.err, command.ErrNoSelection):
			m.status = "Nothing to copy"
		default:
			m.status = "Failed to copy: " + msg.err.Error()
		}
	case settingsMsg:
		if msg.err != nil {
			m.status = "Settings not saved: " + msg.err.Error()
		} else {
			m.status = msg.status
		}
		m.keys.Standard.SetEnabled(m.deps.Menu.HasStandardCopy())
	}
	return m, nil
}

// Selection returns the command selection for the highlighted row.
func (m Model) Selection() command.Selection {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return command.Selection{}
	}
	r := m.rows[m.selected]
	f := &m.files[r.file]
	if r.child < 0 {
		return command.Selection{Node: *f}
	}
	node := f.Children[r.child]
	return command.Selection{
		Node:     node,
		File:     f,
		Provider: standardCopy{clip: m.deps.Clipboard, node: node},
	}
}

func (m Model) copyPlus() tea.Cmd {
	sel := m.Selection()
	d := m.deps.Dispatcher
	ctx := m.ctx
	return func() tea.Msg {
		text, err := d.CopyProblemFromPanel(ctx, sel)
		return copiedMsg{text: text, err: err}
	}
}

func (m Model) copyStandard() tea.Cmd {
	if !m.deps.Menu.HasStandardCopy() {
		return nil
	}
	sel := m.Selection()
	if sel.Node == nil {
		return nil
	}
	p := standardCopy{clip: m.deps.Clipboard, node: sel.Node}
	return func() tea.Msg {
		err := p.PerformCopy()
		return copiedMsg{text: sel.Node.Text(), err: err}
	}
}

func (m Model) toggle(what string, fn func(*config.Settings)) tea.Cmd {
	st := m.deps.Store
	return func() tea.Msg {
		snap, err := st.Update(func(s *config.Settings) error {
			fn(s)
			return nil
		})
		if err != nil {
			return settingsMsg{err: err}
		}
		return settingsMsg{status: fmt.Sprintf("Toggled %s (settings v%d)", what, snap.Version)}
	}
}

// standardCopy copies a node's own text, as the panel's built-in copy
// action does.
type standardCopy struct {
	clip clipboard.Sink
	node problem.Node
}

func (s standardCopy) PerformCopy() error {
	if s.clip == nil {
		return errors.New("no clipboard")
	}
	return s.clip.Write(s.node.Text())
}

func (m *Model) refresh() {
	lines := make([]string, len(m.rows))
	for i, r := range m.rows {
		f := m.files[r.file]
		if r.child < 0 {
			lines[i] = m.term.FileRow(f, i == m.selected)
			continue
		}
		lines[i] = m.term.Row(f.Children[r.child], 3, i == m.selected)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))

	switch {
	case m.selected < m.viewport.YOffset:
		m.viewport.SetYOffset(m.selected)
	case m.viewport.Height > 0 && m.selected >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.selected - m.viewport.Height + 1)
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Loading problems..."
	}
	title := m.theme.Bold.Render("Problems") + m.theme.Muted.Render(fmt.Sprintf("  %d files", len(m.files)))
	status := m.theme.Muted.Render(runewidth.Truncate(m.status, max(m.width, 10), "…"))
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.viewport.View(),
		m.menuBar(),
		status,
		m.help.View(m.keys),
	)
}

func (m Model) menuBar() string {
	var items []string
	for _, a := range m.deps.Menu.Actions() {
		hint := "?"
		switch {
		case a.ID == menu.CopyProblemPlusID:
			hint = m.keys.Copy.Help().Key
		case a.IsStandardCopy():
			hint = m.keys.Standard.Help().Key
		}
		items = append(items, "["+hint+"] "+a.Text)
	}
	return m.theme.Primary.Render(strings.Join(items, "  "))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}
