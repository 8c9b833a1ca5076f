package panel

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/copyproblem/internal/clipboard"
	"github.com/dkoosis/copyproblem/internal/command"
	"github.com/dkoosis/copyproblem/internal/config"
	"github.com/dkoosis/copyproblem/internal/menu"
	"github.com/dkoosis/copyproblem/internal/notify"
	"github.com/dkoosis/copyproblem/pkg/problem"
)

const treeText = `Main.kt
  Unused import directive :14
  Val never used :27

Util.kt
	Redundant semicolon :3
`

type fixture struct {
	model Model
	clip  *clipboard.Memory
	store *config.Store
	group *menu.Group
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	files, err := ParseTree(strings.NewReader(treeText))
	require.NoError(t, err)

	s := config.Default()
	s.ClipboardSettleMS = 0
	store := config.NewStore(afero.NewMemMapFs(), "/cfg/config.yaml", s)
	group := menu.DefaultGroup()
	store.Subscribe(menu.NewCustomizer(group, nil).Listener())
	clip := clipboard.NewMemory("")
	d := command.New(store, clip, &notify.Recorder{}, nil)

	m := New(context.Background(), files, Deps{Dispatcher: d, Store: store, Menu: group, Clipboard: clip})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	return &fixture{model: next.(Model), clip: clip, store: store, group: group}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and runs the resulting command, feeding its message
// back into the model.
func (f *fixture) press(t *testing.T, k string) {
	t.Helper()
	next, cmd := f.model.Update(keyMsg(k))
	f.model = next.(Model)
	if cmd == nil {
		return
	}
	msg := cmd()
	if _, quit := msg.(tea.QuitMsg); quit {
		return
	}
	next, _ = f.model.Update(msg)
	f.model = next.(Model)
}

func TestParseTree(t *testing.T) {
	files, err := ParseTree(strings.NewReader(treeText))
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Equal(t, "Main.kt", files[0].Name)
	assert.Len(t, files[0].Children, 2)
	assert.Equal(t, problem.OpaqueTextNode{Label: "Redundant semicolon :3"}, files[1].Children[0])
}

func TestParseTree_Errors(t *testing.T) {
	_, err := ParseTree(strings.NewReader("  orphan :1\n"))
	assert.ErrorContains(t, err, "before any file")

	_, err = ParseTree(strings.NewReader("Project errors\n"))
	assert.ErrorContains(t, err, "not a file name")
}

func TestSelect(t *testing.T) {
	files, err := ParseTree(strings.NewReader(treeText))
	require.NoError(t, err)

	sel, err := Select(files, "Main.kt")
	require.NoError(t, err)
	assert.IsType(t, problem.FileNode{}, sel.Node)
	assert.Nil(t, sel.File)

	sel, err = Select(files, "Util.kt#1")
	require.NoError(t, err)
	assert.Equal(t, "Redundant semicolon :3", sel.Node.Text())
	require.NotNil(t, sel.File)
	assert.Equal(t, "Util.kt", sel.File.Name)

	_, err = Select(files, "Util.kt#2")
	assert.ErrorContains(t, err, "has 1 problems")
	_, err = Select(files, "Main.kt#x")
	assert.ErrorContains(t, err, "bad problem index")
	_, err = Select(files, "Nope.kt")
	assert.ErrorContains(t, err, "no such file")
}

func TestModel_CopyFileNode(t *testing.T) {
	f := newFixture(t)

	f.press(t, "c")

	assert.Equal(t, []string{"Problems in file Main.kt:\n" +
		"1. Unused import directive (Line № 14)\n" +
		"2. Val never used (Line № 27)"}, f.clip.Writes())
	assert.Contains(t, f.model.status, "Copied: Problems in file Main.kt:")
}

func TestModel_NavigateAndCopyProblem(t *testing.T) {
	f := newFixture(t)

	f.press(t, "j")
	f.press(t, "j")
	f.press(t, "c")

	assert.Equal(t, []string{"In file Main.kt - Val never used (Line № 27)"}, f.clip.Writes())
}

func TestModel_NavigationBounds(t *testing.T) {
	f := newFixture(t)

	f.press(t, "k")
	assert.Equal(t, 0, f.model.selected)

	for range 10 {
		f.press(t, "j")
	}
	assert.Equal(t, len(f.model.rows)-1, f.model.selected)
	assert.Equal(t, "Redundant semicolon :3", f.model.Selection().Node.Text())
}

func TestModel_StandardCopyAndHide(t *testing.T) {
	f := newFixture(t)
	f.press(t, "j")

	f.press(t, "y")
	assert.Equal(t, []string{"Unused import directive :14"}, f.clip.Writes())
	assert.Contains(t, f.model.menuBar(), menu.StandardCopyText)

	f.press(t, "h")
	assert.True(t, f.store.Snapshot().Settings.HideStandardCopyAction)
	assert.False(t, f.group.HasStandardCopy())
	assert.NotContains(t, f.model.menuBar(), menu.StandardCopyText)

	f.press(t, "y")
	assert.Len(t, f.clip.Writes(), 1)
}

func TestModel_ToggleRelative(t *testing.T) {
	f := newFixture(t)

	f.press(t, "l")

	assert.True(t, f.store.Snapshot().Settings.UseRelativePath)
	assert.Contains(t, f.model.status, "relative path")
}

func TestModel_View(t *testing.T) {
	f := newFixture(t)

	view := f.model.View()

	assert.Contains(t, view, "Problems")
	assert.Contains(t, view, "Main.kt")
	assert.Contains(t, view, "Unused import directive")
	assert.Contains(t, view, menu.CopyProblemPlusText)
}

func TestModel_Quit(t *testing.T) {
	f := newFixture(t)

	_, cmd := f.model.Update(keyMsg("q"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
