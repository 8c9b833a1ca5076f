package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/copyproblem/internal/config"
	"github.com/dkoosis/copyproblem/pkg/sarif"
)

const mainKt = `package demo

import foo.Bar

fun main() {
    val x = 1
}
`

type workspace struct {
	dir    string
	doc    string
	config string
}

func newWorkspace(t *testing.T) workspace {
	t.Helper()
	dir := t.TempDir()
	w := workspace{
		dir:    dir,
		doc:    filepath.Join(dir, "src", "Main.kt"),
		config: filepath.Join(dir, "settings", "config.yaml"),
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(w.doc), 0o755))
	require.NoError(t, os.WriteFile(w.doc, []byte(mainKt), 0o644))
	t.Setenv(config.EnvConfig, w.config)
	t.Setenv("COPYPROBLEM_LOG_LEVEL", "off")
	return w
}

func (w workspace) write(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(w.dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func (w workspace) sarif(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := sarif.NewBuilder("detekt", "1.23").
		AddResult("UnusedImports", "warning", "Unused import directive", w.doc, 3, 1).
		WriteTo(&buf)
	require.NoError(t, err)
	return w.write(t, "lint.sarif", buf.String())
}

func runCLI(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_CopiesProblemAtCursor_When_SARIFResultContainsCursor(t *testing.T) {
	w := newWorkspace(t)
	lint := w.sarif(t)

	code, stdout, stderr := runCLI(t, "", "at", "--print", "--file", w.doc, "--line", "3", "--col", "5", "-d", lint)

	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, "In file Main.kt - Unused import directive (Line № 3)\n", stdout)
}

func TestRun_ReadsSARIFFromStdin_When_DiagnosticsIsDash(t *testing.T) {
	w := newWorkspace(t)
	data, err := os.ReadFile(w.sarif(t))
	require.NoError(t, err)

	code, stdout, _ := runCLI(t, string(data), "at", "--print", "--file", w.doc, "--line", "3", "-d", "-")

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Unused import directive")
}

func TestRun_UsesRelativeLabel_When_RelativeFlagAndRootGiven(t *testing.T) {
	w := newWorkspace(t)
	lint := w.sarif(t)

	code, stdout, _ := runCLI(t, "", "at", "--print", "--relative", "--root", w.dir, "--file", w.doc, "--line", "3", "-d", lint)

	assert.Equal(t, 0, code)
	assert.Equal(t, "In file src/Main.kt - Unused import directive (Line № 3)\n", stdout)
}

func TestRun_WarnsAndExitsOne_When_NoProblemAtCursor(t *testing.T) {
	w := newWorkspace(t)
	lint := w.sarif(t)

	code, stdout, stderr := runCLI(t, "", "at", "--print", "--threshold", "5", "--file", w.doc, "--line", "6", "-d", lint)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "No problem found: Place cursor on a warning or error and try again")
}

func TestRun_UsesSelection_When_NoDiagnosticsGiven(t *testing.T) {
	w := newWorkspace(t)

	code, stdout, _ := runCLI(t, "", "at", "--print", "--file", w.doc, "--line", "6", "--selection", "x is shadowed")

	assert.Equal(t, 0, code)
	assert.Equal(t, "In file Main.kt - Selected text: x is shadowed (Line № 6)\n", stdout)
}

func TestRun_TakesDocumentFromMarkerDump_When_FileFlagOmitted(t *testing.T) {
	w := newWorkspace(t)
	dump := w.write(t, "markers.json", `{
  "path": "`+filepath.ToSlash(w.doc)+`",
  "markers": [
    {"start": 0, "end": 11, "kind": "text", "value": "Package name mismatch"},
    {"start": 14, "end": 27, "kind": "diagnostic", "severity": "ERROR", "tooltip": "<html><body>Unresolved reference <code>Bar</code></body></html>"}
  ]
}`)

	code, stdout, stderr := runCLI(t, "", "at", "--print", "--offset", "3", "-d", dump)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "In file Main.kt - Package name mismatch (Line № 1)\n", stdout)

	code, stdout, _ = runCLI(t, "", "at", "--print", "--offset", "20", "-d", dump)
	require.Equal(t, 0, code)
	assert.Equal(t, "In file Main.kt - Unresolved reference Bar (Line № 3)\n", stdout)
}

func TestRun_FailsWithExitTwo_When_DiagnosticsUnrecognized(t *testing.T) {
	w := newWorkspace(t)
	bad := w.write(t, "bad.json", `{"hello": "world"}`)

	code, stdout, stderr := runCLI(t, "", "at", "--print", "--file", w.doc, "-d", bad)

	assert.Equal(t, 2, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "unrecognized format")
}

func TestRun_FailsWithExitTwo_When_DocumentMissing(t *testing.T) {
	newWorkspace(t)

	code, _, stderr := runCLI(t, "", "at", "--print")

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "no document")
}

func TestRun_NotifiesFailure_When_DocumentUnreadable(t *testing.T) {
	w := newWorkspace(t)

	code, stdout, stderr := runCLI(t, "", "at", "--print", "--file", filepath.Join(w.dir, "nope.kt"))

	assert.Equal(t, 2, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Error: Failed to copy: load document:")
}

func TestRun_NotifiesFailureOnce_When_ClipboardFails(t *testing.T) {
	w := newWorkspace(t)
	lint := w.sarif(t)
	// The stdout writer of --print fails like an unavailable clipboard.
	var errOut bytes.Buffer
	code := run([]string{"at", "--print", "--file", w.doc, "--line", "3", "-d", lint},
		strings.NewReader(""), failingWriter{}, &errOut)

	assert.Equal(t, 2, code)
	assert.Equal(t, 1, strings.Count(errOut.String(), "Failed to copy:"), errOut.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("stdout closed") }

func TestRun_RejectsThreshold_When_NotPositive(t *testing.T) {
	w := newWorkspace(t)

	code, _, stderr := runCLI(t, "", "at", "--print", "--threshold", "0", "--file", w.doc)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "config validation failed")
}

func TestRun_CopiesCurrentLine(t *testing.T) {
	w := newWorkspace(t)

	code, stdout, stderr := runCLI(t, "", "line", "--print", "--file", w.doc, "--line", "5")

	assert.Equal(t, 0, code)
	assert.Equal(t, "In file Main.kt - fun main() { (Line № 5)\n", stdout)
	assert.Contains(t, stderr, "Line copied")
}

const problemsTree = `Main.kt
  Unused import directive :14
  Val never used :27
Util.kt
`

func TestRun_CopiesAllFileProblems_When_FileSelectedInTree(t *testing.T) {
	w := newWorkspace(t)
	tree := w.write(t, "problems.txt", problemsTree)

	code, stdout, _ := runCLI(t, "", "panel", "--print", "--tree", tree, "--select", "Main.kt")

	assert.Equal(t, 0, code)
	assert.Equal(t, "Problems in file Main.kt:\n"+
		"1. Unused import directive (Line № 14)\n"+
		"2. Val never used (Line № 27)\n", stdout)
}

func TestRun_CopiesOneProblem_When_ProblemSelectedInTree(t *testing.T) {
	newWorkspace(t)

	code, stdout, _ := runCLI(t, problemsTree, "panel", "--print", "--tree", "-", "--select", "Main.kt#2")

	assert.Equal(t, 0, code)
	assert.Equal(t, "In file Main.kt - Val never used (Line № 27)\n", stdout)
}

func TestRun_CopiesFileLabel_When_SelectedFileHasNoProblems(t *testing.T) {
	newWorkspace(t)

	code, stdout, stderr := runCLI(t, problemsTree, "panel", "--print", "--tree", "-", "--select", "Util.kt")

	// A file label alone is still something to copy.
	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, "In file Util.kt - Problem (Line № 1)\n", stdout)
}

func TestRun_FailsWithExitTwo_When_SelectionUnknown(t *testing.T) {
	newWorkspace(t)

	code, _, stderr := runCLI(t, problemsTree, "panel", "--print", "--tree", "-", "--select", "Other.kt")

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "no such file")
}

func TestRun_RendersPlainPanel_When_StdoutIsNotTerminal(t *testing.T) {
	w := newWorkspace(t)
	lint := w.sarif(t)

	code, stdout, _ := runCLI(t, "", "panel", "-d", lint)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Main.kt")
	assert.Contains(t, stdout, "[Warning] Unused import directive")
}

func TestRun_RendersJSONPanel(t *testing.T) {
	w := newWorkspace(t)
	lint := w.sarif(t)

	code, stdout, _ := runCLI(t, "", "panel", "-d", lint, "--format", "json")

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, `"description": "Unused import directive"`)
}

func TestRun_RejectsMarkerDump_When_UsedForPanel(t *testing.T) {
	w := newWorkspace(t)
	dump := w.write(t, "markers.json", `{"path": "Main.kt", "markers": [{"start": 0, "end": 1}]}`)

	code, _, stderr := runCLI(t, "", "panel", "-d", dump)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "no Problems tree")
}

func TestRun_PersistsSetting_When_ConfigSet(t *testing.T) {
	w := newWorkspace(t)

	code, stdout, stderr := runCLI(t, "", "config", "set", "use_relative_path", "true")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "use_relative_path = true")
	assert.FileExists(t, w.config)

	code, stdout, _ = runCLI(t, "", "config", "get", "use_relative_path")
	assert.Equal(t, 0, code)
	assert.Equal(t, "true\n", stdout)

	code, _, _ = runCLI(t, "", "config", "set", "format_pattern", `{file}:{line}\n{description}`)
	require.Equal(t, 0, code)

	code, stdout, _ = runCLI(t, "", "at", "--print", "--root", w.dir, "--file", w.doc, "--line", "6", "--selection", "x")
	assert.Equal(t, 0, code)
	assert.Equal(t, "src/Main.kt:6\nSelected text: x\n", stdout)
}

func TestRun_DoesNotPersistOverrides_When_ConfigSet(t *testing.T) {
	newWorkspace(t)

	code, _, _ := runCLI(t, "", "--threshold", "5", "config", "set", "theme", "mono")
	require.Equal(t, 0, code)

	code, stdout, _ := runCLI(t, "", "config", "get", "proximity_threshold")
	assert.Equal(t, 0, code)
	assert.Equal(t, "100\n", stdout)
}

func TestRun_RestoresDefaults_When_ConfigReset(t *testing.T) {
	newWorkspace(t)

	code, _, _ := runCLI(t, "", "config", "set", "proximity_threshold", "7")
	require.Equal(t, 0, code)
	code, _, _ = runCLI(t, "", "config", "reset")
	require.Equal(t, 0, code)

	code, stdout, _ := runCLI(t, "", "config", "get", "proximity_threshold")
	assert.Equal(t, 0, code)
	assert.Equal(t, "100\n", stdout)
}

func TestRun_ReportsUnknownKey_When_ConfigSet(t *testing.T) {
	newWorkspace(t)

	code, _, stderr := runCLI(t, "", "config", "set", "nope", "1")

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `unknown setting "nope"`)
}

func TestRun_ShowsPathAndSettings(t *testing.T) {
	w := newWorkspace(t)

	code, stdout, _ := runCLI(t, "", "config", "path")
	assert.Equal(t, 0, code)
	assert.Equal(t, w.config+"\n", stdout)

	code, stdout, _ = runCLI(t, "", "config", "show")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "# "+w.config)
	assert.Contains(t, stdout, "proximity_threshold: 100")
}

func TestRun_PrintsVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "--version")

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "dev")
}
