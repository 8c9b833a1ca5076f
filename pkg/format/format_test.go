package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkoosis/copyproblem/pkg/diagnostic"
	"github.com/dkoosis/copyproblem/pkg/problem"
)

func TestProblem_DefaultTemplate(t *testing.T) {
	info := problem.Info{
		Description: "X is unused",
		FileLabel:   "A.kt",
		LineNumber:  5,
		Severity:    diagnostic.Warning,
	}
	assert.Equal(t, "In file A.kt - X is unused (Line № 5)", DefaultTemplates().Problem(info))
}

func TestFormat_ReplacesAllOccurrences(t *testing.T) {
	got := Format("{file}:{line} {file}", Single, map[string]string{File: "a.go", Line: "3"})
	assert.Equal(t, "a.go:3 a.go", got)
}

func TestFormat_UnrecognizedTokensUntouched(t *testing.T) {
	got := Format("{index} {file} {severity} {problems}", Single, map[string]string{File: "a.go"})
	assert.Equal(t, "{index} a.go {severity} {problems}", got)
}

func TestFormat_MissingBindingsUseDefaults(t *testing.T) {
	got := Format(DefaultPattern, Single, nil)
	assert.Equal(t, "In file Unknown file - Problem (Line № 1)", got)
}

func TestFormat_ValuesAreLiteral(t *testing.T) {
	got := Format("{description} at {line}", Single, map[string]string{
		Description: "regex $1 and {line}",
		Line:        "7",
	})
	assert.Equal(t, "regex $1 and {line} at 7", got)
}

func TestFormat_Idempotent(t *testing.T) {
	bindings := map[string]string{File: "Main.kt", Description: "Val never used", Line: "27"}
	templates := []string{
		DefaultPattern,
		"{file}#{line} {unknown} {description}{description}",
		"no placeholders at all",
		"",
	}
	for _, tmpl := range templates {
		once := Format(tmpl, Single, bindings)
		assert.Equal(t, once, Format(once, Single, bindings), "template %q", tmpl)
	}
}

func TestGroup_DefaultTemplates(t *testing.T) {
	g := problem.Group{
		FileLabel: "Main.kt",
		Items: []problem.Item{
			{Index: 1, Description: "Unused import directive", Line: 14},
			{Index: 2, Description: "Val never used", Line: 27},
		},
	}
	want := "Problems in file Main.kt:\n" +
		"1. Unused import directive (Line № 14)\n" +
		"2. Val never used (Line № 27)"
	assert.Equal(t, want, DefaultTemplates().Group(g))
}

func TestGroup_ZeroLineRenderedAsIs(t *testing.T) {
	g := problem.Group{FileLabel: "a.go", Items: []problem.Item{{Index: 1, Description: "d", Line: 0}}}
	tpl := Templates{Multiple: "{file}: {problems}", Item: "{description}@{line}"}
	assert.Equal(t, "a.go: d@0", tpl.Group(g))
}

func TestGroup_ProblemsBlockNotRescanned(t *testing.T) {
	g := problem.Group{FileLabel: "a.go", Items: []problem.Item{{Index: 1, Description: "mentions {file}", Line: 2}}}
	tpl := Templates{Multiple: "{problems} in {file}", Item: "{description}"}
	assert.Equal(t, "mentions {file} in a.go", tpl.Group(g))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"file", "problems"}, Placeholders(Header))
	assert.Equal(t, "{index}", Token(Index))
}
