package problem

import (
	"strings"

	"github.com/dkoosis/copyproblem/pkg/diagnostic"
)

// lineHints are fragments that usually mark a warning on a source line.
var lineHints = []string{"unused", "never used", "deprecated"}

// FromSelection describes a selected span when no marker was found.
func FromSelection(selected, fileLabel string, line int) (Info, bool) {
	if selected == "" {
		return Info{}, false
	}
	return New("Selected text: "+selected, fileLabel, line, diagnostic.Info), true
}

// FromLineHint reports a likely problem on lineText when it mentions one
// of the usual warning words.
func FromLineHint(lineText, fileLabel string, line int) (Info, bool) {
	text := strings.TrimSpace(lineText)
	lower := strings.ToLower(text)
	for _, hint := range lineHints {
		if strings.Contains(lower, hint) {
			return New("Potential issue in line: "+text, fileLabel, line, diagnostic.Warning), true
		}
	}
	return Info{}, false
}
