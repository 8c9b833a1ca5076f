package magetasks

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/magefile/mage/sh"
)

// Out receives task output.
var Out io.Writer = os.Stdout

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// PrintHeader prints a section header.
func PrintHeader(title string) {
	fmt.Fprintf(Out, "\n%s\n%s\n", headerStyle.Render(title), strings.Repeat("─", max(len(title), 3)))
}

// PrintSuccess prints a success message.
func PrintSuccess(msg string) {
	fmt.Fprintln(Out, successStyle.Render("✓ "+msg))
}

// PrintWarning prints a warning message.
func PrintWarning(msg string) {
	fmt.Fprintln(Out, warningStyle.Render("! "+msg))
}

// PrintError prints an error message.
func PrintError(msg string) {
	fmt.Fprintln(Out, errorStyle.Render("✗ "+msg))
}

// Run runs a command with its output attached, labelled in the log.
func Run(label, cmd string, args ...string) error {
	fmt.Fprintf(Out, "• %s\n", label)
	if err := sh.RunV(cmd, args...); err != nil {
		PrintError(label + " failed")
		return err
	}
	return nil
}

// RunOptional is Run for tools that may not be installed; a missing tool
// is reported and skipped.
func RunOptional(install, label, cmd string, args ...string) error {
	err := Run(label, cmd, args...)
	if IsCommandNotFound(err) {
		PrintWarning(fmt.Sprintf("%s not found (install: go install %s)", cmd, install))
		return nil
	}
	return err
}
