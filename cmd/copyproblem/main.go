// copyproblem copies IDE diagnostics to the clipboard as formatted,
// context-rich text ready to paste into a chat or an issue.
//
// Usage:
//
//	copyproblem at --file Main.kt --line 5 --col 9 --diagnostics lint.sarif
//	copyproblem panel --diagnostics lint.sarif --select "Main.kt#2"
//	copyproblem line --file Main.kt --line 12
//	copyproblem config set use_relative_path true
//
// Diagnostics are read from a SARIF 2.1.0 document, an editor marker dump
// or, for the panel, a plain-text Problems tree; the format is sniffed.
//
// Exit codes: 0 copied, 1 no problem found or nothing selected, 2 failure.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dkoosis/copyproblem/internal/clipboard"
	"github.com/dkoosis/copyproblem/internal/command"
	"github.com/dkoosis/copyproblem/internal/config"
	"github.com/dkoosis/copyproblem/internal/logging"
	"github.com/dkoosis/copyproblem/internal/menu"
	"github.com/dkoosis/copyproblem/internal/notify"
	"github.com/dkoosis/copyproblem/internal/version"
	"github.com/dkoosis/copyproblem/pkg/render"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, fs: afero.NewOsFs()}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	return a.exitCode(root.ExecuteContext(ctx))
}

// app holds the global flags and the collaborators built from them before
// any subcommand runs.
type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer
	fs             afero.Fs

	print     bool
	debug     bool
	logLevel  string
	relative  bool
	threshold int
	root      string
	theme     string

	log        hclog.Logger
	resolved   *config.Resolved
	store      *config.Store
	menu       *menu.Group
	clip       clipboard.Sink
	notifier   notify.Notifier
	dispatcher *command.Dispatcher
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "copyproblem",
		Short:         "Copy IDE problems to the clipboard with file and line context",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.BoolVar(&a.print, "print", false, "Write the copied text to stdout instead of the system clipboard")
	pf.BoolVar(&a.debug, "debug", false, "Enable debug logging")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error, off")
	pf.BoolVar(&a.relative, "relative", false, "Label files by their path relative to the project root")
	pf.IntVar(&a.threshold, "threshold", 0, "Proximity threshold in characters for nearby diagnostics")
	pf.StringVar(&a.root, "root", "", "Project root for relative labels (default: working directory)")
	pf.StringVar(&a.theme, "theme", "", "Theme: default, orca, mono")

	root.AddCommand(
		a.atCommand(),
		a.lineCommand(),
		a.panelCommand(),
		a.configCommand(),
	)
	return root
}

// setup resolves settings and wires the command dispatcher.
func (a *app) setup(cmd *cobra.Command) error {
	a.log = logging.New(logging.Options{Level: a.logLevel, Debug: a.debug, Output: a.stderr})

	flags := cmd.Flags()
	resolved, err := config.Resolve(a.fs, config.Overrides{
		UseRelativePath:       a.relative,
		UseRelativePathSet:    flags.Changed("relative"),
		ProximityThreshold:    a.threshold,
		ProximityThresholdSet: flags.Changed("threshold"),
		ProjectRoot:           a.root,
		ProjectRootSet:        flags.Changed("root"),
		Theme:                 a.theme,
		ThemeSet:              flags.Changed("theme"),
	})
	if err != nil {
		return err
	}
	a.resolved = resolved
	a.log.Debug("settings resolved",
		"path", resolved.Path,
		"relative", resolved.RelativeSource,
		"threshold", resolved.ThresholdSource,
		"root", resolved.RootSource,
		"theme", resolved.ThemeSource)

	a.store = config.NewStore(a.fs, resolved.Path, resolved.Settings)
	a.menu = menu.DefaultGroup()
	customizer := menu.NewCustomizer(a.menu, a.log)
	customizer.Apply(resolved.Settings)
	a.store.Subscribe(customizer.Listener())

	if a.print {
		a.clip = clipboard.NewWriter(a.stdout)
	} else {
		a.clip = clipboard.System{}
	}
	a.notifier = notify.NewTerminal(a.stderr, a.themeFor(resolved.Settings))
	a.dispatcher = command.New(a.store, a.clip, a.notifier, a.log)
	return nil
}

func (a *app) themeFor(s config.Settings) render.Theme {
	if os.Getenv("NO_COLOR") != "" {
		return render.MonoTheme()
	}
	return render.ThemeByName(s.Theme)
}

// exitCode maps a command error to the process exit code.
func (a *app) exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, command.ErrNoProblem), errors.Is(err, command.ErrNoSelection):
		return 1
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(a.stderr, "copyproblem: interrupted")
		return 2
	case command.Reported(err):
		return 2
	default:
		a.report(err)
		return 2
	}
}

// report logs err and shows it as an error notification. Failures before
// setup completed fall back to a plain terminal notifier.
func (a *app) report(err error) {
	if a.log != nil {
		a.log.Error("command failed", "error", err)
	}
	n := a.notifier
	if n == nil {
		n = notify.NewTerminal(a.stderr, a.themeFor(config.Default()))
	}
	n.Notify(command.FailureNotification(err))
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termWidth returns the terminal width for w, defaulting to 80.
func termWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	return 80
}
