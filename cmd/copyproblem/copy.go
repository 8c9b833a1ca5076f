package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dkoosis/copyproblem/internal/command"
	"github.com/dkoosis/copyproblem/internal/detect"
	"github.com/dkoosis/copyproblem/internal/panel"
	"github.com/dkoosis/copyproblem/pkg/document"
	"github.com/dkoosis/copyproblem/pkg/locate"
	"github.com/dkoosis/copyproblem/pkg/markerdump"
	"github.com/dkoosis/copyproblem/pkg/problem"
	"github.com/dkoosis/copyproblem/pkg/render"
	"github.com/dkoosis/copyproblem/pkg/sarif"
)

// position is the cursor: a rune offset, or a 1-based line and column.
type position struct {
	file   string
	offset int
	line   int
	col    int
}

func addPositionFlags(cmd *cobra.Command, p *position) {
	f := cmd.Flags()
	f.StringVar(&p.file, "file", "", "Document the cursor is in")
	f.IntVar(&p.offset, "offset", 0, "Cursor rune offset")
	f.IntVar(&p.line, "line", 0, "Cursor line (1-based); overrides --offset")
	f.IntVar(&p.col, "col", 1, "Cursor column (1-based), with --line")
	cmd.MarkFlagsMutuallyExclusive("offset", "line")
}

func (p position) offsetIn(doc *document.Document) (int, error) {
	if p.line > 0 {
		return doc.Offset(p.line, p.col), nil
	}
	if p.offset < 0 {
		return 0, fmt.Errorf("offset must not be negative, got %d", p.offset)
	}
	return p.offset, nil
}

func (a *app) atCommand() *cobra.Command {
	var (
		pos         position
		diagnostics string
		selection   string
	)
	cmd := &cobra.Command{
		Use:   "at",
		Short: "Copy the problem at or near the cursor",
		Long: `Copy the problem at or near the cursor.

A diagnostic whose range contains the cursor wins. Otherwise the selected
text and then the cursor line are tried, and last the closest diagnostic
within the proximity threshold.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				markers []locate.Marker
				sd      *sarif.Document
			)
			if diagnostics != "" {
				data, err := a.readInput(diagnostics)
				if err != nil {
					return err
				}
				switch f := detect.Sniff(data); f {
				case detect.SARIF:
					if sd, err = sarif.ReadBytes(data); err != nil {
						return fmt.Errorf("parse SARIF: %w", err)
					}
				case detect.MarkerDump:
					dump, err := markerdump.ReadBytes(data)
					if err != nil {
						return fmt.Errorf("parse marker dump: %w", err)
					}
					markers = dump.Locate()
					if pos.file == "" {
						pos.file = dump.Path
					}
				default:
					return fmt.Errorf("diagnostics %s: unrecognized format %s (expected SARIF or marker dump)", diagnostics, f)
				}
			}

			doc, err := a.loadDocument(pos.file)
			if err != nil {
				return err
			}
			if sd != nil {
				markers = sarif.Markers(sd, doc, pos.file)
			}
			offset, err := pos.offsetIn(doc)
			if err != nil {
				return err
			}
			a.log.Debug("copy problem at cursor", "file", pos.file, "offset", offset, "markers", len(markers))

			_, err = a.dispatcher.CopyProblemAtCursor(cmd.Context(), command.CursorRequest{
				Document:  doc,
				Markers:   markers,
				Offset:    offset,
				Selection: selection,
			})
			return err
		},
	}
	addPositionFlags(cmd, &pos)
	cmd.Flags().StringVarP(&diagnostics, "diagnostics", "d", "", "SARIF or marker dump file (- for stdin)")
	cmd.Flags().StringVar(&selection, "selection", "", "Selected text, used when no diagnostic contains the cursor")
	return cmd
}

func (a *app) lineCommand() *cobra.Command {
	var pos position
	cmd := &cobra.Command{
		Use:   "line",
		Short: "Copy the current line with file and line context",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := a.loadDocument(pos.file)
			if err != nil {
				return err
			}
			offset, err := pos.offsetIn(doc)
			if err != nil {
				return err
			}
			_, err = a.dispatcher.CopyCurrentLine(cmd.Context(), doc, offset)
			return err
		},
	}
	addPositionFlags(cmd, &pos)
	return cmd
}

func (a *app) panelCommand() *cobra.Command {
	var (
		diagnostics string
		tree        string
		selectSpec  string
		format      string
	)
	cmd := &cobra.Command{
		Use:   "panel",
		Short: "Show the Problems panel, or copy a selected entry",
		Long: `Show the Problems panel, or copy a selected entry.

With --select, "<file>" copies every problem of a file and "<file>#<n>" its
n-th problem. Without it the panel is interactive on a terminal and rendered
as text otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, err := a.panelFiles(diagnostics, tree)
			if err != nil {
				return err
			}
			if selectSpec != "" {
				sel, err := panel.Select(files, selectSpec)
				if err != nil {
					return err
				}
				_, err = a.dispatcher.CopyProblemFromPanel(cmd.Context(), sel)
				return err
			}

			mode := format
			if mode == "auto" {
				mode = "plain"
				if isTTYWriter(a.stdout) {
					mode = "interactive"
				}
			}
			if mode == "interactive" {
				return panel.Run(cmd.Context(), files, panel.Deps{
					Dispatcher: a.dispatcher,
					Store:      a.store,
					Menu:       a.menu,
					Clipboard:  a.clip,
					Log:        a.log,
				})
			}
			r, err := a.renderer(mode)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(a.stdout, r.Render(files))
			return err
		},
	}
	f := cmd.Flags()
	f.StringVarP(&diagnostics, "diagnostics", "d", "", "SARIF file or Problems tree (- for stdin)")
	f.StringVar(&tree, "tree", "", "Plain-text Problems tree (- for stdin)")
	f.StringVar(&selectSpec, "select", "", `Entry to copy: "<file>" or "<file>#<n>"`)
	f.StringVar(&format, "format", "auto", "Output: auto, interactive, terminal, plain, json")
	cmd.MarkFlagsMutuallyExclusive("diagnostics", "tree")
	cmd.MarkFlagsOneRequired("diagnostics", "tree")
	return cmd
}

func (a *app) panelFiles(diagnostics, tree string) ([]problem.FileNode, error) {
	if tree != "" {
		data, err := a.readInput(tree)
		if err != nil {
			return nil, err
		}
		return panel.ParseTree(bytes.NewReader(data))
	}

	data, err := a.readInput(diagnostics)
	if err != nil {
		return nil, err
	}
	switch f := detect.Sniff(data); f {
	case detect.SARIF:
		sd, err := sarif.ReadBytes(data)
		if err != nil {
			return nil, fmt.Errorf("parse SARIF: %w", err)
		}
		return sarif.PanelNodes(sd), nil
	case detect.TextTree:
		return panel.ParseTree(bytes.NewReader(data))
	case detect.MarkerDump:
		return nil, errors.New("a marker dump has no Problems tree; use it with 'at'")
	default:
		return nil, fmt.Errorf("diagnostics %s: unrecognized format (expected SARIF or a Problems tree)", diagnostics)
	}
}

func (a *app) renderer(mode string) (render.Renderer, error) {
	switch mode {
	case "json":
		return render.NewJSON(), nil
	case "plain":
		return render.NewPlain(), nil
	case "terminal":
		return render.NewTerminal(a.themeFor(a.store.Snapshot().Settings), termWidth(a.stdout)), nil
	default:
		return nil, fmt.Errorf("unknown format %q (expected auto, interactive, terminal, plain, json)", mode)
	}
}

// readInput reads path, or stdin for "-".
func (a *app) readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func (a *app) loadDocument(path string) (*document.Document, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("no document: pass --file")
	}
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	doc, err := document.New(path, data)
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", path, err)
	}
	return doc, nil
}
