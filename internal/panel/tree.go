package panel

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dkoosis/copyproblem/internal/command"
	"github.com/dkoosis/copyproblem/pkg/problem"
)

// ParseTree reads a plain-text Problems tree: unindented lines are file
// nodes, indented lines are problems of the file above. Blank lines are
// ignored.
func ParseTree(r io.Reader) ([]problem.FileNode, error) {
	var files []problem.FileNode
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		raw := strings.TrimRight(sc.Text(), " \t\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if raw[0] == ' ' || raw[0] == '\t' {
			if len(files) == 0 {
				return nil, fmt.Errorf("tree line %d: problem before any file", n)
			}
			f := &files[len(files)-1]
			f.Children = append(f.Children, problem.ClassifyText(strings.TrimSpace(raw)))
			continue
		}
		file, ok := problem.ClassifyText(raw).(problem.FileNode)
		if !ok {
			return nil, fmt.Errorf("tree line %d: %q is not a file name", n, raw)
		}
		files = append(files, file)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read tree: %w", err)
	}
	return files, nil
}

// Select resolves a selection spec against files: "<file>" selects a
// file node, "<file>#<n>" its n-th problem (1-based). <file> matches a
// node's name or path.
func Select(files []problem.FileNode, spec string) (command.Selection, error) {
	name, idx := spec, 0
	if i := strings.LastIndex(spec, "#"); i >= 0 {
		n, err := strconv.Atoi(spec[i+1:])
		if err != nil || n < 1 {
			return command.Selection{}, fmt.Errorf("select %q: bad problem index", spec)
		}
		name, idx = spec[:i], n
	}
	name = strings.TrimSpace(name)
	for i := range files {
		f := &files[i]
		if f.Name != name && f.Path != name {
			continue
		}
		if idx == 0 {
			return command.Selection{Node: *f}, nil
		}
		if idx > len(f.Children) {
			return command.Selection{}, fmt.Errorf("select %q: %s has %d problems", spec, f.Name, len(f.Children))
		}
		return command.Selection{Node: f.Children[idx-1], File: f}, nil
	}
	return command.Selection{}, fmt.Errorf("select %q: no such file", spec)
}
