package render

import (
	"encoding/json"

	"github.com/dkoosis/copyproblem/pkg/diagnostic"
	"github.com/dkoosis/copyproblem/pkg/problem"
)

// JSON renders problem trees as structured JSON for automation.
type JSON struct{}

// NewJSON creates a JSON renderer.
func NewJSON() *JSON {
	return &JSON{}
}

// jsonOutput is the top-level JSON structure.
type jsonOutput struct {
	Version string     `json:"version"`
	Files   []jsonFile `json:"files"`
}

type jsonFile struct {
	Name     string        `json:"name"`
	Path     string        `json:"path,omitempty"`
	Problems []jsonProblem `json:"problems"`
}

type jsonProblem struct {
	Index       int                 `json:"index"`
	Description string              `json:"description"`
	Line        int                 `json:"line"`
	Severity    diagnostic.Severity `json:"severity"`
	Method      string              `json:"line_source"`
}

// Render formats all file nodes as JSON.
func (j *JSON) Render(files []problem.FileNode) string {
	out := jsonOutput{
		Version: "1",
		Files:   make([]jsonFile, 0, len(files)),
	}
	for _, f := range files {
		jf := jsonFile{Name: f.Name, Path: f.Path, Problems: []jsonProblem{}}
		for i, r := range rows(f) {
			jf.Problems = append(jf.Problems, jsonProblem{
				Index:       i + 1,
				Description: r.Description,
				Line:        r.Line,
				Severity:    r.Severity,
				Method:      r.Method.String(),
			})
		}
		out.Files = append(out.Files, jf)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		errJSON, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(errJSON)
	}
	return string(data) + "\n"
}
