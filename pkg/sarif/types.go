// Package sarif reads SARIF (Static Analysis Results Interchange Format)
// documents as a diagnostics source.
//
// Region columns and character offsets follow the run's columnKind and
// default to UTF-16 code units; markers convert them to rune offsets.
package sarif

// Document represents a SARIF 2.1.0 document.
// See: https://docs.oasis-open.org/sarif/sarif/v2.1.0/sarif-v2.1.0.html
type Document struct {
	Version string `json:"version"`
	Schema  string `json:"$schema,omitempty"`
	Runs    []Run  `json:"runs"`
}

// Run represents a single analysis run.
type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
	// ColumnKind is how columns and character offsets are counted:
	// "utf16CodeUnits" (the default when empty) or "unicodeCodePoints".
	ColumnKind string `json:"columnKind,omitempty"`
}

// Column kinds.
const (
	ColumnKindUTF16     = "utf16CodeUnits"
	ColumnKindCodePoint = "unicodeCodePoints"
)

// Tool identifies the analysis tool that produced the results.
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver describes the tool's identity.
type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// Result represents a single issue found by the tool.
type Result struct {
	RuleID     string            `json:"ruleId"`
	Level      string            `json:"level"` // "error", "warning", "note", "none"
	Message    Message           `json:"message"`
	Locations  []Location        `json:"locations,omitempty"`
	Properties *ResultProperties `json:"properties,omitempty"`
}

// Message contains the issue description. Markdown, when present, may
// carry HTML.
type Message struct {
	Text     string `json:"text"`
	Markdown string `json:"markdown,omitempty"`
}

// ResultProperties is the property bag copyproblem reads from a result.
// Severity accepts editor names such as "WEAK_WARNING" and takes
// precedence over Level.
type ResultProperties struct {
	Tooltip  string `json:"tooltip,omitempty"`
	Text     string `json:"text,omitempty"`
	Severity string `json:"severity,omitempty"`
}

// Location identifies where the issue was found.
type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

// PhysicalLocation pinpoints the file and region.
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region,omitempty"`
}

// ArtifactLocation identifies the file.
type ArtifactLocation struct {
	URI   string `json:"uri"`
	Index int    `json:"index,omitempty"`
}

// Region identifies the specific location within the file. Lines and
// columns are 1-based; EndColumn is exclusive. CharOffset is 0-based
// and wins over line/column when set.
type Region struct {
	StartLine   int  `json:"startLine,omitempty"`
	StartColumn int  `json:"startColumn,omitempty"`
	EndLine     int  `json:"endLine,omitempty"`
	EndColumn   int  `json:"endColumn,omitempty"`
	CharOffset  *int `json:"charOffset,omitempty"`
	CharLength  int  `json:"charLength,omitempty"`
}

// URI returns the artifact URI of the first location, or "".
func (r Result) URI() string {
	if len(r.Locations) == 0 {
		return ""
	}
	return r.Locations[0].PhysicalLocation.ArtifactLocation.URI
}

// Region returns the region of the first location.
func (r Result) Region() Region {
	if len(r.Locations) == 0 {
		return Region{}
	}
	return r.Locations[0].PhysicalLocation.Region
}
