package sarif

import (
	"encoding/json"
	"io"
)

// Builder constructs valid SARIF 2.1.0 documents.
type Builder struct {
	doc *Document
}

// NewBuilder creates a SARIF builder for the given tool.
func NewBuilder(toolName, toolVersion string) *Builder {
	return &Builder{
		doc: &Document{
			Version: "2.1.0",
			Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json",
			Runs: []Run{{
				Tool: Tool{Driver: Driver{Name: toolName, Version: toolVersion}},
			}},
		},
	}
}

// AddResult adds a diagnostic result to the current run.
func (b *Builder) AddResult(ruleID, level, message, file string, line, col int) *Builder {
	r := Result{
		RuleID:  ruleID,
		Level:   level,
		Message: Message{Text: message},
	}
	if file != "" {
		r.Locations = []Location{{
			PhysicalLocation: PhysicalLocation{
				ArtifactLocation: ArtifactLocation{URI: file},
				Region: Region{
					StartLine:   line,
					StartColumn: col,
				},
			},
		}}
	}
	run := &b.doc.Runs[0]
	run.Results = append(run.Results, r)
	return b
}

// WithTooltip sets the rich-text tooltip of the last result.
func (b *Builder) WithTooltip(tooltip string) *Builder {
	if r := b.last(); r != nil {
		if r.Properties == nil {
			r.Properties = &ResultProperties{}
		}
		r.Properties.Tooltip = tooltip
	}
	return b
}

// WithMarkdown sets the rich message text of the last result.
func (b *Builder) WithMarkdown(markdown string) *Builder {
	if r := b.last(); r != nil {
		r.Message.Markdown = markdown
	}
	return b
}

// WithSeverity sets the editor severity property of the last result.
func (b *Builder) WithSeverity(severity string) *Builder {
	if r := b.last(); r != nil {
		if r.Properties == nil {
			r.Properties = &ResultProperties{}
		}
		r.Properties.Severity = severity
	}
	return b
}

// WithSpan sets the 0-based character span of the last result.
func (b *Builder) WithSpan(offset, length int) *Builder {
	if r := b.last(); r != nil && len(r.Locations) > 0 {
		reg := &r.Locations[0].PhysicalLocation.Region
		reg.CharOffset = &offset
		reg.CharLength = length
	}
	return b
}

func (b *Builder) last() *Result {
	results := b.doc.Runs[0].Results
	if len(results) == 0 {
		return nil
	}
	return &results[len(results)-1]
}

// Document returns the constructed SARIF document.
func (b *Builder) Document() *Document {
	return b.doc
}

// WriteTo writes the SARIF document as JSON to w.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	data, err := json.MarshalIndent(b.doc, "", "  ")
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')
	n, err := w.Write(data)
	return int64(n), err
}
