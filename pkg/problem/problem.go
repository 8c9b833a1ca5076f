// Package problem builds the canonical record copied to the clipboard.
package problem

import (
	"fmt"
	"strings"

	"github.com/dkoosis/copyproblem/pkg/diagnostic"
	"github.com/dkoosis/copyproblem/pkg/document"
	"github.com/dkoosis/copyproblem/pkg/locate"
	"github.com/dkoosis/copyproblem/pkg/textnorm"
)

// Default values used when a record field could not be resolved.
const (
	DefaultDescription = textnorm.Fallback
	DefaultFile        = "Unknown file"
	DefaultLine        = 1
)

// Info describes one problem. Build it with Build or New; it is not
// modified afterwards.
type Info struct {
	Description string
	FileLabel   string
	LineNumber  int // 1-based
	Severity    diagnostic.Severity
}

// New returns an Info with empty fields replaced by defaults.
func New(description, fileLabel string, line int, sev diagnostic.Severity) Info {
	if strings.TrimSpace(description) == "" {
		description = DefaultDescription
	}
	if strings.TrimSpace(fileLabel) == "" {
		fileLabel = DefaultFile
	}
	if line < 1 {
		line = DefaultLine
	}
	return Info{Description: description, FileLabel: fileLabel, LineNumber: line, Severity: sev}
}

func (i Info) String() string {
	return fmt.Sprintf("%s:%d [%s] %s", i.FileLabel, i.LineNumber, i.Severity, i.Description)
}

// Builder turns located markers into records.
type Builder struct {
	extractor *diagnostic.Extractor
}

// NewBuilder returns a Builder using extractor for structured payloads.
// A nil extractor uses a silent one.
func NewBuilder(extractor *diagnostic.Extractor) *Builder {
	if extractor == nil {
		extractor = diagnostic.NewExtractor(nil)
	}
	return &Builder{extractor: extractor}
}

// Build creates the record for marker in doc. The line is the 1-based
// line of the marker's start offset.
//
// Structured payloads go through the extractor and keep their severity.
// Plain strings are used verbatim and, like opaque payloads (rendered with
// fmt), are reported as warnings.
func (b *Builder) Build(marker locate.Marker, doc *document.Document, fileLabel string) Info {
	line := doc.LineOf(marker.Start) + 1

	var (
		desc string
		sev  = diagnostic.Warning
	)
	switch p := marker.Payload.(type) {
	case diagnostic.Diagnostic:
		desc = b.extractor.Extract(p)
		sev = p.Severity()
	case diagnostic.Describer, diagnostic.Tooltipper, diagnostic.RawTexter:
		desc = b.extractor.Extract(p)
		sev = diagnostic.Info
	case string:
		desc = strings.TrimSpace(p)
	case nil:
		// The locator skips payload-less markers; only direct callers get here.
		desc = DefaultDescription
	default:
		desc = strings.TrimSpace(fmt.Sprint(p))
	}
	return New(desc, fileLabel, line, sev)
}
