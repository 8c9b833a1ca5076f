// Package detect sniffs diagnostics input to determine its format.
package detect

import (
	"bytes"

	"github.com/dkoosis/copyproblem/pkg/markerdump"
	"github.com/dkoosis/copyproblem/pkg/sarif"
)

// Format represents a recognized input format.
type Format int

const (
	Unknown    Format = iota
	SARIF             // SARIF 2.1.0 JSON document
	MarkerDump        // editor markup model export
	TextTree          // plain-text Problems tree, children indented
)

func (f Format) String() string {
	switch f {
	case SARIF:
		return "sarif"
	case MarkerDump:
		return "markers"
	case TextTree:
		return "tree"
	default:
		return "unknown"
	}
}

// Sniff examines input to determine its format. JSON that is neither
// SARIF nor a marker dump is Unknown; any other non-blank text is a
// TextTree.
func Sniff(data []byte) Format {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Unknown
	}

	if data[0] == '{' {
		// SARIF first: a marker dump never carries a version field.
		if sarif.IsSARIF(data) {
			return SARIF
		}
		if markerdump.IsMarkerDump(data) {
			return MarkerDump
		}
		return Unknown
	}

	return TextTree
}
