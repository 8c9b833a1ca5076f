// Package markerdump reads an editor's exported markup model: the
// highlight ranges of one document with their payloads.
//
// The format is a single JSON object:
//
//	{"path": "src/Main.kt",
//	 "markers": [{"start": 0, "end": 10, "kind": "diagnostic",
//	              "severity": "WEAK_WARNING", "tooltip": "<html>...</html>"}]}
//
// kind is "diagnostic" (description, tooltip, text and severity fields),
// "text" (value is the plain-text payload), "opaque" (value is shown
// verbatim) or absent/"none" (no payload).
package markerdump

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dkoosis/copyproblem/pkg/diagnostic"
	"github.com/dkoosis/copyproblem/pkg/locate"
)

// Marker kinds.
const (
	KindDiagnostic = "diagnostic"
	KindText       = "text"
	KindOpaque     = "opaque"
	KindNone       = "none"
)

// Dump is the decoded file.
type Dump struct {
	Path    string   `json:"path"`
	Markers []Marker `json:"markers"`
}

// Marker is one exported highlight. Pointer fields distinguish absent
// from empty.
type Marker struct {
	Start       int                  `json:"start"`
	End         int                  `json:"end"`
	Kind        string               `json:"kind,omitempty"`
	Severity    *diagnostic.Severity `json:"severity,omitempty"`
	Description *string              `json:"description,omitempty"`
	Tooltip     *string              `json:"tooltip,omitempty"`
	Text        *string              `json:"text,omitempty"`
	Value       string               `json:"value,omitempty"`
}

// Opaque is the payload of an "opaque" marker; only its string form is
// known.
type Opaque struct {
	Value string
}

func (o Opaque) String() string { return o.Value }

// Read parses a marker dump from r.
func Read(r io.Reader) (*Dump, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var d Dump
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode marker dump: %w", err)
	}
	if d.Markers == nil {
		return nil, errors.New("decode marker dump: missing markers")
	}
	for i, m := range d.Markers {
		switch m.Kind {
		case "", KindDiagnostic, KindText, KindOpaque, KindNone:
		default:
			return nil, fmt.Errorf("marker %d: unknown kind %q", i, m.Kind)
		}
	}
	return &d, nil
}

// ReadBytes parses a marker dump from a byte slice.
func ReadBytes(data []byte) (*Dump, error) {
	return Read(bytes.NewReader(data))
}

// IsMarkerDump reports whether data looks like a marker dump.
func IsMarkerDump(data []byte) bool {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return false
	}
	var shape struct {
		Markers json.RawMessage `json:"markers"`
		Version string          `json:"version"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return false
	}
	return len(shape.Markers) > 0 && shape.Version == ""
}

// Payload converts m to the value a locator marker carries.
func (m Marker) Payload() any {
	switch m.Kind {
	case KindDiagnostic:
		rec := diagnostic.Record{
			Desc: m.Description,
			Tip:  m.Tooltip,
			Raw:  m.Text,
		}
		if m.Severity != nil {
			rec.Level = *m.Severity
		}
		return rec
	case KindText:
		return m.Value
	case KindOpaque:
		return Opaque{Value: m.Value}
	default:
		return nil
	}
}

// Locate converts the dump into locator markers. End offsets are
// inclusive; an end before start is raised to start.
func (d *Dump) Locate() []locate.Marker {
	out := make([]locate.Marker, 0, len(d.Markers))
	for _, m := range d.Markers {
		end := m.End
		if end < m.Start {
			end = m.Start
		}
		out = append(out, locate.Marker{Start: m.Start, End: end, Payload: m.Payload()})
	}
	return out
}
