package sarif

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// Read parses SARIF from an io.Reader. Anything but whitespace after the
// document is an error.
func Read(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode sarif: %w", err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode sarif: trailing data after document")
	}

	// Basic validation
	if doc.Version == "" {
		return nil, fmt.Errorf("missing sarif version")
	}

	return &doc, nil
}

// ReadBytes parses SARIF from a byte slice.
func ReadBytes(data []byte) (*Document, error) {
	return Read(bytes.NewReader(data))
}

// IsSARIF reports whether data looks like a SARIF document: a JSON
// object with a version and a runs array.
func IsSARIF(data []byte) bool {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return false
	}
	var shape struct {
		Version string          `json:"version"`
		Runs    json.RawMessage `json:"runs"`
	}
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&shape); err != nil {
		return false
	}
	return shape.Version != "" && len(shape.Runs) > 0
}

// NormalizePath turns an artifact URI into a path: the file:// scheme is
// stripped and percent-escapes are decoded. Undecodable URIs are returned
// without the scheme.
func NormalizePath(uri string) string {
	p := strings.TrimPrefix(uri, "file://")
	if !strings.Contains(p, "%") {
		return p
	}
	if decoded, err := url.PathUnescape(p); err == nil {
		return decoded
	}
	return p
}

// GroupedResults organizes results by a grouping key.
type GroupedResults struct {
	Key     string   // file path
	Results []Result // issues in this group
}

// GroupByFile organizes results by file path, in order of first
// appearance.
func GroupByFile(doc *Document) []GroupedResults {
	byFile := make(map[string][]Result)
	var order []string

	for _, run := range doc.Runs {
		for _, result := range run.Results {
			file := "unknown"
			if uri := result.URI(); uri != "" {
				file = NormalizePath(uri)
			}

			if _, seen := byFile[file]; !seen {
				order = append(order, file)
			}
			byFile[file] = append(byFile[file], result)
		}
	}

	groups := make([]GroupedResults, 0, len(byFile))
	for _, file := range order {
		groups = append(groups, GroupedResults{
			Key:     file,
			Results: byFile[file],
		})
	}

	return groups
}
