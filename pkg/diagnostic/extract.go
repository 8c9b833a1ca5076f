package diagnostic

import (
	"errors"

	"github.com/hashicorp/go-hclog"

	"github.com/dkoosis/copyproblem/pkg/textnorm"
)

// ErrNoRawText is returned by RawText when a record keeps no raw text.
var ErrNoRawText = errors.New("no raw text")

// Extractor recovers a plain-text description from a diagnostic record.
type Extractor struct {
	log hclog.Logger
}

// NewExtractor returns an Extractor logging attempted sources to log.
func NewExtractor(log hclog.Logger) *Extractor {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Extractor{log: log.Named("extract")}
}

var defaultExtractor = NewExtractor(nil)

// ExtractText extracts with a silent Extractor.
func ExtractText(d any) string {
	return defaultExtractor.Extract(d)
}

// Extract tries, in order: the direct description (trimmed), the
// tooltip (normalized, may be HTML), the raw text (trimmed). Each source
// that is missing, empty or unreadable is skipped. When none yields text
// the result is textnorm.Fallback.
func (e *Extractor) Extract(d any) string {
	if d == nil {
		return textnorm.Fallback
	}

	if src, ok := d.(Describer); ok {
		if desc, ok := src.Description(); ok {
			if text := textnorm.Trim(desc); text != "" {
				e.log.Debug("using description", "text", text)
				return text
			}
		}
		e.log.Trace("description empty")
	}

	if src, ok := d.(Tooltipper); ok {
		if tip, ok := src.Tooltip(); ok && textnorm.Trim(tip) != "" {
			text := textnorm.Normalize(tip)
			e.log.Debug("using tooltip", "html", textnorm.IsHTML(tip), "text", text)
			return text
		}
		e.log.Trace("tooltip empty")
	}

	if src, ok := d.(RawTexter); ok {
		raw, err := readRaw(src)
		switch {
		case err != nil:
			e.log.Debug("raw text unreadable", "error", err)
		case textnorm.Trim(raw) != "":
			text := textnorm.Trim(raw)
			e.log.Debug("using raw text", "text", text)
			return text
		}
	}

	e.log.Warn("no text found in diagnostic, using fallback")
	return textnorm.Fallback
}

// readRaw shields the extractor from records whose accessor panics.
func readRaw(src RawTexter) (raw string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("raw text accessor panicked")
		}
	}()
	return src.RawText()
}
