// Package diagnostic defines the diagnostic records handed out by a
// diagnostics store and extracts a readable description from them.
//
// A store may hand out records of any shape. The extractor only relies on
// the small capability interfaces below, so a record implements whichever
// sources of text it actually has.
package diagnostic

// Describer is implemented by records with a plain-text description.
// ok is false when the record has no description.
type Describer interface {
	Description() (text string, ok bool)
}

// Tooltipper is implemented by records with a rendered tooltip, which
// may be HTML.
type Tooltipper interface {
	Tooltip() (text string, ok bool)
}

// RawTexter is implemented by records that keep the raw problem text in
// an internal field that may not be readable.
type RawTexter interface {
	RawText() (string, error)
}

// Severitied is implemented by records that carry a severity.
type Severitied interface {
	Severity() Severity
}

// Diagnostic is a structured diagnostic as stored in a marker payload. It
// carries a severity and usually one or more of the text capabilities.
type Diagnostic interface {
	Severitied
}

// Record is a plain Diagnostic implementation with optional fields. Nil
// pointers mean the source is absent.
type Record struct {
	Level  Severity
	Desc   *string
	Tip    *string
	Raw    *string
	RawErr error
}

var (
	_ Describer  = Record{}
	_ Tooltipper = Record{}
	_ RawTexter  = Record{}
	_ Diagnostic = Record{}
)

func (r Record) Severity() Severity { return r.Level }

func (r Record) Description() (string, bool) {
	if r.Desc == nil {
		return "", false
	}
	return *r.Desc, true
}

func (r Record) Tooltip() (string, bool) {
	if r.Tip == nil {
		return "", false
	}
	return *r.Tip, true
}

func (r Record) RawText() (string, error) {
	if r.RawErr != nil {
		return "", r.RawErr
	}
	if r.Raw == nil {
		return "", ErrNoRawText
	}
	return *r.Raw, nil
}

// String returns the extracted text.
func (r Record) String() string {
	return ExtractText(r)
}

// Text returns a pointer to s, for filling Record fields.
func Text(s string) *string { return &s }
