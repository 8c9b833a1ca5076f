package diagnostic

import "strings"

// Severity classifies a diagnostic's importance.
type Severity int

const (
	// Info is the default for anything unrecognized.
	Info Severity = iota
	Error
	Warning
	WeakWarning
	// ServerProblem is reported by remote analyzers for either errors or warnings.
	ServerProblem
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "Error"
	case Warning:
		return "Warning"
	case WeakWarning:
		return "Weak Warning"
	case ServerProblem:
		return "Server Problem"
	default:
		return "Info"
	}
}

// severityNames maps external severity spellings onto Severity. Keys are
// lower case with separators removed.
var severityNames = map[string]Severity{
	"error":                       Error,
	"err":                         Error,
	"warning":                     Warning,
	"warn":                        Warning,
	"weakwarning":                 WeakWarning,
	"genericservererrororwarning": ServerProblem,
	"serverproblem":               ServerProblem,
}

// ParseSeverity maps an external severity label onto Severity. Editor
// names (WEAK_WARNING), display names (Weak Warning) and SARIF levels
// (error, warning, note) are accepted. Unknown labels map to Info.
func ParseSeverity(label string) Severity {
	key := strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(label)))
	if sev, ok := severityNames[key]; ok {
		return sev
	}
	return Info
}

// MarshalText renders the display name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses any label ParseSeverity accepts.
func (s *Severity) UnmarshalText(text []byte) error {
	*s = ParseSeverity(string(text))
	return nil
}
