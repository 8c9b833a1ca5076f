package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

type field struct {
	get func(*Settings) any
	set func(*Settings, string) error
}

func stringField(p func(*Settings) *string) field {
	return field{
		get: func(s *Settings) any { return *p(s) },
		set: func(s *Settings, v string) error {
			*p(s) = v
			return nil
		},
	}
}

func templateField(p func(*Settings) *string) field {
	f := stringField(p)
	f.set = func(s *Settings, v string) error {
		*p(s) = unescape(v)
		return nil
	}
	return f
}

func boolField(p func(*Settings) *bool) field {
	return field{
		get: func(s *Settings) any { return *p(s) },
		set: func(s *Settings, v string) error {
			b, err := cast.ToBoolE(v)
			if err != nil {
				return err
			}
			*p(s) = b
			return nil
		},
	}
}

func intField(p func(*Settings) *int) field {
	return field{
		get: func(s *Settings) any { return *p(s) },
		set: func(s *Settings, v string) error {
			n, err := cast.ToIntE(strings.TrimSpace(v))
			if err != nil {
				return err
			}
			*p(s) = n
			return nil
		},
	}
}

var fields = map[string]field{
	"use_relative_path":           boolField(func(s *Settings) *bool { return &s.UseRelativePath }),
	"format_pattern":              templateField(func(s *Settings) *string { return &s.FormatPattern }),
	"format_pattern_multiple":     templateField(func(s *Settings) *string { return &s.FormatPatternMultiple }),
	"format_pattern_problem_item": templateField(func(s *Settings) *string { return &s.FormatPatternProblemItem }),
	"hide_standard_copy_action":   boolField(func(s *Settings) *bool { return &s.HideStandardCopyAction }),
	"proximity_threshold":         intField(func(s *Settings) *int { return &s.ProximityThreshold }),
	"clipboard_settle_ms":         intField(func(s *Settings) *int { return &s.ClipboardSettleMS }),
	"project_root":                stringField(func(s *Settings) *string { return &s.ProjectRoot }),
	"line_heuristics":             boolField(func(s *Settings) *bool { return &s.LineHeuristics }),
	"theme":                       stringField(func(s *Settings) *string { return &s.Theme }),
}

// Keys returns the settable keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of key.
func (s Settings) Get(key string) (any, error) {
	f, ok := fields[key]
	if !ok {
		return nil, fmt.Errorf("unknown setting %q", key)
	}
	return f.get(&s), nil
}

// Set parses value into key. Template values accept "\n" and "\t"
// escapes.
func (s *Settings) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	if err := f.set(s, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}

var escapes = strings.NewReplacer(`\n`, "\n", `\t`, "\t")

func unescape(v string) string {
	return escapes.Replace(v)
}
